package validation

// RegistryValidator validates locations and agents
type RegistryValidator struct {
	validator *Validator
}

// NewRegistryValidator creates a new registry validator
func NewRegistryValidator(v *Validator) *RegistryValidator {
	if v == nil {
		v = NewValidator()
	}
	return &RegistryValidator{validator: v}
}

// ValidateLocation validates a location name and IANA time zone
func (rv *RegistryValidator) ValidateLocation(name, timeZone string) error {
	validationError := NewValidationError()

	trimmedName := rv.validator.TrimAndValidateString(name)
	maxLen := rv.validator.getNameMaxLength()
	if !rv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("name")
	} else if !rv.validator.IsValidStringLength(trimmedName, 1, maxLen) {
		validationError.AddInvalidLengthError("name", trimmedName, 1, maxLen)
	}

	if !rv.validator.IsNonEmptyString(timeZone) {
		validationError.AddRequiredError("timeZone")
	} else if !rv.validator.IsValidTimeZone(timeZone) {
		validationError.AddInvalidFormatError("timeZone", timeZone, "an IANA time zone such as Europe/London")
	}

	return validationError.result()
}

// ValidateAgent validates an agent call sign
func (rv *RegistryValidator) ValidateAgent(callSign string) error {
	validationError := NewValidationError()

	trimmed := rv.validator.TrimAndValidateString(callSign)
	maxLen := rv.validator.getCallSignMaxLength()
	if !rv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("callSign")
		return validationError.result()
	}

	if !rv.validator.IsValidStringLength(trimmed, 1, maxLen) {
		validationError.AddInvalidLengthError("callSign", trimmed, 1, maxLen)
	}
	if !rv.validator.IsValidCallSign(trimmed) {
		validationError.AddInvalidCharacterError("callSign", trimmed)
	}

	return validationError.result()
}
