package validation

import (
	"time"
)

// ReportInput is the caller-supplied content of a new report.
type ReportInput struct {
	ReportID   int64
	AgentID    int64
	LocationID int64
	Status     string
	ReportTime time.Time
	Body       string
}

// ReportValidator provides validation for report operations
type ReportValidator struct {
	validator *Validator
}

// NewReportValidator creates a new report validator
func NewReportValidator(v *Validator) *ReportValidator {
	if v == nil {
		v = NewValidator()
	}
	return &ReportValidator{validator: v}
}

// ValidateReportForCreation checks field-level rules. Whether the agent and
// location exist is checked by the caller against the store.
func (rv *ReportValidator) ValidateReportForCreation(input ReportInput) error {
	validationError := NewValidationError()

	if input.ReportID != 0 {
		validationError.AddInvalidValueError("reportId", input.ReportID, "cannot be specified on create")
	}

	if !rv.validator.IsValidID(input.AgentID) {
		validationError.AddInvalidValueError("agentId", input.AgentID, "must be a positive integer")
	}

	if !rv.validator.IsValidID(input.LocationID) {
		validationError.AddInvalidValueError("locationId", input.LocationID, "must be a positive integer")
	}

	if !rv.validator.IsNonEmptyString(input.Status) {
		validationError.AddRequiredError("status")
	} else if !rv.validator.IsValidStatus(input.Status) {
		validationError.AddInvalidValueError("status", input.Status, "must be one of GREEN, AMBER, RED, UNKNOWN")
	}

	if !rv.validator.IsSet(input.ReportTime) {
		validationError.AddRequiredError("reportTime")
	} else if !rv.validator.IsStorableTime(input.ReportTime) {
		validationError.AddInvalidValueError("reportTime", input.ReportTime, "must fall between years 0000 and 9999")
	}

	maxLen := rv.validator.getBodyMaxLength()
	if !rv.validator.IsValidStringLength(input.Body, 0, maxLen) {
		validationError.AddInvalidLengthError("reportBody", len(input.Body), 0, maxLen)
	}
	if !rv.validator.HasNoControlCharacters(input.Body) {
		validationError.AddInvalidCharacterError("reportBody", input.Body)
	}

	return validationError.result()
}

// ValidateReportID validates an ID taken from a request path
func (rv *ReportValidator) ValidateReportID(id int64) error {
	validationError := NewValidationError()
	if !rv.validator.IsValidID(id) {
		validationError.AddInvalidValueError("reportId", id, "must be a positive integer")
	}
	return validationError.result()
}
