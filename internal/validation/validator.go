package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"location-reports/internal/config"
	"location-reports/internal/domain"
	"location-reports/internal/repository/sqlite"
)

var callSignRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed string has between min and max
// characters. A max of zero means no upper bound.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && (max <= 0 || length <= max)
}

// IsValidID checks if an entity ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidStatus checks s against the status enum
func (v *Validator) IsValidStatus(s string) bool {
	_, ok := domain.ParseStatus(s)
	return ok
}

// IsValidTimeZone checks that name is a loadable IANA zone
func (v *Validator) IsValidTimeZone(name string) bool {
	_, err := domain.LoadZone(name)
	return err == nil
}

// IsValidCallSign checks a call sign contains only letters, digits,
// hyphens and underscores, starting with a letter or digit
func (v *Validator) IsValidCallSign(callSign string) bool {
	return callSignRegex.MatchString(callSign)
}

// HasNoControlCharacters rejects control characters other than newline and tab
func (v *Validator) HasNoControlCharacters(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}

// IsSet checks a time was supplied
func (v *Validator) IsSet(t time.Time) bool {
	return !t.IsZero()
}

// IsStorableTime checks t keeps a four digit year in its own zone and in UTC
func (v *Validator) IsStorableTime(t time.Time) bool {
	return sqlite.IsStorableTime(t)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// getBodyMaxLength returns configured maximum report body length or default
func (v *Validator) getBodyMaxLength() int {
	if v.config != nil {
		return v.config.Validation.BodyMaxLength
	}
	return 4096 // Default maximum
}

// getCallSignMaxLength returns configured maximum call sign length or default
func (v *Validator) getCallSignMaxLength() int {
	if v.config != nil {
		return v.config.Validation.CallSignMaxLength
	}
	return 64
}

// getNameMaxLength returns configured maximum location name length or default
func (v *Validator) getNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.NameMaxLength
	}
	return 255
}
