package cli

import (
	"fmt"

	"location-reports/internal/errors"
	"location-reports/internal/validation"
)

// ErrorHandler turns service errors into messages fit for a terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// commandError shows a terminal message but keeps the underlying error
// reachable for errors.As.
type commandError struct {
	message string
	cause   error
}

func (e *commandError) Error() string { return e.message }

func (e *commandError) Unwrap() error { return e.cause }

// Handle prefixes the user-facing message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return &commandError{fmt.Sprintf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage()), err}
	}

	if _, ok := errors.AsAppError(err); ok {
		return &commandError{fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)), err}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// ExitCode maps an error onto a process exit status. User errors exit 2,
// everything else 1.
func (eh *ErrorHandler) ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.ShouldLogError(err) {
		return 1
	}
	return 2
}
