package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	apperrors "location-reports/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestHandleDatabaseError(t *testing.T) {
	tests := []struct {
		name         string
		inputErr     error
		expectedType apperrors.ErrorType
	}{
		{
			name:         "Plain failure is a database error",
			inputErr:     errors.New("database connection failed"),
			expectedType: apperrors.ErrorTypeDatabase,
		},
		{
			name:         "Deadline is a timeout",
			inputErr:     fmt.Errorf("query: %w", context.DeadlineExceeded),
			expectedType: apperrors.ErrorTypeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HandleDatabaseError("test operation", tt.inputErr)

			assert.True(t, apperrors.IsErrorType(result, tt.expectedType))
			assert.Contains(t, result.Error(), "test operation")
		})
	}
}

func TestHandleNoRowsError(t *testing.T) {
	tests := []struct {
		name           string
		inputErr       error
		expectNotFound bool
	}{
		{
			name:           "ErrNoRows should return NotFoundError",
			inputErr:       sql.ErrNoRows,
			expectNotFound: true,
		},
		{
			name:           "Wrapped ErrNoRows should return NotFoundError",
			inputErr:       fmt.Errorf("scan: %w", sql.ErrNoRows),
			expectNotFound: true,
		},
		{
			name:           "Other error should return as-is",
			inputErr:       errors.New("some other error"),
			expectNotFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HandleNoRowsError(tt.inputErr, "report", "123")

			if tt.expectNotFound {
				assert.True(t, apperrors.IsErrorType(result, apperrors.ErrorTypeNotFound))
				assert.Contains(t, result.Error(), "report")
				assert.Contains(t, result.Error(), "123")
			} else {
				assert.Equal(t, tt.inputErr, result)
			}
		})
	}
}
