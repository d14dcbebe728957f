package services

import (
	"context"
	"testing"

	"location-reports/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryService_CreateLocation(t *testing.T) {
	tests := []struct {
		name           string
		locName        string
		timeZone       string
		errorAssertion func(t *testing.T, err error)
	}{
		{
			name:     "should create location with valid zone",
			locName:  "  Lisbon ",
			timeZone: "Europe/Lisbon",
		},
		{
			name:     "should reject unknown zone",
			locName:  "Atlantis",
			timeZone: "Atlantic/Atlantis",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "timeZone")
			},
		},
		{
			name:     "should reject empty name",
			locName:  "",
			timeZone: "UTC",
			errorAssertion: func(t *testing.T, err error) {
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
				assert.Contains(t, err.Error(), "name")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupReportService(t)

			result, err := env.registry.CreateLocation(context.Background(), tt.locName, tt.timeZone)

			if tt.errorAssertion != nil {
				tt.errorAssertion(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Greater(t, result.ID, int64(0))
			assert.Equal(t, "Lisbon", result.Name)
			assert.Equal(t, tt.timeZone, result.TimeZone)

			fetched, err := env.registry.GetLocation(context.Background(), result.ID)
			require.NoError(t, err)
			assert.Equal(t, result, fetched)
		})
	}
}

func TestRegistryService_ListLocations(t *testing.T) {
	env := setupReportService(t)

	locations, err := env.registry.ListLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "London", locations[0].Name)
	assert.Equal(t, "Tokyo", locations[1].Name)
}

func TestRegistryService_CreateAgent(t *testing.T) {
	env := setupReportService(t)
	ctx := context.Background()

	agent, err := env.registry.CreateAgent(ctx, " NIGHTJAR ")
	require.NoError(t, err)
	assert.Equal(t, "NIGHTJAR", agent.CallSign)

	fetched, err := env.registry.GetAgent(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent, fetched)

	_, err = env.registry.CreateAgent(ctx, "NIGHTJAR")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeOperationInvalid))

	_, err = env.registry.CreateAgent(ctx, "two words")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	_, err = env.registry.GetAgent(ctx, 999)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}
