package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "Valid time",
			input:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2024-01-15T10:30:45.000000000",
		},
		{
			name:     "Zero time",
			input:    time.Time{},
			expected: "0001-01-01T00:00:00.000000000",
		},
		{
			name:     "Zone is dropped, wall clock kept",
			input:    time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600)),
			expected: "2024-06-15T14:30:00.000000000",
		},
		{
			name:     "Time with nanoseconds",
			input:    time.Date(2024, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2024-03-10T09:15:30.123456789",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatTimeForDB(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatInstantForDB(t *testing.T) {
	input := time.Date(2024, 6, 15, 14, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2024-06-15T19:30:00.000000000", FormatInstantForDB(input))
}

func TestFormatTimeForDB_OrdersLexicographically(t *testing.T) {
	base := time.Date(2024, 3, 10, 9, 15, 30, 0, time.UTC)
	times := []time.Time{
		base,
		base.Add(time.Nanosecond),
		base.Add(900 * time.Millisecond),
		base.Add(time.Second),
		base.Add(10 * time.Hour),
	}

	for i := 1; i < len(times); i++ {
		assert.Less(t, FormatTimeForDB(times[i-1]), FormatTimeForDB(times[i]))
	}
}

func TestParseTimeFromDB(t *testing.T) {
	original := time.Date(2024, 1, 15, 10, 30, 45, 123, time.UTC)

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
	assert.Equal(t, time.UTC, parsed.Location())

	_, err = ParseTimeFromDB("2024-01-15 10:30:45")
	assert.Error(t, err)
}

func TestIsStorableTime(t *testing.T) {
	minus5 := time.FixedZone("-05:00", -5*60*60)
	plus9 := time.FixedZone("+09:00", 9*60*60)

	tests := []struct {
		name     string
		value    time.Time
		expected bool
	}{
		{"Ordinary", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), true},
		{"Last instant", time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC), true},
		{"First instant", time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"UTC rolls into year 10000", time.Date(9999, 12, 31, 23, 30, 0, 0, minus5), false},
		{"UTC rolls back before year 0", time.Date(0, 1, 1, 3, 0, 0, 0, plus9), false},
		{"Local year 10000", time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsStorableTime(tt.value))
			if tt.expected {
				assert.Len(t, FormatInstantForDB(tt.value), len(TimeLayout))
				assert.Len(t, FormatTimeForDB(tt.value), len(TimeLayout))
			}
		})
	}
}
