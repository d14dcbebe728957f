package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		ok       bool
	}{
		{"GREEN", StatusGreen, true},
		{"amber", StatusAmber, true},
		{" Red ", StatusRed, true},
		{"UNKNOWN", StatusUnknown, true},
		{"BLUE", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, ok := ParseStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, status := range Statuses {
		assert.True(t, status.IsValid(), status.String())
	}
	assert.False(t, Status("green").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestReport_InZone(t *testing.T) {
	tokyo := mustZone(t, "Asia/Tokyo")
	instant := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	report := NewReport(1, 2, StatusGreen, instant, "")

	converted := report.InZone(tokyo)

	assert.True(t, instant.Equal(converted.ReportTime))
	assert.Equal(t, 18, converted.ReportTime.Hour())
	assert.Equal(t, tokyo, converted.ReportTime.Location())
	assert.Equal(t, time.UTC, report.ReportTime.Location())
}

func TestReport_IsValid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		report   Report
		expected bool
	}{
		{"Valid", NewReport(1, 1, StatusGreen, now, ""), true},
		{"Missing agent", NewReport(0, 1, StatusGreen, now, ""), false},
		{"Missing location", NewReport(1, -1, StatusGreen, now, ""), false},
		{"Zero time", NewReport(1, 1, StatusGreen, time.Time{}, ""), false},
		{"Bad status", NewReport(1, 1, Status("PURPLE"), now, ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.report.IsValid())
		})
	}
}

func TestLocation(t *testing.T) {
	assert.True(t, NewLocation("Lisbon", "Europe/Lisbon").IsValid())
	assert.False(t, NewLocation("", "Europe/Lisbon").IsValid())
	assert.False(t, NewLocation("Lisbon", "").IsValid())
	assert.False(t, NewLocation("Lisbon", "Europe/Atlantis").IsValid())
	assert.Equal(t, "Lisbon", NewLocation("Lisbon", "Europe/Lisbon").String())

	zone, err := NewLocation("Lisbon", "Europe/Lisbon").Zone()
	assert.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", zone.String())
}

func TestAgent(t *testing.T) {
	assert.True(t, NewAgent("HERON").IsValid())
	assert.False(t, NewAgent("").IsValid())
	assert.Equal(t, "HERON", NewAgent("HERON").String())
}
