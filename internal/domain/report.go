package domain

import (
	"time"
)

// Report is an agent's status report about a location.
//
// ReportTime is always held in the location's time zone. Use InZone before
// storing a time supplied in any other zone.
type Report struct {
	ID         int64
	AgentID    int64
	LocationID int64
	Status     Status
	ReportTime time.Time
	Body       string
}

// NewReport creates a new Report. The ID is assigned on storage.
func NewReport(agentID, locationID int64, status Status, reportTime time.Time, body string) Report {
	return Report{
		AgentID:    agentID,
		LocationID: locationID,
		Status:     status,
		ReportTime: reportTime,
		Body:       body,
	}
}

// InZone returns a copy with ReportTime expressed in zone. The instant does
// not change.
func (r Report) InZone(zone *time.Location) Report {
	r.ReportTime = r.ReportTime.In(zone)
	return r
}

// IsValid checks if the report has valid data.
func (r Report) IsValid() bool {
	if r.AgentID <= 0 || r.LocationID <= 0 {
		return false
	}
	if r.ReportTime.IsZero() {
		return false
	}
	return r.Status.IsValid()
}

// ReportWithTimeZone is a report along with its location's time zone as
// resolved when it was read.
type ReportWithTimeZone struct {
	Report
	TimeZone string
}
