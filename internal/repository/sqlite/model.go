package sqlite

import "time"

// Location is a row of the location table.
type Location struct {
	ID       int64
	Name     string
	TimeZone string
}

// Agent is a row of the agent table.
type Agent struct {
	ID       int64
	CallSign string
}

// Report is a row of the agent_location_report table.
//
// ReportTime holds the wall clock reading in the location's time zone. It is
// carried in a UTC time.Time only because the column has no zone; callers
// must not treat it as an instant. ReportTimeUTC is the same moment as a
// real instant and is what time range filters compare against.
type Report struct {
	ID            int64
	LocationID    int64
	AgentID       int64
	Status        string
	ReportTime    time.Time
	ReportTimeUTC time.Time
	Body          string
}

// ReportWithTimeZone is a report joined with its location's time zone.
type ReportWithTimeZone struct {
	Report
	LocationTimeZone string
}
