package domain

import (
	"fmt"
	"time"

	"location-reports/internal/repository/sqlite"
)

// ReportMapper handles conversion between domain and database Report models.
type ReportMapper struct{}

// NewReportMapper creates a new ReportMapper instance.
func NewReportMapper() *ReportMapper {
	return &ReportMapper{}
}

// ToDatabase converts a domain Report to a database Report. The report time
// must already be in the location's zone; its wall clock becomes report_time.
func (m *ReportMapper) ToDatabase(domainReport Report) sqlite.Report {
	return sqlite.Report{
		ID:            domainReport.ID,
		LocationID:    domainReport.LocationID,
		AgentID:       domainReport.AgentID,
		Status:        string(domainReport.Status),
		ReportTime:    domainReport.ReportTime,
		ReportTimeUTC: domainReport.ReportTime.UTC(),
		Body:          domainReport.Body,
	}
}

// FromDatabase converts a joined database row to a domain ReportWithTimeZone,
// placing the report time in the location's zone.
func (m *ReportMapper) FromDatabase(dbReport sqlite.ReportWithTimeZone) (ReportWithTimeZone, error) {
	zone, err := LoadZone(dbReport.LocationTimeZone)
	if err != nil {
		return ReportWithTimeZone{}, fmt.Errorf("report %d: location time zone %q: %w", dbReport.ID, dbReport.LocationTimeZone, err)
	}

	return ReportWithTimeZone{
		Report: Report{
			ID:         dbReport.ID,
			AgentID:    dbReport.AgentID,
			LocationID: dbReport.LocationID,
			Status:     Status(dbReport.Status),
			ReportTime: localTime(dbReport.Report, zone),
			Body:       dbReport.Body,
		},
		TimeZone: dbReport.LocationTimeZone,
	}, nil
}

// FromDatabaseSlice converts joined database rows, keeping their order.
func (m *ReportMapper) FromDatabaseSlice(dbReports []*sqlite.ReportWithTimeZone) ([]ReportWithTimeZone, error) {
	domainReports := make([]ReportWithTimeZone, len(dbReports))
	for i, report := range dbReports {
		converted, err := m.FromDatabase(*report)
		if err != nil {
			return nil, err
		}
		domainReports[i] = converted
	}
	return domainReports, nil
}

// localTime prefers the stored instant, which is unambiguous across DST
// transitions, and falls back to the stored wall clock.
func localTime(dbReport sqlite.Report, zone *time.Location) time.Time {
	if !dbReport.ReportTimeUTC.IsZero() {
		return dbReport.ReportTimeUTC.In(zone)
	}
	wall := dbReport.ReportTime
	return time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), wall.Nanosecond(), zone)
}

// LocationMapper handles conversion between domain and database Location models.
type LocationMapper struct{}

// NewLocationMapper creates a new LocationMapper instance.
func NewLocationMapper() *LocationMapper {
	return &LocationMapper{}
}

// ToDatabase converts a domain Location to a database Location.
func (m *LocationMapper) ToDatabase(domainLocation Location) sqlite.Location {
	return sqlite.Location{
		ID:       domainLocation.ID,
		Name:     domainLocation.Name,
		TimeZone: domainLocation.TimeZone,
	}
}

// FromDatabase converts a database Location to a domain Location.
func (m *LocationMapper) FromDatabase(dbLocation sqlite.Location) Location {
	return Location{
		ID:       dbLocation.ID,
		Name:     dbLocation.Name,
		TimeZone: dbLocation.TimeZone,
	}
}

// FromDatabaseSlice converts a slice of database Locations to domain Locations.
func (m *LocationMapper) FromDatabaseSlice(dbLocations []*sqlite.Location) []Location {
	domainLocations := make([]Location, len(dbLocations))
	for i, location := range dbLocations {
		domainLocations[i] = m.FromDatabase(*location)
	}
	return domainLocations
}

// AgentMapper handles conversion between domain and database Agent models.
type AgentMapper struct{}

// NewAgentMapper creates a new AgentMapper instance.
func NewAgentMapper() *AgentMapper {
	return &AgentMapper{}
}

// ToDatabase converts a domain Agent to a database Agent.
func (m *AgentMapper) ToDatabase(domainAgent Agent) sqlite.Agent {
	return sqlite.Agent{
		ID:       domainAgent.ID,
		CallSign: domainAgent.CallSign,
	}
}

// FromDatabase converts a database Agent to a domain Agent.
func (m *AgentMapper) FromDatabase(dbAgent sqlite.Agent) Agent {
	return Agent{
		ID:       dbAgent.ID,
		CallSign: dbAgent.CallSign,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Report   *ReportMapper
	Location *LocationMapper
	Agent    *AgentMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Report:   NewReportMapper(),
		Location: NewLocationMapper(),
		Agent:    NewAgentMapper(),
	}
}
