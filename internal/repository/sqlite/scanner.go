package sqlite

import (
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// reportColumns is the column list shared by every report query; the
// location time zone comes last.
const reportColumns = `agent_location_report.report_id,
	agent_location_report.location_id,
	agent_location_report.agent_id,
	agent_location_report.status,
	agent_location_report.report_time,
	agent_location_report.report_time_utc,
	agent_location_report.report_body,
	location.time_zone`

// ScanReportWithTimeZone scans one row selected with reportColumns.
func ScanReportWithTimeZone(scanner Scanner) (*ReportWithTimeZone, error) {
	report := &ReportWithTimeZone{}
	var reportTime, reportTimeUTC string

	err := scanner.Scan(
		&report.ID,
		&report.LocationID,
		&report.AgentID,
		&report.Status,
		&reportTime,
		&reportTimeUTC,
		&report.Body,
		&report.LocationTimeZone,
	)
	if err != nil {
		return nil, err
	}

	if report.ReportTime, err = ParseTimeFromDB(reportTime); err != nil {
		return nil, fmt.Errorf("report %d: report_time: %w", report.ID, err)
	}
	if report.ReportTimeUTC, err = ParseTimeFromDB(reportTimeUTC); err != nil {
		return nil, fmt.Errorf("report %d: report_time_utc: %w", report.ID, err)
	}

	return report, nil
}

// ScanReportsWithTimeZone scans every remaining row, preserving row order.
func ScanReportsWithTimeZone(rows Rows) ([]*ReportWithTimeZone, error) {
	reports := make([]*ReportWithTimeZone, 0)
	for rows.Next() {
		report, err := ScanReportWithTimeZone(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// ScanLocation scans a single location from a database row
func ScanLocation(scanner Scanner) (*Location, error) {
	location := &Location{}
	if err := scanner.Scan(&location.ID, &location.Name, &location.TimeZone); err != nil {
		return nil, err
	}
	return location, nil
}

// ScanLocations scans multiple locations from database rows
func ScanLocations(rows Rows) ([]*Location, error) {
	var locations []*Location
	for rows.Next() {
		location, err := ScanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

// ScanAgent scans a single agent from a database row
func ScanAgent(scanner Scanner) (*Agent, error) {
	agent := &Agent{}
	if err := scanner.Scan(&agent.ID, &agent.CallSign); err != nil {
		return nil, err
	}
	return agent, nil
}
