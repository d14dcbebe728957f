package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddReportTimeUTC, downAddReportTimeUTC)
}

// upAddReportTimeUTC adds report_time_utc and fills it from the stored wall
// clock and the owning location's time zone.
func upAddReportTimeUTC(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx,
		`ALTER TABLE agent_location_report ADD COLUMN report_time_utc TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("failed to add report_time_utc: %w", err)
	}

	// Read all rows into memory first to avoid locking issues
	type entry struct {
		id         int64
		reportTime string
		timeZone   string
	}
	var entries []entry

	rows, err := tx.QueryContext(ctx, `
	SELECT agent_location_report.report_id, agent_location_report.report_time, location.time_zone
	FROM agent_location_report
	JOIN location ON agent_location_report.location_id = location.location_id`)
	if err != nil {
		return fmt.Errorf("failed to query reports: %w", err)
	}
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.reportTime, &e.timeZone); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan report: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating reports: %w", err)
	}
	rows.Close()

	stmt, err := tx.PrepareContext(ctx, `UPDATE agent_location_report SET report_time_utc = ? WHERE report_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	zones := make(map[string]*time.Location)
	for _, e := range entries {
		loc, ok := zones[e.timeZone]
		if !ok {
			loc, err = time.LoadLocation(e.timeZone)
			if err != nil {
				return fmt.Errorf("report %d: unknown time zone %q: %w", e.id, e.timeZone, err)
			}
			zones[e.timeZone] = loc
		}

		wall, err := time.ParseInLocation(timeLayout, e.reportTime, loc)
		if err != nil {
			return fmt.Errorf("report %d: failed to parse report_time %q: %w", e.id, e.reportTime, err)
		}

		if _, err := stmt.ExecContext(ctx, wall.UTC().Format(timeLayout), e.id); err != nil {
			return fmt.Errorf("report %d: failed to update report_time_utc: %w", e.id, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`CREATE INDEX idx_agent_location_report_time_utc ON agent_location_report (report_time_utc)`); err != nil {
		return fmt.Errorf("failed to index report_time_utc: %w", err)
	}

	return nil
}

func downAddReportTimeUTC(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_agent_location_report_time_utc`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `ALTER TABLE agent_location_report DROP COLUMN report_time_utc`)
	return err
}
