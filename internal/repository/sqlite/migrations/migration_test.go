package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, Run(ctx, db, nil))

	for _, table := range []string{"location", "agent", "agent_location_report"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// A second run has nothing to do.
	require.NoError(t, Run(ctx, db, nil))
}

func TestReportTimeUTCMigration(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, UpTo(ctx, db, 1, nil))

	_, err := db.Exec(`
		INSERT INTO location (location_id, name, time_zone) VALUES
		(1, 'London', 'Europe/London'),
		(2, 'Tokyo', 'Asia/Tokyo'),
		(3, 'Nowhere', 'UTC')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO agent (agent_id, call_sign) VALUES (1, 'KESTREL')`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO agent_location_report (report_id, location_id, agent_id, status, report_time, report_body) VALUES
		(1, 1, 1, 'GREEN', '2024-06-01T10:00:00.000000000', ''),
		(2, 1, 1, 'GREEN', '2024-01-15T10:00:00.000000000', ''),
		(3, 2, 1, 'RED',   '2024-06-01T09:30:00.500000000', ''),
		(4, 3, 1, 'AMBER', '2024-06-01T09:30:00.000000000', '')`)
	require.NoError(t, err)

	require.NoError(t, Run(ctx, db, nil))

	expected := map[int64]string{
		1: "2024-06-01T09:00:00.000000000", // BST
		2: "2024-01-15T10:00:00.000000000", // GMT
		3: "2024-06-01T00:30:00.500000000",
		4: "2024-06-01T09:30:00.000000000",
	}

	rows, err := db.Query(`SELECT report_id, report_time_utc FROM agent_location_report ORDER BY report_id`)
	require.NoError(t, err)
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var id int64
		var utc string
		require.NoError(t, rows.Scan(&id, &utc))
		assert.Equal(t, expected[id], utc, "report %d", id)
		seen++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, len(expected), seen)
}

func TestReportTimeUTCMigration_UnknownZone(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, UpTo(ctx, db, 1, nil))

	_, err := db.Exec(`INSERT INTO location (location_id, name, time_zone) VALUES (1, 'Atlantis', 'Atlantic/Atlantis')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO agent (agent_id, call_sign) VALUES (1, 'KESTREL')`)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO agent_location_report (location_id, agent_id, status, report_time)
		VALUES (1, 1, 'GREEN', '2024-06-01T10:00:00.000000000')`)
	require.NoError(t, err)

	err = Run(ctx, db, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Atlantic/Atlantis")

	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
