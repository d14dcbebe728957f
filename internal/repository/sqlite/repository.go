package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"location-reports/internal/errors"
	"location-reports/internal/logging"
	"location-reports/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Repository defines the interface for database operations
type Repository interface {
	// Reports
	CreateReport(ctx context.Context, report *Report) error
	GetReport(ctx context.Context, id int64) (*ReportWithTimeZone, error)
	DeleteReport(ctx context.Context, id int64) (int64, error)
	SearchReports(ctx context.Context, conds []Condition) ([]*ReportWithTimeZone, error)

	// Locations
	CreateLocation(ctx context.Context, location *Location) error
	GetLocation(ctx context.Context, id int64) (*Location, error)
	ListLocations(ctx context.Context) ([]*Location, error)

	// Agents
	CreateAgent(ctx context.Context, agent *Agent) error
	GetAgent(ctx context.Context, id int64) (*Agent, error)

	// Utility
	Close() error
}

// Options tunes a SQLiteRepository. Zero timeouts disable the deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
	MaxOpenConns int
	Logger       *slog.Logger
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		QueryTimeout: 5 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxOpenConns: 4,
	}
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db     *sql.DB
	opts   Options
	logger *slog.Logger
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(context.Background(), dbPath, DefaultOptions())
}

// NewWithOptions opens dbPath, applies pending migrations and returns the
// repository.
func NewWithOptions(ctx context.Context, dbPath string, opts Options) (*SQLiteRepository, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	if dbPath == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("enable foreign keys", err)
		}
	} else if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := migrations.Run(ctx, db, logger); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts, logger: logger}, nil
}

func dsn(dbPath string) string {
	if dbPath == MemoryPath {
		return dbPath
	}
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for tooling such as the migrate command.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

const reportFrom = `
	FROM agent_location_report
	JOIN location ON agent_location_report.location_id = location.location_id`

// CreateReport inserts a report and sets its ID. Both time fields must
// already be populated.
func (r *SQLiteRepository) CreateReport(ctx context.Context, report *Report) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	INSERT INTO agent_location_report (location_id, agent_id, status, report_time, report_time_utc, report_body)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		report.LocationID,
		report.AgentID,
		report.Status,
		FormatTimeForDB(report.ReportTime),
		FormatInstantForDB(report.ReportTimeUTC),
		report.Body,
	)
	if err != nil {
		return err
	}

	report.ID = id
	return nil
}

// GetReport fetches one report joined with its location's time zone.
func (r *SQLiteRepository) GetReport(ctx context.Context, id int64) (*ReportWithTimeZone, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + reportColumns + reportFrom + `
	WHERE agent_location_report.report_id = ?`

	return QuerySingle(ctx, r.db, query, ScanReportWithTimeZone, "report", fmt.Sprintf("%d", id), id)
}

// DeleteReport removes a report by ID and returns how many rows went away.
// Deleting a missing report is not an error.
func (r *SQLiteRepository) DeleteReport(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM agent_location_report WHERE report_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, id)
}

// SearchReports returns every report matching all conditions, in report ID
// order. The query runs on a single connection that is released before
// returning.
func (r *SQLiteRepository) SearchReports(ctx context.Context, conds []Condition) ([]*ReportWithTimeZone, error) {
	where, err := BuildWhere(conds)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.readContext(ctx)
	defer cancel()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, HandleDatabaseError("acquire connection", err)
	}
	defer conn.Close()

	query := `SELECT ` + reportColumns + reportFrom + where.Clause() + `
	ORDER BY agent_location_report.report_id ASC`

	r.logger.Debug("searching reports", "where", where.Expr, "params", len(where.Args))

	return QueryMultiple(ctx, conn, query, ScanReportsWithTimeZone, "reports", where.Args...)
}

// CreateLocation creates a new location
func (r *SQLiteRepository) CreateLocation(ctx context.Context, location *Location) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO location (name, time_zone) VALUES (?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, location.Name, location.TimeZone)
	if err != nil {
		return err
	}
	location.ID = id
	return nil
}

// GetLocation retrieves a location by ID
func (r *SQLiteRepository) GetLocation(ctx context.Context, id int64) (*Location, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT location_id, name, time_zone FROM location WHERE location_id = ?`
	return QuerySingle(ctx, r.db, query, ScanLocation, "location", fmt.Sprintf("%d", id), id)
}

// ListLocations retrieves all locations
func (r *SQLiteRepository) ListLocations(ctx context.Context) ([]*Location, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT location_id, name, time_zone FROM location ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanLocations, "locations")
}

// CreateAgent creates a new agent. Call signs are unique.
func (r *SQLiteRepository) CreateAgent(ctx context.Context, agent *Agent) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `INSERT INTO agent (call_sign) VALUES (?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, agent.CallSign)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errors.NewOperationInvalidError(fmt.Sprintf("Call sign %q is already registered", agent.CallSign))
		}
		return err
	}
	agent.ID = id
	return nil
}

// GetAgent retrieves an agent by ID
func (r *SQLiteRepository) GetAgent(ctx context.Context, id int64) (*Agent, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT agent_id, call_sign FROM agent WHERE agent_id = ?`
	return QuerySingle(ctx, r.db, query, ScanAgent, "agent", fmt.Sprintf("%d", id), id)
}
