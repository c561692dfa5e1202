package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/reportgen/internal/model"
)

// ErrRunNotFound is returned when a requested run does not exist.
var ErrRunNotFound = errors.New("store: run not found")

// RunStore provides SQLite-based storage for completed pipeline runs.
// It manages connection pooling and provides methods for saving and
// querying run history.
//
// Design decision: We store the full report as JSON in a single column
// rather than normalizing it into tables. Reports are read back whole,
// never queried field by field, and the JSON schema can evolve without
// migrations. A few hot columns (target, timestamp, outcome) are
// duplicated for listing and filtering.
type RunStore struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunStore behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunStore at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunStore, error) {
	dbPath := filepath.Join(dbDir, "reportgen.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw prevents creating new files,
	// mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, and the run history sees a
	// handful of writes per invocation, so a single connection is plenty.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &RunStore{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *RunStore) createTables() error {
	schema := `
	-- Runs store complete pipeline results as JSON plus index columns
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target_url TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		succeeded INTEGER NOT NULL,
		dataset_source TEXT,
		report_path TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target_url);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata summarizes a stored run for listing without deserializing
// the full report.
type RunMetadata struct {
	// ID is the database row identifier.
	ID int64

	// TargetURL is the URL the run was performed against.
	TargetURL string

	// Timestamp is when the run was stored.
	Timestamp time.Time

	// Succeeded indicates the run finished without error.
	Succeeded bool

	// DatasetSource records where the dataset came from.
	DatasetSource string

	// ReportPath is the compiled report file of the run.
	ReportPath string
}

// SaveRun stores a completed run and returns its row ID.
func (s *RunStore) SaveRun(ctx context.Context, r *model.ResearchReport) (int64, error) {
	reportJSON, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	succeeded := 0
	if r.Succeeded() {
		succeeded = 1
	}

	result, err := s.db.ExecContext(ctx, `
	INSERT INTO runs (target_url, succeeded, dataset_source, report_path, report_json)
	VALUES (?, ?, ?, ?, ?)`,
		r.TargetURL, succeeded, r.DatasetSource, r.ReportPath, string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// GetRun retrieves a stored run by ID.
func (s *RunStore) GetRun(ctx context.Context, id int64) (*model.ResearchReport, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM runs WHERE id = ?`, id,
	).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	return decodeReport(reportJSON)
}

// LatestRun retrieves the most recent stored run for a target URL.
func (s *RunStore) LatestRun(ctx context.Context, targetURL string) (*model.ResearchReport, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, `
	SELECT report_json FROM runs
	WHERE target_url = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1`, targetURL,
	).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	return decodeReport(reportJSON)
}

// ListRuns returns metadata for the most recent runs, newest first.
// A non-positive limit returns all runs.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunMetadata, error) {
	query := `
	SELECT id, target_url, timestamp, succeeded, dataset_source, report_path
	FROM runs
	ORDER BY timestamp DESC, id DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var runs []RunMetadata
	for rows.Next() {
		var m RunMetadata
		var succeeded int
		var source, reportPath sql.NullString
		if err := rows.Scan(&m.ID, &m.TargetURL, &m.Timestamp, &succeeded, &source, &reportPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		m.Succeeded = succeeded == 1
		m.DatasetSource = source.String
		m.ReportPath = reportPath.String
		runs = append(runs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// decodeReport deserializes a stored report.
func decodeReport(reportJSON string) (*model.ResearchReport, error) {
	var r model.ResearchReport
	if err := json.Unmarshal([]byte(reportJSON), &r); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &r, nil
}
