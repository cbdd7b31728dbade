package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pagelint/pagelint/internal/model"
)

// RunDB stores validation run history in a SQLite file.
//
// Design decision: one database file for all sites rather than a file
// per site. Compare queries span runs of the same URL, and a single
// file keeps backup and cleanup trivial.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB in the given directory.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "pagelint.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

func (rdb *RunDB) createTables() error {
	schema := `
	-- Validation runs store the full report JSON plus the summary
	-- columns history queries filter and sort on.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		locale TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		passed INTEGER NOT NULL,
		broken_links INTEGER NOT NULL,
		component_errors INTEGER NOT NULL,
		total_links INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_url ON runs(url);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`
	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata identifies one stored run without its full report body.
type RunMetadata struct {
	ID              int64
	URL             string
	Locale          string
	Timestamp       time.Time
	Passed          bool
	BrokenLinks     int
	ComponentErrors int
	TotalLinks      int
}

// SaveRun stores a completed run. Returns the new run's ID.
func (rdb *RunDB) SaveRun(ctx context.Context, report *model.PageReport) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("serialize report: %w", err)
	}
	summary := report.Summarize()

	passed := 0
	if summary.Passed() {
		passed = 1
	}

	result, err := rdb.db.ExecContext(ctx, `
	INSERT INTO runs (url, locale, passed, broken_links, component_errors, total_links, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.URL,
		report.Locale,
		passed,
		summary.BrokenLinks,
		summary.ComponentErrors,
		summary.TotalLinks,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return result.LastInsertId()
}

// LatestRun returns the most recent run for a URL, or nil when the URL
// was never validated.
func (rdb *RunDB) LatestRun(ctx context.Context, url string) (*model.PageReport, error) {
	var reportJSON string
	err := rdb.db.QueryRowContext(ctx, `
	SELECT report_json FROM runs
	WHERE url = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1`, url).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	return decodeReport(reportJSON)
}

// LastTwoRuns returns the two most recent runs for a URL, newest first.
// Fewer than two stored runs is an error: compare needs a baseline.
func (rdb *RunDB) LastTwoRuns(ctx context.Context, url string) (latest, previous *model.PageReport, err error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT report_json FROM runs
	WHERE url = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 2`, url)
	if err != nil {
		return nil, nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var reports []*model.PageReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, nil, fmt.Errorf("scan run: %w", err)
		}
		report, err := decodeReport(reportJSON)
		if err != nil {
			return nil, nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate runs: %w", err)
	}
	if len(reports) < 2 {
		return nil, nil, fmt.Errorf("need two stored runs for %s, have %d", url, len(reports))
	}
	return reports[0], reports[1], nil
}

// RunByID returns one stored run by its ID, or nil when absent.
func (rdb *RunDB) RunByID(ctx context.Context, id int64) (*model.PageReport, error) {
	var reportJSON string
	err := rdb.db.QueryRowContext(ctx,
		`SELECT report_json FROM runs WHERE id = ?`, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query run %d: %w", id, err)
	}
	return decodeReport(reportJSON)
}

// History returns run metadata for a URL, newest first.
func (rdb *RunDB) History(ctx context.Context, url string) (history []RunMetadata, err error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT id, url, locale, timestamp, passed, broken_links, component_errors, total_links
	FROM runs
	WHERE url = ?
	ORDER BY timestamp DESC, id DESC`, url)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		var (
			m         RunMetadata
			timestamp string
			passed    int
		)
		if err := rows.Scan(&m.ID, &m.URL, &m.Locale, &timestamp, &passed,
			&m.BrokenLinks, &m.ComponentErrors, &m.TotalLinks); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		m.Timestamp = parseTimestamp(timestamp)
		m.Passed = passed != 0
		history = append(history, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return history, nil
}

// ValidatedURLs returns every distinct URL with at least one stored run.
func (rdb *RunDB) ValidatedURLs(ctx context.Context) (urls []string, err error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT DISTINCT url FROM runs ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("query urls: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate urls: %w", err)
	}
	return urls, nil
}

func decodeReport(reportJSON string) (*model.PageReport, error) {
	var report model.PageReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("decode stored report: %w", err)
	}
	return &report, nil
}

// parseTimestamp handles the timestamp formats SQLite emits depending on
// how the value was written.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
