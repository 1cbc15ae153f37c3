package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"clipedit/internal/config"
	"clipedit/internal/domain"
	"clipedit/internal/logging"
	"clipedit/internal/ports"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

var log = logging.ForComponent(logging.CompJournal)

// Journal implements ports.SessionJournal using SQLite. Clipboard content is
// never stored, only sizes and timings.
type Journal struct {
	db     *sql.DB
	dbPath string
	driver string
}

// Ensure Journal implements SessionJournal
var _ ports.SessionJournal = (*Journal)(nil)

// Option configures the Journal
type Option func(*Journal)

// WithDriver selects the database/sql driver: "sqlite" (modernc, pure Go)
// or "sqlite3" (mattn, needs cgo)
func WithDriver(driver string) Option {
	return func(j *Journal) {
		if driver != "" {
			j.driver = driver
		}
	}
}

// NewJournal creates a new, unopened SQLite journal
func NewJournal(opts ...Option) *Journal {
	j := &Journal{driver: config.DriverModernc}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Open creates or opens the journal database at path
func (j *Journal) Open(path string) error {
	j.dbPath = path

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open(j.driver, path)
	if err != nil {
		return fmt.Errorf("failed to open database with %s driver: %w", j.driver, err)
	}
	j.db = db

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			target_file TEXT NOT NULL,
			editor TEXT NOT NULL,
			backend TEXT NOT NULL,
			bytes_before INTEGER NOT NULL,
			bytes_after INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion,
	); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	log.Debug("journal_opened", slog.String("path", path), slog.String("driver", j.driver))
	return nil
}

// Path returns the database file location
func (j *Journal) Path() string {
	return j.dbPath
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record stores a finished session. Recording the same ID twice replaces it.
func (j *Journal) Record(s *domain.EditSession) error {
	if j.db == nil {
		return fmt.Errorf("journal not open")
	}
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO sessions
			(id, target_file, editor, backend, bytes_before, bytes_after, started_at, finished_at, outcome, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TargetFile, s.Editor, s.Backend,
		s.BytesBefore(), s.BytesAfter,
		s.StartedAt.UnixMilli(), unixMilliOrZero(s.FinishedAt),
		string(s.Outcome), s.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record session %s: %w", s.ID, err)
	}
	log.Debug("session_recorded", slog.String("session", s.ID), slog.String("outcome", string(s.Outcome)))
	return nil
}

// Recent returns up to limit sessions, newest first
func (j *Journal) Recent(limit int) ([]domain.EditSession, error) {
	if j.db == nil {
		return nil, fmt.Errorf("journal not open")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT id, target_file, editor, backend, bytes_before, bytes_after, started_at, finished_at, outcome, error
		FROM sessions
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.EditSession
	for rows.Next() {
		var (
			s                 domain.EditSession
			started, finished int64
			outcome           string
		)
		if err := rows.Scan(&s.ID, &s.TargetFile, &s.Editor, &s.Backend, &s.SnapshotSize, &s.BytesAfter,
			&started, &finished, &outcome, &s.Error); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.StartedAt = time.UnixMilli(started)
		if finished > 0 {
			s.FinishedAt = time.UnixMilli(finished)
		}
		s.Outcome = domain.Outcome(outcome)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func unixMilliOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
