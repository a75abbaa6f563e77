package inkpress

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides the counter, entry, comment,
// and tag operations. Every mutation that touches a counter or a tag ref
// count runs inside a single write transaction, so concurrent writers are
// serialized by the database rather than by in-process state.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// _txlock=immediate makes write transactions take the write lock at
	// BEGIN, so concurrent writers queue on busy_timeout instead of failing
	// with SQLITE_BUSY on a mid-transaction lock upgrade.
	dsn := "file:" + url.PathEscape(path) + "?_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS counters (
    name TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS entries (
    idx INTEGER PRIMARY KEY,
    author TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    html TEXT NOT NULL,
    tags TEXT NOT NULL,
    published_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS comments (
    idx INTEGER PRIMARY KEY,
    entry_idx INTEGER NOT NULL,
    author TEXT NOT NULL,
    website TEXT NOT NULL DEFAULT '',
    html TEXT NOT NULL,
    published_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_entry ON comments(entry_idx, idx);
CREATE TABLE IF NOT EXISTS tags (
    name TEXT PRIMARY KEY,
    ref_count INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

const (
	txMaxRetries   = 5
	txRetryBackoff = 25 * time.Millisecond
)

// withTx runs fn inside a write transaction, retrying the whole transaction
// a bounded number of times when the database reports lock contention.
// After exhausting retries the error is surfaced as ErrConflict rather than
// retrying forever.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	backoff := txRetryBackoff
	for attempt := 0; ; attempt++ {
		err := s.runTx(fn)
		if err == nil || !isBusy(err) {
			return err
		}
		if attempt >= txMaxRetries {
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		time.Sleep(backoff)
		backoff *= 2
	}
}

func (s *Store) runTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

// Timestamps are stored as RFC3339 text, which sorts correctly and stays
// readable in the sqlite shell.
const timeLayout = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// encodeTags stores a tag set in the ",a,b," form so a single instr match
// can filter listings by tag.
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ","
	}
	return "," + strings.Join(tags, ",") + ","
}

// decodeTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func decodeTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	return strings.Split(tagString, ",")
}
