// Package history persists adaptation results in a SQLite database so a
// teacher can review and export earlier work across restarts.
package history

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

	"text_differentiator/generator"
	"text_differentiator/readability"
)

// DBFile is the database file name inside the data directory.
const DBFile = "textdiff.db"

// timeLayout is fixed-width UTC so that text ordering is time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Entry is one stored adaptation with both readability reports.
type Entry struct {
	ID        int64               `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Grade     generator.Grade     `json:"grade"`
	Model     string              `json:"model"`
	Original  string              `json:"original"`
	Adapted   string              `json:"adapted"`
	Questions string              `json:"questions,omitempty"`
	Before    *readability.Report `json:"before,omitempty"`
	After     *readability.Report `json:"after,omitempty"`
}

// NewEntry scores an adaptation and wraps it for storage.
func NewEntry(a generator.Adaptation) Entry {
	e := Entry{
		CreatedAt: a.CreatedAt,
		Grade:     a.Grade,
		Model:     a.Model,
		Original:  a.Original,
		Adapted:   a.Adapted,
		Questions: a.Questions,
	}
	if r, ok := readability.Score(a.Original); ok {
		e.Before = &r
	}
	if r, ok := readability.Score(a.Adapted); ok {
		e.After = &r
	}
	return e
}

// Record converts the entry to the preview form shown in history lists.
func (e Entry) Record() generator.Record {
	return generator.Record{
		Timestamp: e.CreatedAt.Format("2006-01-02 15:04"),
		Grade:     e.Grade.String(),
		Original:  generator.Preview(e.Original, generator.PreviewLength),
		Adapted:   generator.Preview(e.Adapted, generator.PreviewLength),
	}
}

// Adaptation converts the entry back to the generator result.
func (e Entry) Adaptation() generator.Adaptation {
	return generator.Adaptation{
		Grade:     e.Grade,
		Model:     e.Model,
		Original:  e.Original,
		Adapted:   e.Adapted,
		Questions: e.Questions,
		CreatedAt: e.CreatedAt,
	}
}

// Store is a SQLite-backed history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Open.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool
	// EnableWAL turns on write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the options used by the CLI and server.
func DefaultOptions() Options {
	return Options{CreateIfNotExists: true, EnableWAL: true}
}

// Open opens or creates the history database in dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, DBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite has a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}
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

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS adaptations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		grade INTEGER NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		original TEXT NOT NULL,
		adapted TEXT NOT NULL,
		questions TEXT NOT NULL DEFAULT '',
		before_json TEXT,
		after_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_adaptations_created ON adaptations(created_at);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save inserts e and returns its ID.
func (s *Store) Save(ctx context.Context, e Entry) (int64, error) {
	before, err := marshalReport(e.Before)
	if err != nil {
		return 0, err
	}
	after, err := marshalReport(e.After)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO adaptations (created_at, grade, model, original, adapted, questions, before_json, after_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.CreatedAt.UTC().Format(timeLayout), int(e.Grade), e.Model, e.Original, e.Adapted, e.Questions, before, after)
	if err != nil {
		return 0, fmt.Errorf("failed to save adaptation: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT id, created_at, grade, model, original, adapted, questions, before_json, after_json
	FROM adaptations
	ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("history entry not found")

// Get returns the entry with id.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, created_at, grade, model, original, adapted, questions, before_json, after_json
	FROM adaptations WHERE id = ?`, id)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		e             Entry
		createdAt     string
		grade         int
		before, after sql.NullString
	)
	if err := sc.Scan(&e.ID, &createdAt, &grade, &e.Model, &e.Original, &e.Adapted, &e.Questions, &before, &after); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to scan history row: %w", err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse timestamp %q: %w", createdAt, err)
	}
	e.CreatedAt = ts
	e.Grade = generator.Grade(grade)
	if e.Before, err = unmarshalReport(before); err != nil {
		return Entry{}, err
	}
	if e.After, err = unmarshalReport(after); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM adaptations").Scan(&n)
	return n, err
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM adaptations")
	return err
}

func marshalReport(r *readability.Report) (sql.NullString, error) {
	if r == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to serialize report: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func unmarshalReport(s sql.NullString) (*readability.Report, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var r readability.Report
	if err := json.Unmarshal([]byte(s.String), &r); err != nil {
		return nil, fmt.Errorf("failed to parse stored report: %w", err)
	}
	return &r, nil
}
