package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/propdoc/pkg/propdoc"
	"github.com/cognicore/propdoc/pkg/propdoc/internalerr"
	"github.com/cognicore/propdoc/pkg/propdoc/store"
)

// timeLayout is RFC 3339 with a fixed-width fraction. RFC3339Nano trims
// trailing zeros, which breaks the lexicographic ORDER BY on created_at
// for timestamps inside the same second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements store.Store on a SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and creates the
// schema when missing.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for better concurrency between the API and readers.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	filename TEXT,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL,
	result TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_user ON analyses(user_id, created_at DESC);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// SaveAnalysis inserts one record. The record ID must be set.
func (s *sqliteStore) SaveAnalysis(ctx context.Context, rec store.AnalysisRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: record id is required", internalerr.ErrInvalidInput)
	}
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, user_id, filename, source, created_at, result)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Filename, rec.Source,
		rec.CreatedAt.UTC().Format(timeLayout), string(payload),
	)
	return err
}

// GetAnalysis fetches one record by ID.
func (s *sqliteStore) GetAnalysis(ctx context.Context, id string) (store.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, filename, source, created_at, result
		FROM analyses WHERE id = ?`, id)

	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return store.AnalysisRecord{}, fmt.Errorf("analysis %s: %w", id, internalerr.ErrNotFound)
	}
	return rec, err
}

// ListByUser returns a user's records, newest first.
func (s *sqliteStore) ListByUser(ctx context.Context, userID string, limit int) ([]store.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, filename, source, created_at, result
		FROM analyses WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []store.AnalysisRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanRecord(scan func(dest ...any) error) (store.AnalysisRecord, error) {
	var rec store.AnalysisRecord
	var createdAt, payload string

	if err := scan(&rec.ID, &rec.UserID, &rec.Filename, &rec.Source, &createdAt, &payload); err != nil {
		return store.AnalysisRecord{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	var result propdoc.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("decode result: %w", err)
	}
	rec.Result = result

	return rec, nil
}
