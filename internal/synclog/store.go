package synclog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Record is one uploaded workout.
type Record struct {
	ID          int64
	WorkoutID   string
	ActivityID  int64
	ActivityURL string
	RunID       string
	UploadedAt  time.Time
}

// Store manages upload history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the sync log database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Add inserts an upload record and returns it with its assigned ID.
func (s *Store) Add(ctx context.Context, record Record) (Record, error) {
	uploadedAt := record.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}
	uploadedAt = uploadedAt.UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO uploads (workout_id, activity_id, activity_url, run_id, uploaded_at)
         VALUES (?, ?, ?, ?, ?)`,
		record.WorkoutID,
		record.ActivityID,
		record.ActivityURL,
		record.RunID,
		uploadedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert upload record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("last insert id: %w", err)
	}

	record.ID = id
	record.UploadedAt = uploadedAt
	return record, nil
}

// ByWorkoutID returns upload records for one workout, oldest first.
func (s *Store) ByWorkoutID(ctx context.Context, workoutID string) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, workout_id, activity_id, activity_url, run_id, uploaded_at
         FROM uploads WHERE workout_id = ? ORDER BY id`,
		workoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("query uploads for workout %s: %w", workoutID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// List returns all upload records, most recent first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, workout_id, activity_id, activity_url, run_id, uploaded_at
         FROM uploads ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var record Record
		var uploadedAt string
		if err := rows.Scan(
			&record.ID,
			&record.WorkoutID,
			&record.ActivityID,
			&record.ActivityURL,
			&record.RunID,
			&uploadedAt,
		); err != nil {
			return nil, fmt.Errorf("scan upload record: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, uploadedAt)
		if err != nil {
			return nil, fmt.Errorf("parse uploaded_at %q: %w", uploadedAt, err)
		}
		record.UploadedAt = parsed
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upload records: %w", err)
	}
	return records, nil
}
