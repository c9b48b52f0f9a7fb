package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on an embedded SQLite database. A single
// kv table holds one row per collection key.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	tracer trace.Tracer
}

// OpenSQLite opens (or creates) the database at path and migrates the
// schema. Use ":memory:" for an in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		tracer: otel.Tracer("athena/store"),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the document under key into dest.
func (s *SQLiteStore) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "store.load",
		trace.WithAttributes(attribute.String("store.key", key)),
	)
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		span.SetAttributes(attribute.Bool("store.found", false))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}

	span.SetAttributes(
		attribute.Bool("store.found", true),
		attribute.Int("store.bytes", len(raw)),
	)
	return true, nil
}

// Save rewrites the document under key.
func (s *SQLiteStore) Save(ctx context.Context, key string, value interface{}) error {
	ctx, span := s.tracer.Start(ctx, "store.save",
		trace.WithAttributes(attribute.String("store.key", key)),
	)
	defer span.End()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	span.SetAttributes(attribute.Int("store.bytes", len(raw)))
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
