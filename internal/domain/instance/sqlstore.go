package instance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const instancesSchema = `
CREATE TABLE IF NOT EXISTS instances (
	title TEXT PRIMARY KEY,
	dir TEXT NOT NULL,
	installed BOOLEAN NOT NULL DEFAULT FALSE,
	custom_jar TEXT NOT NULL DEFAULT '',
	manifest_url TEXT NOT NULL DEFAULT '',
	launch_count INTEGER NOT NULL DEFAULT 0,
	updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)
`

const commitSql = `
INSERT INTO instances (title, dir, installed, custom_jar, manifest_url, updated)
VALUES ($1, $2, $3, $4, $5, datetime())
ON CONFLICT (title)
DO UPDATE SET dir = $2, installed = $3, custom_jar = $4, manifest_url = $5, updated = datetime();
`

// SQLStore keeps instance records in SQLite
type SQLStore struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn and initializes the schema
func Open(dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open instance store: %w", err)
	}

	store := &SQLStore{db: db}
	if err := store.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLStore wraps an existing connection
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Init creates the instances table if needed
func (s *SQLStore) Init() error {
	if _, err := s.db.Exec(instancesSchema); err != nil {
		return fmt.Errorf("failed to create instances table: %w", err)
	}
	return nil
}

// Commit inserts or updates an instance record
func (s *SQLStore) Commit(ctx context.Context, inst *Instance) error {
	_, err := s.db.ExecContext(ctx, commitSql, inst.Title, inst.Dir, inst.Installed, inst.CustomJar, inst.ManifestURL)
	if err != nil {
		return fmt.Errorf("failed to commit instance %s: %w", inst.Title, err)
	}
	return nil
}

// Get loads one instance by title
func (s *SQLStore) Get(ctx context.Context, title string) (*Instance, error) {
	var inst Instance
	err := s.db.GetContext(ctx, &inst,
		"SELECT title, dir, installed, custom_jar, manifest_url FROM instances WHERE title = $1", title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load instance %s: %w", title, err)
	}
	return &inst, nil
}

// List returns all instances ordered by title
func (s *SQLStore) List(ctx context.Context) ([]*Instance, error) {
	var instances []*Instance
	err := s.db.SelectContext(ctx, &instances,
		"SELECT title, dir, installed, custom_jar, manifest_url FROM instances ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return instances, nil
}

// RecordLaunch increments the launch counter of an instance. Callers invoke
// it after a successful spawn.
func (s *SQLStore) RecordLaunch(ctx context.Context, title string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE instances SET launch_count = launch_count + 1 WHERE title = $1", title)
	if err != nil {
		return 0, fmt.Errorf("failed to record launch for %s: %w", title, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	return s.LaunchCount(ctx, title)
}

// LaunchCount returns how many launches were recorded for an instance
func (s *SQLStore) LaunchCount(ctx context.Context, title string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, "SELECT launch_count FROM instances WHERE title = $1", title)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read launch count for %s: %w", title, err)
	}
	return count, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}
