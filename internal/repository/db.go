package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/debemdeboas/folio/internal/db"
)

// DBStateRepository keeps each key as a row of the SQLite state table.
type DBStateRepository struct { // implements StateRepository
	db db.DB
}

func NewDBStateRepository(db db.DB) *DBStateRepository {
	return &DBStateRepository{db: db}
}

func (r *DBStateRepository) Read(ctx context.Context, key string) ([]byte, error) {
	rows, err := r.db.Query(ctx, `SELECT value FROM state WHERE key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("error querying state: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error querying state: %w", err)
		}
		return nil, ErrAbsent
	}

	var value []byte
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("error scanning state: %w", err)
	}
	return value, nil
}

func (r *DBStateRepository) Write(ctx context.Context, key string, value []byte) error {
	res, err := r.db.Exec(ctx,
		`INSERT INTO state (key, value, modified_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, modified_at = excluded.modified_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("error saving state: %w", err)
	}

	repoLogger.Debug().Interface("result", res).Str("key", key).Msg("State saved")
	return nil
}

// LastModified reports when key was last written, or ErrAbsent.
func (r *DBStateRepository) LastModified(ctx context.Context, key string) (time.Time, error) {
	rows, err := r.db.Query(ctx, `SELECT modified_at FROM state WHERE key = ?`, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("error querying modified time: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return time.Time{}, ErrAbsent
	}
	var modified time.Time
	if err := rows.Scan(&modified); err != nil {
		return time.Time{}, fmt.Errorf("error scanning modified time: %w", err)
	}
	return modified, nil
}

func (r *DBStateRepository) Name() string { return "sqlite" }

func (r *DBStateRepository) Close() error {
	return r.db.Close()
}
