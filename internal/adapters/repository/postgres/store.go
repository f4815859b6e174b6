// Package postgres provides a pgx-backed trigger store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rulegraph/rulegraph/internal/core/trigger"
	"github.com/rulegraph/rulegraph/pkg/serialization"
	"github.com/rulegraph/rulegraph/pkg/validation"
)

// Store implements trigger.Store on PostgreSQL. Snapshots are persisted as a
// serialized blob (msgpack+zstd by default) rather than normalized rows: the
// editor always reads and writes whole snapshots, never individual
// conditions.
type Store struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
	tableName  string
}

// NewStore creates a PostgreSQL trigger store. A nil serializer falls back to
// the default msgpack+zstd pipeline.
func NewStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &Store{
		pool:       pool,
		serializer: serializer,
		tableName:  "triggers",
	}
}

// EnsureSchema creates the backing table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			snapshot   BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			version    TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create triggers table: %w", err)
	}
	return nil
}

// Save validates and upserts a trigger.
func (s *Store) Save(ctx context.Context, t *trigger.Trigger) error {
	if t == nil {
		return trigger.ErrNilTrigger
	}
	if err := validation.ValidateTrigger(t); err != nil {
		return fmt.Errorf("invalid trigger: %w", err)
	}

	data, err := s.serializer.Serialize(t.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, snapshot, updated_at, version)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at,
			version = EXCLUDED.version
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query, t.ID, t.Name, data, t.UpdatedAt, t.Version); err != nil {
		return fmt.Errorf("failed to save trigger: %w", err)
	}
	return nil
}

// Load retrieves a trigger by ID.
func (s *Store) Load(ctx context.Context, id string) (*trigger.Trigger, error) {
	if id == "" {
		return nil, trigger.ErrInvalidTriggerID
	}

	query := fmt.Sprintf(`
		SELECT id, name, snapshot, updated_at, version FROM %s WHERE id = $1
	`, s.tableName)

	var t trigger.Trigger
	var data []byte
	err := s.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &data, &t.UpdatedAt, &t.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, trigger.ErrTriggerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trigger: %w", err)
	}

	if err := s.serializer.Deserialize(data, &t.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot: %w", err)
	}
	return &t, nil
}

// List returns triggers matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter trigger.Filter) ([]*trigger.Trigger, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, snapshot, updated_at, version FROM %s
	`, s.tableName)
	args := []interface{}{}
	if filter.Name != "" {
		query += ` WHERE name = $1`
		args = append(args, filter.Name)
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}
	defer rows.Close()

	var out []*trigger.Trigger
	for rows.Next() {
		var t trigger.Trigger
		var data []byte
		if err := rows.Scan(&t.ID, &t.Name, &data, &t.UpdatedAt, &t.Version); err != nil {
			return nil, fmt.Errorf("failed to scan trigger: %w", err)
		}
		if err := s.serializer.Deserialize(data, &t.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to deserialize snapshot: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Delete removes a trigger by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return trigger.ErrInvalidTriggerID
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trigger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return trigger.ErrTriggerNotFound
	}
	return nil
}
