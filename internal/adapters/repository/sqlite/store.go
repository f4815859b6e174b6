// Package sqlite provides a SQLite-backed trigger store for single-node
// deployments and local development.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rulegraph/rulegraph/internal/core/trigger"
	"github.com/rulegraph/rulegraph/pkg/serialization"
	"github.com/rulegraph/rulegraph/pkg/validation"
)

// Store implements trigger.Store on SQLite via database/sql.
type Store struct {
	db         *sql.DB
	serializer *serialization.Serializer
	tableName  string
}

// NewStore creates a SQLite trigger store. A nil serializer falls back to the
// default msgpack+zstd pipeline.
func NewStore(db *sql.DB, serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.DefaultSerializer()
	}
	return &Store{
		db:         db,
		serializer: serializer,
		tableName:  "triggers",
	}
}

// WithTableName allows overriding the default table name with validation.
// Only alphanumeric and underscore are permitted to prevent SQL injection via
// identifiers.
func (s *Store) WithTableName(name string) *Store {
	if isSafeIdent(name) {
		s.tableName = name
	}
	return s
}

func isSafeIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// EnsureSchema creates the backing table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			snapshot   BLOB NOT NULL,
			updated_at TEXT NOT NULL,
			version    TEXT NOT NULL
		)
	`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
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
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			snapshot = excluded.snapshot,
			updated_at = excluded.updated_at,
			version = excluded.version
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		t.ID, t.Name, data, t.UpdatedAt.UTC().Format(time.RFC3339Nano), t.Version)
	if err != nil {
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
		SELECT id, name, snapshot, updated_at, version FROM %s WHERE id = ?
	`, s.tableName)

	var t trigger.Trigger
	var data []byte
	var updatedAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &data, &updatedAt, &t.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, trigger.ErrTriggerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trigger: %w", err)
	}

	if t.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
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
		query += ` WHERE name = ?`
		args = append(args, filter.Name)
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}
	defer rows.Close()

	var out []*trigger.Trigger
	for rows.Next() {
		var t trigger.Trigger
		var data []byte
		var updatedAt string
		if err := rows.Scan(&t.ID, &t.Name, &data, &updatedAt, &t.Version); err != nil {
			return nil, fmt.Errorf("failed to scan trigger: %w", err)
		}
		if t.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
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

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trigger: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return trigger.ErrTriggerNotFound
	}
	return nil
}
