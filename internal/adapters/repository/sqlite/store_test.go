package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulegraph/rulegraph/internal/core/trigger"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleTrigger(id, name string, updatedAt time.Time) *trigger.Trigger {
	return &trigger.Trigger{
		ID:   id,
		Name: name,
		Snapshot: trigger.Snapshot{
			Conditions: []trigger.ConditionRecord{
				{ID: id + "-c1", Field: "status", Operator: "equals", Value: "open"},
				{ID: id + "-c2", Field: "tags", Operator: "contains_any", Value: "vip"},
			},
			Edges: []trigger.EdgeRecord{{ID: id + "-e1", Source: id + "-c1", Target: id + "-c2"}},
		},
		UpdatedAt: updatedAt,
		Version:   "1",
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t), nil)
	require.NoError(t, store.EnsureSchema(ctx))

	in := sampleTrigger("t1", "VIP onboarding", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, in.Snapshot.Conditions, out.Snapshot.Conditions)
	assert.Equal(t, in.Snapshot.Edges, out.Snapshot.Edges)
	assert.True(t, in.UpdatedAt.Equal(out.UpdatedAt))
}

func TestSQLiteStore_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t), nil)
	require.NoError(t, store.EnsureSchema(ctx))

	first := sampleTrigger("t1", "before", time.Now().UTC())
	require.NoError(t, store.Save(ctx, first))

	second := sampleTrigger("t1", "after", time.Now().UTC())
	require.NoError(t, store.Save(ctx, second))

	out, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "after", out.Name)

	all, err := store.List(ctx, trigger.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteStore_ListFilter(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t), nil)
	require.NoError(t, store.EnsureSchema(ctx))

	base := time.Now().UTC()
	require.NoError(t, store.Save(ctx, sampleTrigger("t1", "alpha", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(ctx, sampleTrigger("t2", "beta", base.Add(-1*time.Hour))))
	require.NoError(t, store.Save(ctx, sampleTrigger("t3", "alpha", base)))

	t.Run("newest first", func(t *testing.T) {
		out, err := store.List(ctx, trigger.Filter{})
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.Equal(t, "t3", out[0].ID)
	})

	t.Run("by name with limit", func(t *testing.T) {
		out, err := store.List(ctx, trigger.Filter{Name: "alpha", Limit: 1})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "t3", out[0].ID)
	})
}

func TestSQLiteStore_DeleteAndErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t), nil)
	require.NoError(t, store.EnsureSchema(ctx))

	require.NoError(t, store.Save(ctx, sampleTrigger("t1", "alpha", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "t1"))
	assert.ErrorIs(t, store.Delete(ctx, "t1"), trigger.ErrTriggerNotFound)

	_, err := store.Load(ctx, "t1")
	assert.ErrorIs(t, err, trigger.ErrTriggerNotFound)

	assert.ErrorIs(t, store.Save(ctx, nil), trigger.ErrNilTrigger)
	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, trigger.ErrInvalidTriggerID)
}

func TestSQLiteStore_RejectsMalformedSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore(openTestDB(t), nil)
	require.NoError(t, store.EnsureSchema(ctx))

	bad := sampleTrigger("t1", "bad", time.Now().UTC())
	bad.Snapshot.Edges[0].Target = "ghost"
	err := store.Save(ctx, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing condition")
}

func TestWithTableName(t *testing.T) {
	store := NewStore(openTestDB(t), nil)

	store.WithTableName("custom_triggers")
	assert.Equal(t, "custom_triggers", store.tableName)

	// Unsafe identifiers are ignored.
	store.WithTableName("drop table; --")
	assert.Equal(t, "custom_triggers", store.tableName)
}
