package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulegraph/rulegraph/internal/core/condition"
	"github.com/rulegraph/rulegraph/internal/core/reconcile"
	"github.com/rulegraph/rulegraph/internal/core/trigger"
)

func ptr(v float64) *float64 { return &v }

func snapshotA() trigger.Snapshot {
	return trigger.Snapshot{
		Conditions: []trigger.ConditionRecord{
			{ID: "a1", Field: "status", Operator: "equals", Value: "open", X: ptr(250), Y: ptr(50)},
			{ID: "a2", Field: "tags", Operator: "contains_any", Value: "vip", X: ptr(250), Y: ptr(230)},
		},
		Edges: []trigger.EdgeRecord{{ID: "ae1", Source: "a1", Target: "a2"}},
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Fingerprint(snapshotA()), Fingerprint(snapshotA()))
	})

	t.Run("nil and empty edge lists fingerprint identically", func(t *testing.T) {
		a := trigger.Snapshot{Conditions: []trigger.ConditionRecord{{Field: "status", Operator: "equals", Value: "x"}}}
		b := a
		b.Edges = []trigger.EdgeRecord{}
		assert.Equal(t, Fingerprint(a), Fingerprint(b))
	})

	t.Run("content changes the fingerprint", func(t *testing.T) {
		a := snapshotA()
		b := snapshotA()
		b.Conditions[0].Value = "closed"
		assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	})
}

func TestHydrationGuard_Rehydrate(t *testing.T) {
	t.Run("first snapshot reseeds", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		g, reseeded, healed := guard.Rehydrate(snapshotA())
		require.True(t, reseeded)
		assert.False(t, healed)
		require.Len(t, g.Nodes, 2)
		require.Len(t, g.Edges, 1)
		assert.NoError(t, g.Validate())
	})

	t.Run("unchanged content is a no-op", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		_, reseeded, _ := guard.Rehydrate(snapshotA())
		require.True(t, reseeded)
		_, reseeded, _ = guard.Rehydrate(snapshotA())
		assert.False(t, reseeded)
	})

	t.Run("existing ids are preserved verbatim", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		g, _, _ := guard.Rehydrate(snapshotA())
		assert.Equal(t, "a1", g.Nodes[0].ID)
		assert.Equal(t, "a2", g.Nodes[1].ID)
		assert.Equal(t, "ae1", g.Edges[0].ID)
	})

	t.Run("missing ids are generated and reported as healed", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		snap := trigger.Snapshot{
			Conditions: []trigger.ConditionRecord{
				{Field: "status", Operator: "equals", Value: "open"},
				{Field: "status", Operator: "equals", Value: "closed"},
			},
		}
		g, reseeded, healed := guard.Rehydrate(snap)
		require.True(t, reseeded)
		assert.True(t, healed)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "gen-1", g.Nodes[0].ID)
		assert.Equal(t, "gen-2", g.Nodes[1].ID)
		assert.NotEqual(t, g.Nodes[0].ID, g.Nodes[1].ID)
	})

	t.Run("missing positions default to the layout column", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		snap := trigger.Snapshot{
			Conditions: []trigger.ConditionRecord{
				{ID: "c1", Field: "status", Operator: "equals", Value: "open"},
				{ID: "c2", Field: "status", Operator: "equals", Value: "closed"},
			},
		}
		g, _, _ := guard.Rehydrate(snap)
		assert.Equal(t, condition.Position{X: 250, Y: 50}, g.Nodes[0].Position)
		assert.Equal(t, condition.Position{X: 250, Y: 230}, g.Nodes[1].Position)
	})

	t.Run("dangling edges are dropped, never raised", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		snap := snapshotA()
		snap.Edges = append(snap.Edges, trigger.EdgeRecord{ID: "bad", Source: "a1", Target: "ghost"})
		g, _, _ := guard.Rehydrate(snap)
		require.Len(t, g.Edges, 1)
		assert.Equal(t, "ae1", g.Edges[0].ID)
	})

	t.Run("duplicate condition ids keep the first record", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		snap := trigger.Snapshot{
			Conditions: []trigger.ConditionRecord{
				{ID: "c1", Field: "status", Operator: "equals", Value: "first"},
				{ID: "c1", Field: "status", Operator: "equals", Value: "second"},
			},
		}
		g, _, _ := guard.Rehydrate(snap)
		require.Len(t, g.Nodes, 1)
		assert.Equal(t, "first", g.Nodes[0].Value)
	})

	t.Run("trigger switch reseeds wholesale", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		_, reseeded, _ := guard.Rehydrate(snapshotA())
		require.True(t, reseeded)

		// Same condition count, different content: must still reseed.
		b := trigger.Snapshot{
			Conditions: []trigger.ConditionRecord{
				{ID: "b1", Field: "assignee", Operator: "equals", Value: "alex", X: ptr(250), Y: ptr(50)},
				{ID: "b2", Field: "priority", Operator: "not_equals", Value: "low", X: ptr(250), Y: ptr(230)},
			},
		}
		g, reseeded, _ := guard.Rehydrate(b)
		require.True(t, reseeded)
		require.Len(t, g.Nodes, 2)
		assert.Equal(t, "b1", g.Nodes[0].ID)
		assert.Equal(t, "b2", g.Nodes[1].ID)
		assert.False(t, g.HasNode("a1"))
		assert.False(t, g.HasNode("a2"))
	})

	t.Run("hydration is refused while an emission is in flight", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		guard.BeginEmission()
		_, reseeded, _ := guard.Rehydrate(snapshotA())
		assert.False(t, reseeded)
		guard.EndEmission()
		_, reseeded, _ = guard.Rehydrate(snapshotA())
		assert.True(t, reseeded)
	})
}

func TestEmissionBridge(t *testing.T) {
	t.Run("round-trip law", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		g, _, _ := guard.Rehydrate(snapshotA())

		snap := Serialize(g)
		guard2 := NewHydrationGuard(reconcile.NewSequenceGenerator("other"), nil)
		g2, reseeded, healed := guard2.Rehydrate(snap)
		require.True(t, reseeded)
		assert.False(t, healed)
		assert.Equal(t, g, g2)
	})

	t.Run("emits synchronously exactly once", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		calls := 0
		bridge := NewEmissionBridge(func(conds []trigger.ConditionRecord, edges []trigger.EdgeRecord) {
			calls++
		}, guard)
		g, _, _ := guard.Rehydrate(snapshotA())
		bridge.Emit(g)
		assert.Equal(t, 1, calls)
	})

	t.Run("emitted content does not re-trigger hydration", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		var roundTripped trigger.Snapshot
		bridge := NewEmissionBridge(func(conds []trigger.ConditionRecord, edges []trigger.EdgeRecord) {
			roundTripped = trigger.Snapshot{Conditions: conds, Edges: edges}
		}, guard)

		// Legacy snapshot without ids: hydration heals, corrective emission fires.
		snap := trigger.Snapshot{
			Conditions: []trigger.ConditionRecord{{Field: "status", Operator: "equals", Value: "open"}},
		}
		g, reseeded, healed := guard.Rehydrate(snap)
		require.True(t, reseeded)
		require.True(t, healed)
		bridge.EmitCorrective(g)

		// The emitted snapshot differs only in the generated ids; it must be
		// recognized as already consumed.
		_, reseeded, _ = guard.Rehydrate(roundTripped)
		assert.False(t, reseeded)
	})

	t.Run("re-entrant hydration during delivery is suppressed", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		reentered := false
		bridge := NewEmissionBridge(func(conds []trigger.ConditionRecord, edges []trigger.EdgeRecord) {
			// Simulate the consumer synchronously pushing the state back in,
			// mangled enough to carry a different fingerprint.
			_, reseeded, _ := guard.Rehydrate(trigger.Snapshot{})
			reentered = reseeded
		}, guard)

		g, _, _ := guard.Rehydrate(snapshotA())
		bridge.Emit(g)
		assert.False(t, reentered)
	})

	t.Run("nil callback is legal", func(t *testing.T) {
		guard := NewHydrationGuard(reconcile.NewSequenceGenerator("gen"), nil)
		bridge := NewEmissionBridge(nil, guard)
		g, _, _ := guard.Rehydrate(snapshotA())
		assert.NotPanics(t, func() { bridge.Emit(g) })
	})
}

func TestSerialize_EmptyGraph(t *testing.T) {
	snap := Serialize(condition.Graph{})
	assert.NotNil(t, snap.Conditions)
	assert.NotNil(t, snap.Edges)
	assert.Empty(t, snap.Conditions)
	assert.Empty(t, snap.Edges)
}
