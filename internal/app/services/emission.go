package services

import (
	"github.com/rulegraph/rulegraph/internal/core/condition"
	"github.com/rulegraph/rulegraph/internal/core/trigger"
	"github.com/rulegraph/rulegraph/internal/infrastructure/metrics"
)

// EmitFunc receives the serialized session graph. The owning form persists it
// as the trigger's conditions/edges arrays; the same content round-trips back
// as the next external snapshot.
type EmitFunc func(conditions []trigger.ConditionRecord, edges []trigger.EdgeRecord)

// Serialize flattens a graph to the external snapshot shape. For any graph
// produced by hydration followed by reconciler transitions it is the exact
// inverse of the guard's rebuild, up to insignificant ordering.
func Serialize(g condition.Graph) trigger.Snapshot {
	snap := trigger.Snapshot{
		Conditions: make([]trigger.ConditionRecord, 0, len(g.Nodes)),
		Edges:      make([]trigger.EdgeRecord, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		x, y := n.Position.X, n.Position.Y
		snap.Conditions = append(snap.Conditions, trigger.ConditionRecord{
			ID:       n.ID,
			Field:    string(n.Field),
			Operator: string(n.Operator),
			Value:    n.Value,
			X:        &x,
			Y:        &y,
		})
	}
	for _, e := range g.Edges {
		snap.Edges = append(snap.Edges, trigger.EdgeRecord{ID: e.ID, Source: e.Source, Target: e.Target})
	}
	return snap
}

// EmissionBridge delivers the session graph to the owning form, synchronously
// with respect to the transition that produced it. Deferring the delivery to
// a later event-loop turn would let a second transition commit before the
// first delivery reads state, emitting either mixed or stale content.
type EmissionBridge struct {
	emit  EmitFunc
	guard *HydrationGuard
}

// NewEmissionBridge creates a bridge. A nil emit callback is legal; the
// bridge then only maintains the guard's fingerprint bookkeeping.
func NewEmissionBridge(emit EmitFunc, guard *HydrationGuard) *EmissionBridge {
	return &EmissionBridge{emit: emit, guard: guard}
}

// Emit serializes g and invokes the callback exactly once. The emitted
// fingerprint is recorded first so the content coming back through Rehydrate
// is recognized as already consumed, and the guard is bracketed so a
// synchronous round-trip cannot re-seed mid-delivery.
func (b *EmissionBridge) Emit(g condition.Graph) {
	snap := Serialize(g)
	b.guard.NoteEmitted(snap)
	metrics.IncEmissions()
	if b.emit == nil {
		return
	}
	b.guard.BeginEmission()
	defer b.guard.EndEmission()
	b.emit(snap.Conditions, snap.Edges)
}

// EmitCorrective is the single self-healing emission issued right after a
// hydration that generated previously-missing ids, persisting them back.
func (b *EmissionBridge) EmitCorrective(g condition.Graph) {
	metrics.IncCorrectiveEmissions()
	b.Emit(g)
}
