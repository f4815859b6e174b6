package services

import (
	"log/slog"

	"github.com/rulegraph/rulegraph/internal/core/condition"
	"github.com/rulegraph/rulegraph/internal/core/reconcile"
	"github.com/rulegraph/rulegraph/internal/core/trigger"
	"github.com/rulegraph/rulegraph/internal/infrastructure/metrics"
)

// HydrationGuard decides, per externally supplied snapshot, whether the
// session must be reseeded. It keys the decision on a content fingerprint,
// never on record counts, so switching between triggers that happen to hold
// the same number of conditions still hydrates correctly.
//
// The guard is single-threaded by contract; it is driven from the session
// facade only.
type HydrationGuard struct {
	gen reconcile.IDGenerator
	log *slog.Logger

	lastFingerprint string
	emitting        bool
}

// NewHydrationGuard creates a guard. A nil logger falls back to slog.Default.
func NewHydrationGuard(gen reconcile.IDGenerator, log *slog.Logger) *HydrationGuard {
	if gen == nil {
		gen = reconcile.NewUUIDGenerator()
	}
	if log == nil {
		log = slog.Default()
	}
	return &HydrationGuard{gen: gen, log: log}
}

// Rehydrate compares the snapshot's fingerprint against the one recorded at
// the previous hydration. Unchanged content is a no-op so in-progress edits
// survive. Changed content rebuilds the graph wholesale (a reseed, not a
// merge). The healed result reports whether any missing id was generated, in
// which case the caller owes exactly one corrective emission.
//
// While an emission is in flight the guard refuses to hydrate at all: the
// emitted snapshot may round-trip back synchronously, and re-seeding from it
// would start a hydrate-emit-hydrate loop.
func (h *HydrationGuard) Rehydrate(snap trigger.Snapshot) (g condition.Graph, reseeded bool, healed bool) {
	if h.emitting {
		return condition.Graph{}, false, false
	}
	fp := Fingerprint(snap)
	if fp == h.lastFingerprint {
		return condition.Graph{}, false, false
	}
	g, healed = h.rebuild(snap)
	h.lastFingerprint = fp
	metrics.IncHydrations()
	return g, true, healed
}

// NoteEmitted records the fingerprint of an emitted snapshot so that the
// round-tripped external state is recognized as already consumed.
func (h *HydrationGuard) NoteEmitted(snap trigger.Snapshot) {
	h.lastFingerprint = Fingerprint(snap)
}

// BeginEmission and EndEmission bracket an in-flight emission.
func (h *HydrationGuard) BeginEmission() { h.emitting = true }
func (h *HydrationGuard) EndEmission()   { h.emitting = false }

// rebuild constructs a fresh graph from the snapshot. Ids already present are
// preserved verbatim; missing ids are generated (healed). Malformed records -
// duplicate ids, edges naming absent nodes - are dropped with a warning
// rather than surfaced: a corrupt record must never crash the editor.
func (h *HydrationGuard) rebuild(snap trigger.Snapshot) (condition.Graph, bool) {
	var g condition.Graph
	healed := false

	nodeIDs := make(map[string]struct{}, len(snap.Conditions))
	for i, rec := range snap.Conditions {
		id := rec.ID
		if id == "" {
			id = h.gen()
			healed = true
		}
		if _, dup := nodeIDs[id]; dup {
			h.log.Warn("dropping condition with duplicate id", "id", id)
			metrics.IncDropped("duplicate_node_id")
			continue
		}
		nodeIDs[id] = struct{}{}

		pos := condition.PlacementFor(i)
		if rec.X != nil {
			pos.X = *rec.X
		}
		if rec.Y != nil {
			pos.Y = *rec.Y
		}
		g.Nodes = append(g.Nodes, condition.Node{
			ID:       id,
			Field:    condition.Field(rec.Field),
			Operator: condition.Operator(rec.Operator),
			Value:    rec.Value,
			Position: pos,
		})
	}

	edgeIDs := make(map[string]struct{}, len(snap.Edges))
	for _, rec := range snap.Edges {
		if _, ok := nodeIDs[rec.Source]; !ok {
			h.log.Warn("dropping edge with missing source", "source", rec.Source, "target", rec.Target)
			metrics.IncDropped("dangling_edge")
			continue
		}
		if _, ok := nodeIDs[rec.Target]; !ok {
			h.log.Warn("dropping edge with missing target", "source", rec.Source, "target", rec.Target)
			metrics.IncDropped("dangling_edge")
			continue
		}
		id := rec.ID
		if id == "" {
			id = h.gen()
			healed = true
		}
		if _, dup := edgeIDs[id]; dup {
			h.log.Warn("dropping edge with duplicate id", "id", id)
			metrics.IncDropped("duplicate_edge_id")
			continue
		}
		edgeIDs[id] = struct{}{}
		g.Edges = append(g.Edges, condition.Edge{ID: id, Source: rec.Source, Target: rec.Target})
	}

	return g, healed
}
