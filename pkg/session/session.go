// Package session exposes the editing-session facade: the only entry points
// the presentation layer is allowed to call. Every mutation runs as one
// synchronous reconcile-then-emit step; no intermediate state is observable
// between the transition and its emission.
package session

import (
	"log/slog"
	"sort"

	"github.com/rulegraph/rulegraph/internal/app/services"
	"github.com/rulegraph/rulegraph/internal/core/condition"
	"github.com/rulegraph/rulegraph/internal/core/reconcile"
	"github.com/rulegraph/rulegraph/internal/core/trigger"
)

// Re-export the shapes callers need so they can avoid importing internal
// packages directly.
type Graph = condition.Graph
type Node = condition.Node
type Edge = condition.Edge
type NodePatch = reconcile.NodePatch
type NodeChange = reconcile.NodeChange
type EdgeChange = reconcile.EdgeChange
type Snapshot = trigger.Snapshot
type EmitFunc = services.EmitFunc

// Session owns the in-session graph for one open trigger editor. It ceases to
// exist when the editor is torn down; the external snapshot is the only
// durable representation.
type Session struct {
	graph    condition.Graph
	selected map[string]bool

	gen    reconcile.IDGenerator
	guard  *services.HydrationGuard
	bridge *services.EmissionBridge
}

// Option configures a Session.
type Option func(*options)

type options struct {
	emit EmitFunc
	gen  reconcile.IDGenerator
	log  *slog.Logger
}

// WithEmitFunc sets the callback invoked after every user-initiated mutation
// (and after the one corrective emission following an id-healing hydration).
func WithEmitFunc(emit EmitFunc) Option {
	return func(o *options) { o.emit = emit }
}

// WithIDGenerator overrides the id generator, mainly for tests.
func WithIDGenerator(gen reconcile.IDGenerator) Option {
	return func(o *options) { o.gen = gen }
}

// WithLogger sets the logger used when malformed snapshot records are dropped.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates an empty session. Defaults: UUID ids, slog.Default, no emit
// callback.
func New(opts ...Option) *Session {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.gen == nil {
		o.gen = reconcile.NewUUIDGenerator()
	}
	guard := services.NewHydrationGuard(o.gen, o.log)
	return &Session{
		selected: make(map[string]bool),
		gen:      o.gen,
		guard:    guard,
		bridge:   services.NewEmissionBridge(o.emit, guard),
	}
}

// Hydrate feeds the latest external snapshot through the hydration guard.
// Unchanged content preserves in-progress edits; changed content reseeds the
// session wholesale. If hydration generated previously-missing ids, one
// corrective emission persists them back immediately.
func (s *Session) Hydrate(snap trigger.Snapshot) {
	g, reseeded, healed := s.guard.Rehydrate(snap)
	if !reseeded {
		return
	}
	s.graph = g
	s.selected = make(map[string]bool)
	if healed {
		s.bridge.EmitCorrective(s.graph)
	}
}

// Graph returns a copy of the current graph for rendering.
func (s *Session) Graph() condition.Graph {
	return s.graph.Clone()
}

// Export serializes the current graph to the external snapshot shape without
// emitting it.
func (s *Session) Export() trigger.Snapshot {
	return services.Serialize(s.graph)
}

// Selected returns the ids of currently selected nodes, sorted.
func (s *Session) Selected() []string {
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AddCondition appends a new condition with defaults and returns its id.
func (s *Session) AddCondition() string {
	next := reconcile.AddNode(s.graph, s.gen)
	id := next.Nodes[len(next.Nodes)-1].ID
	s.commit(next)
	return id
}

// DeleteCondition removes a condition and every edge referencing it.
// Unknown ids are a no-op (the emission still reports current state once).
func (s *Session) DeleteCondition(id string) {
	delete(s.selected, id)
	s.commit(reconcile.DeleteNode(s.graph, id))
}

// UpdateCondition replaces field/operator/value on one condition.
func (s *Session) UpdateCondition(id string, patch reconcile.NodePatch) {
	s.commit(reconcile.UpdateNodeData(s.graph, id, patch))
}

// Connect draws an AND-connection between two conditions and returns the new
// edge id, or "" when either endpoint does not exist.
func (s *Session) Connect(source, target string) string {
	next := reconcile.Connect(s.graph, source, target, s.gen)
	var id string
	if len(next.Edges) > len(s.graph.Edges) {
		id = next.Edges[len(next.Edges)-1].ID
	}
	s.commit(next)
	return id
}

// OnNodesMoved applies a batch of position/selection/removal updates from the
// interactive surface. Selection is session state only and is never emitted.
func (s *Session) OnNodesMoved(changes []reconcile.NodeChange) {
	for _, ch := range changes {
		if ch.Kind != reconcile.NodeChangeSelect {
			continue
		}
		if ch.Selected {
			s.selected[ch.ID] = true
		} else {
			delete(s.selected, ch.ID)
		}
	}
	next := reconcile.ApplyNodeChanges(s.graph, changes)
	for id := range s.selected {
		if !next.HasNode(id) {
			delete(s.selected, id)
		}
	}
	s.commit(next)
}

// OnEdgesChanged applies a batch of edge add/remove updates from the
// interactive surface.
func (s *Session) OnEdgesChanged(changes []reconcile.EdgeChange) {
	s.commit(reconcile.ApplyEdgeChanges(s.graph, changes, s.gen))
}

// commit installs the next graph and emits it, as one synchronous unit.
// Scheduling the emission for a later event-loop turn is the stale-read
// hazard this engine exists to remove: two quick mutations would race their
// deferred reads and emit mixed or stale content.
func (s *Session) commit(next condition.Graph) {
	s.graph = next
	s.bridge.Emit(s.graph)
}
