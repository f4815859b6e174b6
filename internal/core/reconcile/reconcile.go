// Package reconcile implements the pure transition functions over the
// condition graph. Every function takes the current graph by value and
// returns the next graph; no I/O, no ambient time or randomness beyond the
// injected id generator. All transitions preserve referential integrity and
// id stability, and are total: unknown ids degrade to no-ops, never errors.
// PRINCIPLES:
// - SRP: Owns state transitions only; hydration and emission live elsewhere
// - KISS: Plain slice manipulation, copy-on-write
package reconcile

import "github.com/rulegraph/rulegraph/internal/core/condition"

// NodePatch carries partial updates for a node's condition data. Nil fields
// are left untouched. Positions are not patchable here; they travel through
// ApplyNodeChanges.
type NodePatch struct {
	Field    *condition.Field
	Operator *condition.Operator
	Value    *string
}

// AddNode appends a new condition with a fresh id, default field/operator,
// an empty value, and a placement below all existing nodes.
func AddNode(g condition.Graph, gen IDGenerator) condition.Graph {
	next := g.Clone()
	next.Nodes = append(next.Nodes, condition.Node{
		ID:       gen(),
		Field:    condition.DefaultField,
		Operator: condition.DefaultOperator,
		Value:    "",
		Position: condition.PlacementFor(len(g.Nodes)),
	})
	return next
}

// DeleteNode removes the node with the given id and cascades to every edge
// referencing it. Unknown ids are a no-op.
func DeleteNode(g condition.Graph, id string) condition.Graph {
	idx := g.NodeIndex(id)
	if idx < 0 {
		return g
	}
	next := g.Clone()
	next.Nodes = append(next.Nodes[:idx], next.Nodes[idx+1:]...)
	next.Edges = dropEdgesTouching(next.Edges, id)
	return next
}

// UpdateNodeData replaces field/operator/value on the node with the given id.
// Unknown ids are a no-op.
func UpdateNodeData(g condition.Graph, id string, patch NodePatch) condition.Graph {
	idx := g.NodeIndex(id)
	if idx < 0 {
		return g
	}
	next := g.Clone()
	n := &next.Nodes[idx]
	if patch.Field != nil {
		n.Field = *patch.Field
	}
	if patch.Operator != nil {
		n.Operator = *patch.Operator
	}
	if patch.Value != nil {
		n.Value = *patch.Value
	}
	return next
}

// ApplyNodeChanges applies a batch of position/removal updates in order.
// Removals cascade to referencing edges exactly like DeleteNode. Selection
// entries never touch graph content and are skipped here.
func ApplyNodeChanges(g condition.Graph, changes []NodeChange) condition.Graph {
	next := g.Clone()
	for _, ch := range changes {
		switch ch.Kind {
		case NodeChangePosition:
			if ch.Position == nil {
				continue
			}
			if idx := next.NodeIndex(ch.ID); idx >= 0 {
				next.Nodes[idx].Position = *ch.Position
			}
		case NodeChangeRemove:
			if idx := next.NodeIndex(ch.ID); idx >= 0 {
				next.Nodes = append(next.Nodes[:idx], next.Nodes[idx+1:]...)
				next.Edges = dropEdgesTouching(next.Edges, ch.ID)
			}
		case NodeChangeSelect:
			// selection is session state, not graph content
		}
	}
	return next
}

// Connect appends a new edge with a fresh id. A connection naming a
// nonexistent source or target is a no-op. Parallel edges and self-loops are
// not rejected here; that policy belongs to the caller.
func Connect(g condition.Graph, source, target string, gen IDGenerator) condition.Graph {
	if !g.HasNode(source) || !g.HasNode(target) {
		return g
	}
	next := g.Clone()
	next.Edges = append(next.Edges, condition.Edge{
		ID:     gen(),
		Source: source,
		Target: target,
	})
	return next
}

// ApplyEdgeChanges applies a batch of edge add/remove updates in order.
// Removing an edge never cascades. Adds naming unknown endpoints are dropped.
func ApplyEdgeChanges(g condition.Graph, changes []EdgeChange, gen IDGenerator) condition.Graph {
	next := g.Clone()
	for _, ch := range changes {
		switch ch.Kind {
		case EdgeChangeAdd:
			if !next.HasNode(ch.Source) || !next.HasNode(ch.Target) {
				continue
			}
			id := ch.ID
			if id == "" {
				id = gen()
			}
			next.Edges = append(next.Edges, condition.Edge{ID: id, Source: ch.Source, Target: ch.Target})
		case EdgeChangeRemove:
			if idx := next.EdgeIndex(ch.ID); idx >= 0 {
				next.Edges = append(next.Edges[:idx], next.Edges[idx+1:]...)
			}
		}
	}
	return next
}

// dropEdgesTouching filters out every edge whose source or target is id.
func dropEdgesTouching(edges []condition.Edge, id string) []condition.Edge {
	out := edges[:0]
	for _, e := range edges {
		if e.Source == id || e.Target == id {
			continue
		}
		out = append(out, e)
	}
	return out
}
