// Package condition provides the in-session graph entity
package condition

// Graph is the in-session condition graph. Node and edge order carries no
// meaning; slices are used so that emission stays deterministic.
// PRINCIPLES:
// - KISS: Simple struct, no complex hierarchies
// - SRP: Only responsible for graph structure, not reconciliation
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeIndex returns the index of the node with the given ID, or -1.
func (g *Graph) NodeIndex(id string) int {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	return g.NodeIndex(id) >= 0
}

// EdgeIndex returns the index of the edge with the given ID, or -1.
func (g *Graph) EdgeIndex(id string) int {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() Graph {
	out := Graph{}
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		copy(out.Nodes, g.Nodes)
	}
	if g.Edges != nil {
		out.Edges = make([]Edge, len(g.Edges))
		copy(out.Edges, g.Edges)
	}
	return out
}

// Validate ensures graph integrity: node/edge validity, ID uniqueness within
// each space, and referential integrity of every edge endpoint.
func (g *Graph) Validate() error {
	nodeIDs := make(map[string]struct{}, len(g.Nodes))
	for i := range g.Nodes {
		if err := g.Nodes[i].Validate(); err != nil {
			return err
		}
		if _, dup := nodeIDs[g.Nodes[i].ID]; dup {
			return ErrDuplicateNodeID
		}
		nodeIDs[g.Nodes[i].ID] = struct{}{}
	}
	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for i := range g.Edges {
		e := &g.Edges[i]
		if err := e.Validate(); err != nil {
			return err
		}
		if _, dup := edgeIDs[e.ID]; dup {
			return ErrDuplicateEdgeID
		}
		edgeIDs[e.ID] = struct{}{}
		if _, ok := nodeIDs[e.Source]; !ok {
			return ErrSourceNodeNotFound
		}
		if _, ok := nodeIDs[e.Target]; !ok {
			return ErrTargetNodeNotFound
		}
	}
	return nil
}
