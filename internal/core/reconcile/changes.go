// Package reconcile provides batched change descriptors from the interactive surface
package reconcile

import "github.com/rulegraph/rulegraph/internal/core/condition"

// NodeChangeKind enumerates what the interactive surface did to a node.
type NodeChangeKind string

const (
	// NodeChangePosition moves a node (drag)
	NodeChangePosition NodeChangeKind = "position"
	// NodeChangeRemove removes a node (multi-delete)
	NodeChangeRemove NodeChangeKind = "remove"
	// NodeChangeSelect toggles selection; never affects graph content
	NodeChangeSelect NodeChangeKind = "select"
)

// NodeChange is one entry of a batched node update.
type NodeChange struct {
	Kind     NodeChangeKind      `json:"kind"`
	ID       string              `json:"id"`
	Position *condition.Position `json:"position,omitempty"` // position changes only
	Selected bool                `json:"selected,omitempty"`  // select changes only
}

// EdgeChangeKind enumerates what the interactive surface did to an edge.
type EdgeChangeKind string

const (
	// EdgeChangeAdd appends a connection drawn on the surface
	EdgeChangeAdd EdgeChangeKind = "add"
	// EdgeChangeRemove removes a connection
	EdgeChangeRemove EdgeChangeKind = "remove"
)

// EdgeChange is one entry of a batched edge update. Add entries carry
// source/target; remove entries carry the edge id.
type EdgeChange struct {
	Kind   EdgeChangeKind `json:"kind"`
	ID     string         `json:"id,omitempty"`
	Source string         `json:"source,omitempty"`
	Target string         `json:"target,omitempty"`
}
