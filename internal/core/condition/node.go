// Package condition provides node definitions
package condition

// Layout placement for nodes that arrive without a position. Positions are
// layout-only and never affect semantics.
const (
	DefaultColumnX = 250
	RowHeight      = 180
	RowPadding     = 50
)

// Position is a 2-D layout coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlacementFor returns the default position for the node at the given row.
func PlacementFor(index int) Position {
	return Position{X: DefaultColumnX, Y: float64(index)*RowHeight + RowPadding}
}

// Node represents a single filter condition in the graph
// PRINCIPLES:
// - KISS: Simple node representation
// - SRP: Only responsible for condition data
type Node struct {
	ID       string   `json:"id"`
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value"` // scalar or comma-separated list, operator-dependent and opaque here
	Position Position `json:"position"`
}

// Validate ensures node integrity
func (n *Node) Validate() error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if !KnownField(n.Field) {
		return ErrUnknownField
	}
	if !KnownOperator(n.Operator) {
		return ErrUnknownOperator
	}
	return nil
}
