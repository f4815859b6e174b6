// Package condition provides edge definitions
package condition

// Edge joins two conditions with logical AND, the only connective the model
// supports. Self-loops and parallel edges are legal at this level; rejecting
// them is a policy decision left to callers.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"` // Source node ID
	Target string `json:"target"` // Target node ID
}

// Validate ensures edge integrity
func (e *Edge) Validate() error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if e.Source == "" {
		return ErrInvalidSource
	}
	if e.Target == "" {
		return ErrInvalidTarget
	}
	return nil
}
