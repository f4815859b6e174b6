// Package trigger provides the externally owned trigger record and its flat
// snapshot shapes, following Clean Architecture principles with zero external
// dependencies. The snapshot is the only durable representation of a
// condition graph; the editing session hydrates from it and emits back to it.
package trigger

// ConditionRecord is the flat external shape of one condition. Legacy records
// may lack an id and a position; hydration heals both.
type ConditionRecord struct {
	ID       string   `json:"id,omitempty"`
	Field    string   `json:"field"`
	Operator string   `json:"operator"`
	Value    string   `json:"value"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
}

// EdgeRecord is the flat external shape of one connection.
type EdgeRecord struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Snapshot is the externally supplied (conditions, edges) pair.
type Snapshot struct {
	Conditions []ConditionRecord `json:"conditions"`
	Edges      []EdgeRecord      `json:"edges,omitempty"`
}

// Normalize returns a copy with nil slices replaced by empty ones, so that a
// record with no edges and a record with an empty edge list fingerprint
// identically.
func (s Snapshot) Normalize() Snapshot {
	out := Snapshot{
		Conditions: make([]ConditionRecord, len(s.Conditions)),
		Edges:      make([]EdgeRecord, len(s.Edges)),
	}
	copy(out.Conditions, s.Conditions)
	copy(out.Edges, s.Edges)
	return out
}
