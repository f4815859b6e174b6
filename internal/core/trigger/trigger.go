// Package trigger provides trigger persistence entities and interfaces
package trigger

import (
	"context"
	"time"
)

// Trigger is a persisted workflow-automation trigger: a named condition
// snapshot owned by the form/persistence layer.
// PRINCIPLES:
// - KISS: Simple struct with clear fields
// - SRP: Only responsible for the persisted record shape
type Trigger struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Snapshot  Snapshot  `json:"snapshot"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   string    `json:"version"`
}

// Validate ensures trigger integrity
func (t *Trigger) Validate() error {
	if t.ID == "" {
		return ErrInvalidTriggerID
	}
	if t.Name == "" {
		return ErrInvalidTriggerName
	}
	return nil
}

// Store interface for trigger persistence (DIP - Dependency Inversion)
// PRINCIPLES:
// - ISP: Interface segregation with ≤5 methods
// - DIP: Core domain depends on interface, not implementations
type Store interface {
	// Save persists a trigger
	Save(ctx context.Context, t *Trigger) error

	// Load retrieves a trigger by ID
	Load(ctx context.Context, id string) (*Trigger, error)

	// List returns triggers matching the filter
	List(ctx context.Context, filter Filter) ([]*Trigger, error)

	// Delete removes a trigger by ID
	Delete(ctx context.Context, id string) error
}

// Filter for trigger queries
type Filter struct {
	Name   string `json:"name,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Validate ensures filter parameters are valid
func (f *Filter) Validate() error {
	if f.Limit < 0 {
		return ErrInvalidLimit
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}
	return nil
}
