// Package memory provides a thread-safe in-memory trigger store, the default
// backing for tests and single-process use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rulegraph/rulegraph/internal/core/trigger"
	"github.com/rulegraph/rulegraph/pkg/validation"
)

// Store implements trigger.Store with a mutex-guarded map.
// PRINCIPLES:
// - KISS: Simple map-based storage
// - DIP: Implements the trigger.Store interface
type Store struct {
	mu       sync.RWMutex
	triggers map[string]*trigger.Trigger
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{triggers: make(map[string]*trigger.Trigger)}
}

// Save validates and stores a copy of the trigger. Unlike the editor's
// hydration path, persistence refuses malformed snapshots loudly.
func (s *Store) Save(ctx context.Context, t *trigger.Trigger) error {
	if t == nil {
		return trigger.ErrNilTrigger
	}
	if err := validation.ValidateTrigger(t); err != nil {
		return fmt.Errorf("invalid trigger: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers[t.ID] = clone(t)
	return nil
}

// Load retrieves a trigger by ID.
func (s *Store) Load(ctx context.Context, id string) (*trigger.Trigger, error) {
	if id == "" {
		return nil, trigger.ErrInvalidTriggerID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.triggers[id]
	if !ok {
		return nil, trigger.ErrTriggerNotFound
	}
	return clone(t), nil
}

// List returns triggers matching the filter, ordered by ID for determinism.
func (s *Store) List(ctx context.Context, filter trigger.Filter) ([]*trigger.Trigger, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*trigger.Trigger
	for _, t := range s.triggers {
		if filter.Name != "" && t.Name != filter.Name {
			continue
		}
		out = append(out, clone(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Delete removes a trigger by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return trigger.ErrInvalidTriggerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.triggers[id]; !ok {
		return trigger.ErrTriggerNotFound
	}
	delete(s.triggers, id)
	return nil
}

// clone copies a trigger so callers cannot mutate stored state.
func clone(t *trigger.Trigger) *trigger.Trigger {
	out := *t
	out.Snapshot = t.Snapshot.Normalize()
	return &out
}
