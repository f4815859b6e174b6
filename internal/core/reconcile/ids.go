// Package reconcile provides identifier generation for graph entities
package reconcile

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator produces opaque, collision-resistant identifiers. Generation is
// injected so transitions stay deterministic under test; sequential
// index-based ids are deliberately not offered for production use because
// they collide under interleaved add+delete sequences.
type IDGenerator func() string

// NewUUIDGenerator returns the production generator.
func NewUUIDGenerator() IDGenerator {
	return func() string {
		return uuid.New().String()
	}
}

// NewSequenceGenerator returns a deterministic generator for tests,
// yielding "<prefix>-1", "<prefix>-2", ...
func NewSequenceGenerator(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
