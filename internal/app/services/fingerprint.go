// Package services wires the hydration guard and emission bridge around the
// pure reconciler: everything that decides when a snapshot reseeds the
// session and how the session reports back.
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/rulegraph/rulegraph/internal/core/trigger"
)

// Fingerprint returns a deterministic content digest of a snapshot. Struct
// encoding keeps field order fixed and Normalize collapses the nil-vs-empty
// edge-list distinction, so equal content always digests equally regardless
// of where the snapshot came from.
func Fingerprint(s trigger.Snapshot) string {
	data, err := json.Marshal(s.Normalize())
	if err != nil {
		// Snapshots hold only plain values; Marshal cannot fail on them.
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
