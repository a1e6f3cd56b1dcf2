// Package runid derives a deterministic identifier from a call's inputs,
// so that repeated calls with identical arguments are tagged identically
// in logs without introducing any wall-clock- or randomness-based
// nondeterminism into the encoder's hot path.
package runid

import (
	"crypto/md5"
	"encoding/json"

	"github.com/google/uuid"
)

// New hashes a JSON encoding of seed (one or more values describing a
// call's inputs) into a UUID. Identical seeds always produce the identical
// id; there is no time or randomness involved, grounded on the same
// hash-to-UUID technique used for content-addressed identifiers elsewhere
// in the reference pack (see DESIGN.md).
func New(seed ...any) string {
	raw, err := json.Marshal(seed)
	if err != nil {
		return ""
	}
	sum := md5.Sum(raw)
	id, err := uuid.FromBytes(sum[:16])
	if err != nil {
		return ""
	}
	return id.String()
}
