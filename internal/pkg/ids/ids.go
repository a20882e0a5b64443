// Package ids mints record identifiers of the form "<kind>-<ulid>".
package ids

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable id prefixed with kind,
// e.g. New("event", t) → "event-01J9Z3...".
func New(kind string, at time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return kind + "-" + ulid.MustNew(ulid.Timestamp(at), entropy).String()
}
