// Package idx generates ticket identifiers. Ids are ULIDs produced from a
// monotonic entropy source, so they sort lexicographically by creation order
// even when two tickets are created within the same millisecond.
package idx

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// generator produces ULIDs safely from concurrent callers using a shared
// monotonic source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) newAt(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

var (
	globalOnce sync.Once
	global     *generator
)

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a new lexicographically sortable ULID string using the current
// time in UTC.
func New() string {
	globalOnce.Do(initGlobal)
	return global.newAt(time.Now().UTC())
}

// Valid reports whether s parses as a ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
