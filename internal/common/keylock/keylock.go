// Package keylock provides a mutex per record key so that read-modify-write
// cycles on the same quarantine record or game session never interleave.
package keylock

import (
	"strings"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// Locker hands out one mutex per key. Mutexes are never freed; the key space
// is bounded by guild members and game ids.
type Locker struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

// New creates an empty Locker
func New() *Locker {
	return &Locker{
		locks: xsync.NewMapOf[string, *sync.Mutex](),
	}
}

// Lock blocks until the key is held and returns the matching unlock func
func (l *Locker) Lock(parts ...string) func() {
	mu, _ := l.locks.LoadOrCompute(Key(parts...), func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}

// Key joins key parts, e.g. guild and member ids
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}
