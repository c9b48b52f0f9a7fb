// internal/circulation/locks.go
package circulation

import (
	"sync"

	"github.com/google/uuid"
)

// bookLocks hands out one mutex per book id so an issue and a return on
// the same book can never interleave. Locks are never released from the
// map; the catalog is small and ids are reused across operations.
type bookLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newBookLocks() *bookLocks {
	return &bookLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (b *bookLocks) lock(id uuid.UUID) *sync.Mutex {
	b.mu.Lock()
	l, ok := b.locks[id]
	if !ok {
		l = &sync.Mutex{}
		b.locks[id] = l
	}
	b.mu.Unlock()

	l.Lock()
	return l
}
