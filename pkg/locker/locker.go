// Package locker provides a concurrency control mechanism to manage locks
// based on unique identifiers, used to serialize writes that target the same
// storage path. Locks are reference counted so idle entries are cleaned up.
package locker

import (
	"sync"
)

// Locker manages a collection of reference-counted locks keyed by id.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*lockRef
}

type lockRef struct {
	mu    sync.Mutex
	count int
}

func New() *Locker {
	return &Locker{locks: make(map[string]*lockRef)}
}

// Acquire blocks until the lock for id is held by the caller, creating the
// lock on first use.
func (l *Locker) Acquire(id string) {
	l.mu.Lock()
	ref, ok := l.locks[id]
	if !ok {
		ref = &lockRef{}
		l.locks[id] = ref
	}
	ref.count++
	l.mu.Unlock()

	ref.mu.Lock()
}

// Release releases the lock for id. When the last holder releases, the lock
// is removed from the Locker.
func (l *Locker) Release(id string) {
	l.mu.Lock()
	ref, ok := l.locks[id]
	if ok {
		ref.count--
		if ref.count <= 0 {
			delete(l.locks, id)
		}
	}
	l.mu.Unlock()

	if ok {
		ref.mu.Unlock()
	}
}

// Do runs fn while holding the lock for id.
func (l *Locker) Do(id string, fn func() error) error {
	l.Acquire(id)
	defer l.Release(id)
	return fn()
}
