package workflow

import "sync"

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// keyedLocks serializes mutations per inquiry ID, so two writes against the
// same record never race while writes against different records proceed in
// parallel. It uses reference counting to garbage collect unused locks.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates a lock entry and increments its reference count.
func (k *keyedLocks) acquire(id string) *lockEntry {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, exists := k.locks[id]
	if !exists {
		entry = &lockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (k *keyedLocks) release(id string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, exists := k.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(k.locks, id)
	}
}

// withLock executes fn while holding the lock for the given inquiry ID.
func (k *keyedLocks) withLock(id string, fn func() error) error {
	entry := k.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		k.release(id)
	}()
	return fn()
}
