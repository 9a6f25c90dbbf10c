package service

import "sync"

// keyedLock serializes work per order id so two concurrent transitions on
// the same order cannot interleave their read-modify-write cycles.
// Distinct ids never contend. Entries are reference-counted and removed
// once the last holder releases, so the table does not grow with the
// number of orders ever touched.
type keyedLock struct {
	mu    sync.Mutex
	locks map[uint]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[uint]*lockEntry)}
}

func (k *keyedLock) Lock(id uint) {
	k.mu.Lock()
	entry, ok := k.locks[id]
	if !ok {
		entry = &lockEntry{}
		k.locks[id] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedLock) Unlock(id uint) {
	k.mu.Lock()
	entry := k.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, id)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}
