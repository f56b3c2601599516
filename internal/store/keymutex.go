package store

import "sync"

// KeyedMutex provides per-key mutual exclusion. The store itself gives no
// cross-call atomicity, so every upsert-by-scan path (Feedback by
// reflection_id, Meta by key) must hold the key's lock across its
// read-scan-then-write sequence to avoid lost updates between concurrent
// requests in the same process.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
