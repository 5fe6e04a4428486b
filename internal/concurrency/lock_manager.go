// Package concurrency provides in-process coordination helpers.
package concurrency

import (
	"sync"
)

type refLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out one mutex per key, such as a punishment ID.
// Entries are dropped once no goroutine holds or waits for them.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*refLock)}
}

// Lock blocks until key is free and returns the matching unlock function
func (lm *LockManager) Lock(key string) (unlock func()) {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &refLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			lm.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(lm.locks, key)
			}
			lm.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or awaited
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
