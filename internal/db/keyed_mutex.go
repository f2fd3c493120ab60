package db

import (
	"fmt"
	"sync"
)

// keyedMutex serializes writers per (steam_id, app_id) key so retries racing
// each other never interleave partial record updates.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) lock(steamID string, appID int) func() {
	key := fmt.Sprintf("%s/%d", steamID, appID)

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
