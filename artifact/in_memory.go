package artifact

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// InMemoryStore is a trivial in‑process Store implementation useful for
// tests and single‑process runs. It keeps all artifacts in a map guarded by
// an RWMutex. Data is copied on save / retrieval to avoid accidental
// external mutation of internal buffers.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string][]byte // key -> data
}

// NewInMemoryStore returns an empty in‑memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string][]byte)}
}

// Save stores (or overwrites) the artifact bytes for key.
// The input slice is copied before storage.
func (a *InMemoryStore) Save(_ context.Context, key string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	a.artifacts[key] = cp
	return nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (a *InMemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.artifacts[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the keys with the given prefix. The slice is a sorted
// snapshot and safe for caller mutation.
func (a *InMemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	keys := make([]string, 0, len(a.artifacts))
	for k := range a.artifacts {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (a *InMemoryStore) Delete(_ context.Context, key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.artifacts[key]; !ok {
		return ErrNotFound
	}
	delete(a.artifacts, key)
	return nil
}
