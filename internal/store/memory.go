package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by unit tests and local
// development without a database. Behavior matches the mongo backend,
// including shallow merge semantics.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Document)}
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	col, ok := m.collections[collection]
	if !ok {
		return nil, ErrNotFound
	}
	doc, ok := col[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(doc), nil
}

func (m *MemoryStore) List(ctx context.Context, collection string) (map[string]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Document)
	for id, doc := range m.collections[collection] {
		out[id] = clone(doc)
	}
	return out, nil
}

func (m *MemoryStore) Set(ctx context.Context, collection, id string, doc Document, merge bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col, ok := m.collections[collection]
	if !ok {
		col = make(map[string]Document)
		m.collections[collection] = col
	}
	if merge {
		existing, ok := col[id]
		if !ok {
			existing = make(Document)
		}
		for k, v := range doc {
			existing[k] = cloneValue(v)
		}
		col[id] = existing
		return nil
	}
	col[id] = clone(doc)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if col, ok := m.collections[collection]; ok {
		delete(col, id)
	}
	return nil
}

// clone deep-copies a document so callers cannot mutate stored state.
func clone(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return clone(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
