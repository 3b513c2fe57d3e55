// Package memory provides a thread-safe in-memory implementation of
// storage.Repository. Suitable for tests, demos, and single-process use.
package memory

import (
	"sync"

	"github.com/jmcleod/folio/storage"
)

// Repository is a thread-safe in-memory implementation of storage.Repository.
type Repository struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

var _ storage.Repository = (*Repository)(nil)

// NewRepository creates a new empty in-memory Repository.
func NewRepository() *Repository {
	return &Repository{data: make(map[string]map[string][]byte)}
}

func cloneDoc(doc []byte) []byte {
	return append([]byte(nil), doc...)
}

func (r *Repository) Put(collection, id string, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[collection]; !ok {
		r.data[collection] = make(map[string][]byte)
	}
	r.data[collection][id] = cloneDoc(doc)
	return nil
}

func (r *Repository) Get(collection, id string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[collection][id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (r *Repository) List(collection string) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]byte, len(r.data[collection]))
	for id, doc := range r.data[collection] {
		out[id] = cloneDoc(doc)
	}
	return out, nil
}

func (r *Repository) Delete(collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[collection][id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.data[collection], id)
	return nil
}
