package core

import (
	"context"
	"sync"
)

// DocumentStore is the durable copy of the contact map. The whole document is
// read once when a Store opens and rewritten on every mutation.
type DocumentStore interface {
	// Load returns the stored document, creating an empty one if none exists.
	Load(ctx context.Context) (map[string]Contact, error)

	// Save replaces the stored document with doc.
	Save(ctx context.Context, doc map[string]Contact) error
}

// Store is the authoritative in-memory contact map backed by a DocumentStore.
//
// Writers are serialised by mu for the whole mutate-then-persist sequence.
// A mutation is built on a copy and only becomes visible after the durable
// write succeeds, so a failed save leaves memory and storage in agreement.
type Store struct {
	mu      sync.RWMutex
	backend DocumentStore
	data    map[string]Contact
}

// OpenStore loads the document from backend and returns a Store owning it.
func OpenStore(ctx context.Context, backend DocumentStore) (*Store, error) {
	doc, err := backend.Load(ctx)
	if err != nil {
		return nil, storageUnavailable("load", err)
	}
	if doc == nil {
		doc = make(map[string]Contact)
	}
	return &Store{
		backend: backend,
		data:    doc,
	}, nil
}

// Snapshot returns a copy of every stored entry.
func (s *Store) Snapshot() map[string]Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneContacts(s.data)
}

// Get returns the contact stored for key.
func (s *Store) Get(key string) (Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.data[key]
	return c, ok
}

// List returns one entry per key, in the order given. Keys without a stored
// contact come back with a nil Contact.
func (s *Store) List(keys []string) []County {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]County, len(keys))
	for i, k := range keys {
		out[i] = County{ID: k}
		if c, ok := s.data[k]; ok {
			c := c
			out[i].Contact = &c
		}
	}
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Put replaces the entry for key with c. An empty contact removes the entry.
func (s *Store) Put(ctx context.Context, key string, c Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneContacts(s.data)
	if c.IsEmpty() {
		delete(next, key)
	} else {
		next[key] = c
	}
	return s.commit(ctx, next)
}

// Delete removes the entry for key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.Put(ctx, key, Contact{})
}

// Merge replaces or inserts every entry of updates and persists once.
// Unlike Put, an empty contact is stored as-is rather than deleting the key.
func (s *Store) Merge(ctx context.Context, updates map[string]Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneContacts(s.data)
	for k, c := range updates {
		next[k] = c
	}
	return s.commit(ctx, next)
}

// commit persists next and makes it current. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next map[string]Contact) error {
	if err := s.backend.Save(ctx, next); err != nil {
		return storageUnavailable("save", err)
	}
	s.data = next
	return nil
}
