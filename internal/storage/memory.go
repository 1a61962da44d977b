package storage

import (
	"context"
	"sync"

	"github.com/JonMunkholm/countycontacts/internal/core"
)

// Memory is an in-process document, used by tests and dry runs.
type Memory struct {
	mu      sync.Mutex
	doc     map[string]core.Contact
	saves   int
	loadErr error
	saveErr error
}

// NewMemory returns a backend seeded with a copy of seed.
func NewMemory(seed map[string]core.Contact) *Memory {
	return &Memory{doc: copyDoc(seed)}
}

// Load returns a copy of the document.
func (m *Memory) Load(ctx context.Context) (map[string]core.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return copyDoc(m.doc), nil
}

// Save replaces the document with a copy of doc.
func (m *Memory) Save(ctx context.Context, doc map[string]core.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.doc = copyDoc(doc)
	m.saves++
	return nil
}

// FailLoads makes subsequent loads return err. A nil err clears the failure.
func (m *Memory) FailLoads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSaves makes subsequent saves return err. A nil err clears the failure.
func (m *Memory) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// Saves returns the number of successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Document returns a copy of the last saved document.
func (m *Memory) Document() map[string]core.Contact {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyDoc(m.doc)
}

func copyDoc(src map[string]core.Contact) map[string]core.Contact {
	dst := make(map[string]core.Contact, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
