package core

import (
	"sync"
	"time"
)

// DefaultHistorySize is the number of imports kept when no size is configured.
const DefaultHistorySize = 50

// ImportRecord describes one import attempt.
type ImportRecord struct {
	ID        string    `json:"id"`
	At        time.Time `json:"at"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	Ignored   int       `json:"ignored"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// ImportHistory keeps the most recent import records in memory.
// It is not persisted; a restart clears it.
type ImportHistory struct {
	mu      sync.Mutex
	records []ImportRecord
	next    int
	full    bool
}

// NewImportHistory keeps up to size records.
func NewImportHistory(size int) *ImportHistory {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &ImportHistory{records: make([]ImportRecord, size)}
}

// Add stores rec, evicting the oldest record when full.
func (h *ImportHistory) Add(rec ImportRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records[h.next] = rec
	h.next = (h.next + 1) % len(h.records)
	if h.next == 0 {
		h.full = true
	}
}

// Recent returns the stored records, newest first.
func (h *ImportHistory) Recent() []ImportRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.next
	if h.full {
		n = len(h.records)
	}

	out := make([]ImportRecord, 0, n)
	for i := 1; i <= n; i++ {
		pos := (h.next - i + len(h.records)) % len(h.records)
		out = append(out, h.records[pos])
	}
	return out
}
