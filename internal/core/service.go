package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/JonMunkholm/countycontacts/internal/logging"
	"github.com/google/uuid"
)

// ErrImportTooLarge is returned when an import payload exceeds the size limit.
var ErrImportTooLarge = errors.New("file too large")

// DefaultMaxImportSize bounds import payloads when no limit is configured.
const DefaultMaxImportSize int64 = 10 << 20

// UnknownRegionPolicy decides what an import does with counties that are not
// in the canonical list.
type UnknownRegionPolicy string

const (
	// UnknownRegionsIgnore drops unknown counties and reports them.
	UnknownRegionsIgnore UnknownRegionPolicy = "ignore"
	// UnknownRegionsAccept merges unknown counties like any other.
	UnknownRegionsAccept UnknownRegionPolicy = "accept"
	// UnknownRegionsReject fails the whole import with KindUnknownKey.
	UnknownRegionsReject UnknownRegionPolicy = "reject"
)

// ParseUnknownRegionPolicy parses a policy name (case-insensitive).
func ParseUnknownRegionPolicy(s string) (UnknownRegionPolicy, error) {
	switch p := UnknownRegionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case UnknownRegionsIgnore, UnknownRegionsAccept, UnknownRegionsReject:
		return p, nil
	case "":
		return UnknownRegionsIgnore, nil
	default:
		return "", fmt.Errorf("unknown region policy %q (want ignore, accept or reject)", s)
	}
}

// Options tunes a Service. Zero values fall back to package defaults.
type Options struct {
	UnknownRegions       UnknownRegionPolicy
	MaxImportSize        int64
	MaxConcurrentImports int
	ImportWait           time.Duration
	HistorySize          int
}

// ImportResult summarises a completed import.
type ImportResult struct {
	ID       string   `json:"id"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Ignored  []string `json:"ignored,omitempty"`
}

// Service exposes the contact operations over a Store and the canonical
// region list.
type Service struct {
	store   *Store
	regions Regions
	opts    Options
	limiter *ImportLimiter
	history *ImportHistory
	now     func() time.Time
}

// NewService creates a Service. The store and region list are owned by the caller.
func NewService(store *Store, regions Regions, opts Options) *Service {
	if opts.UnknownRegions == "" {
		opts.UnknownRegions = UnknownRegionsIgnore
	}
	if opts.MaxImportSize <= 0 {
		opts.MaxImportSize = DefaultMaxImportSize
	}

	return &Service{
		store:   store,
		regions: regions,
		opts:    opts,
		limiter: NewImportLimiter(opts.MaxConcurrentImports, opts.ImportWait),
		history: NewImportHistory(opts.HistorySize),
		now:     time.Now,
	}
}

// Regions returns the canonical region list.
func (s *Service) Regions() Regions {
	return s.regions
}

// ListAll returns every canonical region in canonical order, with its contact
// or nil when none is stored.
func (s *Service) ListAll(ctx context.Context) []County {
	return s.store.List(s.regions.Keys())
}

// Get returns a single canonical region.
func (s *Service) Get(ctx context.Context, key string) (County, error) {
	if !s.regions.Contains(key) {
		return County{}, unknownKey(key)
	}
	out := County{ID: key}
	if c, ok := s.store.Get(key); ok {
		out.Contact = &c
	}
	return out, nil
}

// Put replaces the contact for a canonical region. An empty contact deletes
// the region's entry and the returned County has a nil Contact.
func (s *Service) Put(ctx context.Context, key string, c Contact) (County, error) {
	logger := logging.WithFields(ctx, "county", key, "ip", ClientIPFromContext(ctx))

	if !s.regions.Contains(key) {
		return County{}, unknownKey(key)
	}
	if err := c.Validate(); err != nil {
		return County{}, err
	}

	if err := s.store.Put(ctx, key, c); err != nil {
		logger.Error("contact update failed", "error", err)
		return County{}, err
	}

	out := County{ID: key}
	if c.IsEmpty() {
		logger.Info("contact removed")
		return out, nil
	}
	out.Contact = &c
	logger.Info("contact updated")
	return out, nil
}

// Import reads a CSV payload and merges its rows into the store with a single
// durable write. Nothing is mutated when the payload is rejected.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	id := uuid.NewString()
	logger := logging.WithFields(ctx, "import_id", id)
	rec := ImportRecord{
		ID:        id,
		At:        s.now(),
		IPAddress: ClientIPFromContext(ctx),
		UserAgent: UserAgentFromContext(ctx),
	}

	result, err := s.importPayload(ctx, id, r)
	if err != nil {
		rec.Error = err.Error()
		s.history.Add(rec)
		logger.Warn("import failed", "error", err)
		return nil, err
	}

	rec.Imported = result.Imported
	rec.Skipped = result.Skipped
	rec.Ignored = len(result.Ignored)
	s.history.Add(rec)

	logger.Info("import completed",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"ignored", len(result.Ignored),
	)
	return result, nil
}

func (s *Service) importPayload(ctx context.Context, id string, r io.Reader) (*ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	data, err := io.ReadAll(io.LimitReader(r, s.opts.MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read import payload: %w", err)
	}
	if int64(len(data)) > s.opts.MaxImportSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrImportTooLarge, s.opts.MaxImportSize)
	}

	batch, err := DecodeCSV(data)
	if err != nil {
		return nil, err
	}

	ignored, err := s.applyRegionPolicy(batch.Updates)
	if err != nil {
		return nil, err
	}

	if err := s.store.Merge(ctx, batch.Updates); err != nil {
		return nil, err
	}

	return &ImportResult{
		ID:       id,
		Imported: batch.Accepted,
		Skipped:  batch.Skipped,
		Ignored:  ignored,
	}, nil
}

// applyRegionPolicy removes or rejects non-canonical keys in updates
// according to the configured policy. It returns the removed keys, sorted.
func (s *Service) applyRegionPolicy(updates map[string]Contact) ([]string, error) {
	if s.opts.UnknownRegions == UnknownRegionsAccept {
		return nil, nil
	}

	var unknown []string
	for k := range updates {
		if !s.regions.Contains(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil, nil
	}
	slices.Sort(unknown)

	if s.opts.UnknownRegions == UnknownRegionsReject {
		return nil, newError(KindUnknownKey,
			fmt.Sprintf("unknown counties in import: %s", strings.Join(unknown, ", ")), nil)
	}

	for _, k := range unknown {
		delete(updates, k)
	}
	return unknown, nil
}

// Export writes every stored contact as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	return EncodeCSV(w, s.store.Snapshot())
}

// ImportHistory returns recent imports, newest first.
func (s *Service) ImportHistory() []ImportRecord {
	return s.history.Recent()
}

// ImportLimiterStatus reports import slot usage.
func (s *Service) ImportLimiterStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until in-flight imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
