package core

import (
	"fmt"
	"strings"
)

// Regions is the ordered, closed set of region keys the service accepts.
// Membership is an exact string match.
type Regions struct {
	keys []string
	set  map[string]struct{}
}

// NewRegions builds a region universe from an ordered key list.
// Blank and duplicate keys are rejected so listing order stays unambiguous.
func NewRegions(keys []string) (Regions, error) {
	r := Regions{
		keys: make([]string, 0, len(keys)),
		set:  make(map[string]struct{}, len(keys)),
	}
	for i, k := range keys {
		if strings.TrimSpace(k) == "" {
			return Regions{}, fmt.Errorf("region %d is blank", i)
		}
		if _, dup := r.set[k]; dup {
			return Regions{}, fmt.Errorf("duplicate region %q", k)
		}
		r.set[k] = struct{}{}
		r.keys = append(r.keys, k)
	}
	if len(r.keys) == 0 {
		return Regions{}, fmt.Errorf("region list is empty")
	}
	return r, nil
}

// MustRegions is NewRegions for static lists; it panics on error.
func MustRegions(keys []string) Regions {
	r, err := NewRegions(keys)
	if err != nil {
		panic(err)
	}
	return r
}

// Contains reports whether key is a canonical region.
func (r Regions) Contains(key string) bool {
	_, ok := r.set[key]
	return ok
}

// Keys returns the regions in canonical order.
func (r Regions) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of regions.
func (r Regions) Len() int {
	return len(r.keys)
}
