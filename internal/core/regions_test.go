package core

import (
	"testing"
)

func TestNewRegions(t *testing.T) {
	tests := []struct {
		name    string
		keys    []string
		wantErr bool
	}{
		{name: "ordered list", keys: []string{"Riley", "Allen"}},
		{name: "empty list", keys: nil, wantErr: true},
		{name: "blank key", keys: []string{"Riley", "  "}, wantErr: true},
		{name: "duplicate key", keys: []string{"Riley", "Allen", "Riley"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegions(tt.keys)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegions_MembershipIsExact(t *testing.T) {
	r := MustRegions([]string{"Riley", "Allen"})

	if !r.Contains("Riley") {
		t.Error("Contains(Riley) = false")
	}
	for _, k := range []string{"riley", "Riley ", ""} {
		if r.Contains(k) {
			t.Errorf("Contains(%q) = true", k)
		}
	}
}

func TestRegions_KeysKeepOrderAndAreCopied(t *testing.T) {
	r := MustRegions([]string{"Riley", "Allen"})

	keys := r.Keys()
	if keys[0] != "Riley" || keys[1] != "Allen" {
		t.Fatalf("Keys() = %v", keys)
	}
	keys[0] = "changed"
	if r.Keys()[0] != "Riley" {
		t.Error("Keys() exposed internal slice")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}
