package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_LoadCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contacts.json")
	f := NewFile(path)

	doc, err := f.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestFile_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	f := NewFile(filepath.Join(t.TempDir(), "contacts.json"))

	want := map[string]core.Contact{
		"Riley": {Name: "Jane", Phone: "555-1111"},
		"Ford":  {},
	}
	require.NoError(t, f.Save(ctx, want))

	got, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	b, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	var raw map[string]map[string]string
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.NotContains(t, raw["Riley"], "email", "absent fields are omitted")
}

func TestFile_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "contacts.json"))

	require.NoError(t, f.Save(context.Background(), map[string]core.Contact{"Riley": {Name: "R"}}))
	require.NoError(t, f.Save(context.Background(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "contacts.json", entries[0].Name())
}

func TestFile_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFile(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
