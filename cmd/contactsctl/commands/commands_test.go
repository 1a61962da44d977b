package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes one contactsctl invocation against a file backend in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--backend", "file", "--data", filepath.Join(dir, "contacts.json"), "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestPutThenGet(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "put", "Riley", "--name", "Jane Doe", "--email", "jane@x.com")
	require.NoError(t, err)

	out, err := run(t, dir, "get", "Riley")
	require.NoError(t, err)

	var county core.County
	require.NoError(t, json.Unmarshal([]byte(out), &county))
	assert.Equal(t, "Riley", county.ID)
	require.NotNil(t, county.Contact)
	assert.Equal(t, core.Contact{Name: "Jane Doe", Email: "jane@x.com"}, *county.Contact)
}

func TestPutWithoutFieldsClears(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "put", "Riley", "--name", "Jane")
	require.NoError(t, err)
	_, err = run(t, dir, "put", "Riley")
	require.NoError(t, err)

	out, err := run(t, dir, "list", "--with-contact")
	require.NoError(t, err)
	assert.NotContains(t, out, "Riley")
}

func TestUnknownCounty(t *testing.T) {
	_, err := run(t, t.TempDir(), "get", "Atlantis")
	assert.ErrorIs(t, err, core.ErrUnknownKey)
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("county,name,phone,email\nRiley,\"Smith, Jr.\",555,\n,skip,,\nAtlantis,x,,\n"), 0o644))

	out, err := run(t, dir, "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2, skipped 1")
	assert.Contains(t, out, "Atlantis")

	dst := filepath.Join(dir, "out.csv")
	_, err = run(t, dir, "export", "-o", dst)
	require.NoError(t, err)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "county,name,phone,email\r\nRiley,\"Smith, Jr.\",555,\r\n", string(b))
}

func TestImportRequiresCSVExtension(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(src, []byte("county,name,phone,email\n"), 0o644))

	_, err := run(t, dir, "import", src)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "CSV"))
}
