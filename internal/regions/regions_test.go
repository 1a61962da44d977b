package regions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, 105, r.Len())
	assert.True(t, r.Contains("Riley"))
	assert.True(t, r.Contains("McPherson"))
	assert.False(t, r.Contains("Riley County"))
	assert.Equal(t, "Johnson", r.Keys()[0])
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{name: "yaml list", input: "- Riley\n- Ford\n", want: []string{"Riley", "Ford"}},
		{name: "json list", input: `["Riley","Ford"]`, want: []string{"Riley", "Ford"}},
		{name: "yaml object", input: "regions:\n  - Allen\n  - Ford\n", want: []string{"Allen", "Ford"}},
		{name: "not a list", input: "regions: 3\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, len(Kansas), r.Len())

	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions:\n  - North\n  - South\n"), 0o644))

	r, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, r.Keys())

	require.NoError(t, os.WriteFile(path, []byte("- North\n- North\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "duplicate")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
