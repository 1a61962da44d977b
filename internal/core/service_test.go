package core_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/countycontacts/internal/core"
	"github.com/JonMunkholm/countycontacts/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRegions = core.MustRegions([]string{"Allen", "Ford", "Riley", "Shawnee"})

func newService(t *testing.T, seed map[string]core.Contact, opts core.Options) (*core.Service, *storage.Memory) {
	t.Helper()
	store, backend := openStore(t, seed)
	return core.NewService(store, testRegions, opts), backend
}

func TestService_ListAllUsesCanonicalOrder(t *testing.T) {
	svc, _ := newService(t, map[string]core.Contact{
		"Shawnee": {Name: "S"},
		"Allen":   {Name: "A"},
		"Unknown": {Name: "U"},
	}, core.Options{})

	list := svc.ListAll(context.Background())
	require.Len(t, list, 4)

	var ids []string
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"Allen", "Ford", "Riley", "Shawnee"}, ids)
	assert.Nil(t, list[1].Contact)
	assert.Equal(t, "S", list[3].Contact.Name)
}

func TestService_Get(t *testing.T) {
	svc, _ := newService(t, map[string]core.Contact{"Riley": {Name: "R"}}, core.Options{})
	ctx := context.Background()

	county, err := svc.Get(ctx, "Riley")
	require.NoError(t, err)
	assert.Equal(t, "R", county.Contact.Name)

	county, err = svc.Get(ctx, "Ford")
	require.NoError(t, err)
	assert.Nil(t, county.Contact)

	_, err = svc.Get(ctx, "riley")
	assert.ErrorIs(t, err, core.ErrUnknownKey)
}

func TestService_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces contact", func(t *testing.T) {
		svc, backend := newService(t, map[string]core.Contact{"Riley": {Name: "A", Phone: "1"}}, core.Options{})

		county, err := svc.Put(ctx, "Riley", core.Contact{Email: "r@x.com"})
		require.NoError(t, err)
		assert.Equal(t, core.County{ID: "Riley", Contact: &core.Contact{Email: "r@x.com"}}, county)
		assert.Equal(t, core.Contact{Email: "r@x.com"}, backend.Document()["Riley"])
	})

	t.Run("empty contact deletes", func(t *testing.T) {
		svc, backend := newService(t, map[string]core.Contact{"Riley": {Name: "A"}}, core.Options{})

		county, err := svc.Put(ctx, "Riley", core.Contact{})
		require.NoError(t, err)
		assert.Nil(t, county.Contact)
		assert.NotContains(t, backend.Document(), "Riley")

		list := svc.ListAll(ctx)
		assert.Nil(t, list[2].Contact)
	})

	t.Run("unknown county leaves store unchanged", func(t *testing.T) {
		svc, backend := newService(t, nil, core.Options{})

		_, err := svc.Put(ctx, "Atlantis", core.Contact{Name: "X"})
		assert.ErrorIs(t, err, core.ErrUnknownKey)
		assert.Empty(t, backend.Document())
		assert.Equal(t, 0, backend.Saves())
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		svc, backend := newService(t, nil, core.Options{})

		_, err := svc.Put(ctx, "Riley", core.Contact{Email: "not an email"})
		assert.ErrorIs(t, err, core.ErrInvalidContact)
		assert.Equal(t, 0, backend.Saves())
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		svc, backend := newService(t, nil, core.Options{})
		backend.FailSaves(errors.New("disk full"))

		_, err := svc.Put(ctx, "Riley", core.Contact{Name: "X"})
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)

		county, err := svc.Get(ctx, "Riley")
		require.NoError(t, err)
		assert.Nil(t, county.Contact)
	})
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	svc, backend := newService(t, map[string]core.Contact{"Allen": {Name: "Keep"}}, core.Options{})

	input := "county,name,phone,email\n" +
		"Riley,Jane Doe,555-1111,jane@x.com\n" +
		",Bad,000,b@x.com\n" +
		"Riley,John Doe,555-2222,\n"

	result, err := svc.Import(ctx, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.NotEmpty(t, result.ID)

	doc := backend.Document()
	assert.Equal(t, core.Contact{Name: "John Doe", Phone: "555-2222"}, doc["Riley"])
	assert.Equal(t, core.Contact{Name: "Keep"}, doc["Allen"])
	assert.Equal(t, 1, backend.Saves())
}

func TestService_ImportMissingColumn(t *testing.T) {
	svc, backend := newService(t, map[string]core.Contact{"Allen": {Name: "Keep"}}, core.Options{})

	_, err := svc.Import(context.Background(), strings.NewReader("county,name,email\nRiley,Jane,j@x.com\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMalformedInput)
	assert.Contains(t, err.Error(), "phone")

	assert.Equal(t, map[string]core.Contact{"Allen": {Name: "Keep"}}, backend.Document())
	assert.Equal(t, 0, backend.Saves())
}

func TestService_ImportUnknownRegions(t *testing.T) {
	input := "county,name,phone,email\n" +
		"Riley,R,,\n" +
		"Atlantis,A,,\n" +
		"Gotham,G,,\n"

	tests := []struct {
		name        string
		policy      core.UnknownRegionPolicy
		wantErr     error
		wantIgnored []string
		wantKeys    []string
	}{
		{
			name:        "ignore drops and reports",
			policy:      core.UnknownRegionsIgnore,
			wantIgnored: []string{"Atlantis", "Gotham"},
			wantKeys:    []string{"Riley"},
		},
		{
			name:     "accept stores everything",
			policy:   core.UnknownRegionsAccept,
			wantKeys: []string{"Atlantis", "Gotham", "Riley"},
		},
		{
			name:    "reject fails the import",
			policy:  core.UnknownRegionsReject,
			wantErr: core.ErrUnknownKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, backend := newService(t, nil, core.Options{UnknownRegions: tt.policy})

			result, err := svc.Import(context.Background(), strings.NewReader(input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, backend.Document())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, result.Imported)
			assert.Equal(t, tt.wantIgnored, result.Ignored)

			var keys []string
			for k := range backend.Document() {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.wantKeys, keys)
		})
	}
}

func TestService_ImportTooLarge(t *testing.T) {
	svc, backend := newService(t, nil, core.Options{MaxImportSize: 32})

	input := "county,name,phone,email\nRiley,A very long name indeed,,\n"
	_, err := svc.Import(context.Background(), strings.NewReader(input))
	assert.ErrorIs(t, err, core.ErrImportTooLarge)
	assert.Equal(t, 0, backend.Saves())
}

func TestService_ImportHistory(t *testing.T) {
	svc, _ := newService(t, nil, core.Options{HistorySize: 2})
	ctx := core.ContextWithClient(context.Background(), "10.0.0.1", "curl/8.0")

	_, err := svc.Import(ctx, strings.NewReader("county,name,phone,email\nRiley,R,,\n"))
	require.NoError(t, err)
	_, err = svc.Import(ctx, strings.NewReader("county,name\n"))
	require.Error(t, err)
	_, err = svc.Import(ctx, strings.NewReader("county,name,phone,email\nFord,F,,\nAllen,A,,\n"))
	require.NoError(t, err)

	history := svc.ImportHistory()
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Imported)
	assert.Empty(t, history[0].Error)
	assert.NotEmpty(t, history[1].Error)
	assert.Equal(t, "10.0.0.1", history[0].IPAddress)
	assert.Equal(t, "curl/8.0", history[0].UserAgent)
}

func TestService_ExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	seed := map[string]core.Contact{
		"Shawnee": {Name: "Smith, Jr.", Phone: "555"},
		"Allen":   {Email: "a@x.com"},
	}
	svc, _ := newService(t, seed, core.Options{})

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "county,name,phone,email\r\nAllen,"))

	other, backend := newService(t, nil, core.Options{})
	result, err := other.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, seed, backend.Document())
}

// Sequential interleaving of every mutating operation must leave the store
// in the state of the last call to touch each key.
func TestService_SequentialInterleaving(t *testing.T) {
	ctx := context.Background()
	svc, backend := newService(t, nil, core.Options{})

	_, err := svc.Put(ctx, "Riley", core.Contact{Name: "first"})
	require.NoError(t, err)

	_, err = svc.Import(ctx, strings.NewReader("county,name,phone,email\nRiley,second,,\nFord,F,,\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf))
	assert.Contains(t, buf.String(), "Riley,second,,")

	_, err = svc.Put(ctx, "Ford", core.Contact{})
	require.NoError(t, err)

	_, err = svc.Import(ctx, strings.NewReader("county,name,phone,email\nAllen,A,,\n"))
	require.NoError(t, err)

	assert.Equal(t, map[string]core.Contact{
		"Riley": {Name: "second"},
		"Allen": {Name: "A"},
	}, backend.Document())
}

func TestParseUnknownRegionPolicy(t *testing.T) {
	for in, want := range map[string]core.UnknownRegionPolicy{
		"":        core.UnknownRegionsIgnore,
		"ignore":  core.UnknownRegionsIgnore,
		" Accept": core.UnknownRegionsAccept,
		"REJECT":  core.UnknownRegionsReject,
	} {
		got, err := core.ParseUnknownRegionPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := core.ParseUnknownRegionPolicy("drop")
	assert.Error(t, err)
}
