package home

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pins/internal/actor"
	"github.com/leapstack-labs/pins/internal/metadata"
	"github.com/leapstack-labs/pins/internal/permission"
	"github.com/leapstack-labs/pins/internal/testutil"
	"github.com/leapstack-labs/pins/internal/ui/features"
	"github.com/leapstack-labs/pins/pkg/core"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

var testMetadata = metadata.NewStatic(map[string]metadata.Database{
	"fixtures": {
		Title: "Fixtures",
		Tables: map[string]metadata.Table{
			"dogs": {Title: "Good dogs", Description: "Every dog in the city"},
		},
	},
})

// flakyLookup fails for one database and counts calls.
type flakyLookup struct {
	failFor string
	calls   atomic.Int32
}

func (f *flakyLookup) Lookup(ctx context.Context, database string, table *string) (metadata.Entry, error) {
	f.calls.Add(1)
	if database == f.failFor {
		return metadata.Entry{}, errors.New("lookup backend down")
	}
	return testMetadata.Lookup(ctx, database, table)
}

func setupTestRouter(t *testing.T, store core.PinStore, lookup metadata.Lookup) http.Handler {
	t.Helper()
	logger := testutil.NewTestLogger(t)
	gate := permission.NewGate(features.TestPolicy(), logger)
	homepage := NewHomepage(store, gate.Evaluator(), lookup, logger)

	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, gate, homepage, features.TestBasePath, logger))
	return r
}

func get(h http.Handler, actorID, path string) *httptest.ResponseRecorder {
	req := features.RequestAs(httptest.NewRequest(http.MethodGet, path, nil), actorID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var seedPins = []features.TestPin{
	{ItemType: core.ItemTypeTable, Database: "fixtures", Table: "dogs"},
	{ItemType: core.ItemTypeDatabase, Database: "content"},
	{ItemType: core.ItemTypeView, Database: "fixtures", Table: "recent"},
}

// =============================================================================
// Homepage.Items
// =============================================================================

func TestHomepage_Items(t *testing.T) {
	store, ids := features.SetupTestStore(t, seedPins...)
	hp := NewHomepage(store, features.TestPolicy(), testMetadata, testutil.NewTestLogger(t))

	items, err := hp.Items(context.Background(), &actor.Actor{ID: features.ReaderID})
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, it := range items {
		assert.Equal(t, ids[i], it.ID, "order preserved")
	}
	require.NotNil(t, items[0].Metadata)
	assert.Equal(t, "Good dogs", items[0].Title())
	assert.Nil(t, items[1].Metadata, "no metadata for content")
	assert.Equal(t, "content", items[1].Title())
	assert.Nil(t, items[2].Metadata)
	assert.Equal(t, "fixtures / recent", items[2].Title())
}

func TestHomepage_ItemsDenied(t *testing.T) {
	store, _ := features.SetupTestStore(t, seedPins...)
	hp := NewHomepage(store, features.TestPolicy(), testMetadata, nil)

	for _, a := range []*actor.Actor{nil, {ID: features.StrangerID}} {
		_, err := hp.Items(context.Background(), a)
		assert.ErrorIs(t, err, core.ErrPermissionDenied)
	}
}

func TestHomepage_LookupFailureLeavesMetadataEmpty(t *testing.T) {
	store, _ := features.SetupTestStore(t, seedPins...)
	lookup := &flakyLookup{failFor: "fixtures"}
	logger, logs := testutil.NewCaptureLogger(slog.LevelWarn)
	hp := NewHomepage(store, features.TestPolicy(), lookup, logger)

	items, err := hp.Items(context.Background(), &actor.Actor{ID: features.WriterID})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.EqualValues(t, 3, lookup.calls.Load())
	for _, it := range items {
		assert.Nil(t, it.Metadata)
	}
	assert.Len(t, logs.Lines("metadata lookup failed", "lookup backend down"), 2,
		"one warning per failed lookup")
}

func TestHomepage_WithoutLookup(t *testing.T) {
	store, _ := features.SetupTestStore(t, seedPins...)
	hp := NewHomepage(store, features.TestPolicy(), nil, nil)

	items, err := hp.Items(context.Background(), &actor.Actor{ID: features.WriterID})
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestHomepage_StorageFault(t *testing.T) {
	hp := NewHomepage(&features.FaultyStore{}, features.TestPolicy(), nil, nil)
	_, err := hp.Items(context.Background(), &actor.Actor{ID: features.WriterID})
	assert.ErrorIs(t, err, features.ErrStorage)
}

// =============================================================================
// Fragment - injectable HTML block with JSON data island
// =============================================================================

func TestFragment(t *testing.T) {
	tests := []struct {
		name        string
		actor       string
		wantBody    []string
		notWantBody []string
	}{
		{
			name:  "reader sees list and data island",
			actor: features.ReaderID,
			wantBody: []string{
				`<div id="pins-homepage-target"`,
				`<script id="pins-data" type="application/json">`,
				`href="/fixtures/dogs"`,
				"Good dogs",
				"Every dog in the city",
				`href="/content"`,
			},
			notWantBody: []string{"Reorder pins"},
		},
		{
			name:  "writer also gets reorder link",
			actor: features.WriterID,
			wantBody: []string{
				`<div id="pins-homepage-target"`,
				`href="/-/pins/"`,
				"Reorder pins",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := features.SetupTestStore(t, seedPins...)
			h := setupTestRouter(t, store, testMetadata)

			rec := get(h, tt.actor, "/homepage")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want, "response should contain %q", want)
			}
			for _, notWant := range tt.notWantBody {
				assert.NotContains(t, body, notWant)
			}
		})
	}
}

func TestFragment_DataIsland(t *testing.T) {
	store, ids := features.SetupTestStore(t, seedPins...)
	h := setupTestRouter(t, store, testMetadata)

	body := get(h, features.ReaderID, "/homepage").Body.String()

	open := `<script id="pins-data" type="application/json">`
	start := strings.Index(body, open)
	require.GreaterOrEqual(t, start, 0)
	start += len(open)
	end := strings.Index(body[start:], "</script>")
	require.GreaterOrEqual(t, end, 0)

	var items []Item
	require.NoError(t, json.Unmarshal([]byte(body[start:start+end]), &items))
	require.Len(t, items, 3)
	assert.Equal(t, ids[0], items[0].ID)
	require.NotNil(t, items[0].Metadata)
	assert.Equal(t, "Good dogs", items[0].Metadata.Title)
}

func TestFragment_HiddenFromStrangers(t *testing.T) {
	store, _ := features.SetupTestStore(t, seedPins...)
	h := setupTestRouter(t, store, testMetadata)

	for _, id := range []string{"", features.StrangerID} {
		rec := get(h, id, "/homepage")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	}
}

func TestFragment_Empty(t *testing.T) {
	store, _ := features.SetupTestStore(t)
	h := setupTestRouter(t, store, nil)

	body := get(h, features.ReaderID, "/homepage").Body.String()
	assert.Contains(t, body, "Nothing is pinned yet.")
	assert.Contains(t, body, `type="application/json">[]`)
}

func TestItemsJSON(t *testing.T) {
	store, _ := features.SetupTestStore(t, seedPins...)
	h := setupTestRouter(t, store, testMetadata)

	rec := get(h, features.ReaderID, "/api/homepage")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK   bool   `json:"ok"`
		Data []Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Len(t, resp.Data, 3)

	rec = get(h, features.StrangerID, "/api/homepage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
