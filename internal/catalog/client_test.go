package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardsFixture = `{
	"data": [
		{
			"name": "Pikachu",
			"number": "60",
			"rarity": "Common",
			"set": {"name": "Jungle"},
			"tcgplayer": {"prices": {"holofoil": {"market": 10.5}}}
		},
		{
			"name": "Pikachu",
			"number": "58",
			"rarity": "Common",
			"set": {"name": "Base Set"},
			"tcgplayer": {"prices": {"normal": {"market": 2.25}}}
		},
		{
			"name": "Surfing Pikachu",
			"number": "111",
			"rarity": "Rare",
			"set": {"name": "Evolutions"},
			"tcgplayer": {"prices": {}}
		}
	]
}`

func TestSearchBuildsScopedQuery(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cards", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(cardsFixture))
	}))
	defer srv.Close()

	client := New(srv.URL, "test-key")
	entries, err := client.Search(context.Background(), "Pikachu", "Base Set")
	require.NoError(t, err)

	assert.Equal(t, `name:"*Pikachu*" set.name:"Base Set"`, gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Len(t, entries, 3)
}

func TestSearchAllSetsOmitsSetFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	entries, err := client.Search(context.Background(), "Pikachu", AllSets)
	require.NoError(t, err)

	assert.Equal(t, `name:"*Pikachu*"`, gotQuery)
	assert.Empty(t, entries)
}

func TestSearchPriceTierResolution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cardsFixture))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	entries, err := client.Search(context.Background(), "Pikachu", AllSets)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Premium (holofoil) tier wins when present.
	require.NotNil(t, entries[0].MarketPrice)
	assert.Equal(t, 10.5, *entries[0].MarketPrice)

	// Standard tier is the fallback.
	require.NotNil(t, entries[1].MarketPrice)
	assert.Equal(t, 2.25, *entries[1].MarketPrice)

	// No tier at all leaves the price unset, not zero.
	assert.Nil(t, entries[2].MarketPrice)
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	entries, err := client.Search(context.Background(), "Pikachu", AllSets)

	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
	assert.Empty(t, entries)
}

func TestSearchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Connection refused from here on.

	client := New(srv.URL, "")
	entries, err := client.Search(context.Background(), "Pikachu", AllSets)

	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
	assert.Empty(t, entries)
}

func TestListSetsSortedWithSentinelFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sets", r.URL.Path)
		w.Write([]byte(`{
			"data": [
				{"name": "Jungle", "releaseDate": "1999-06-16"},
				{"name": "Mystery Box"},
				{"name": "Base Set", "releaseDate": "1999-01-09"},
				{"name": "Evolutions", "releaseDate": "2016-11-02"}
			]
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	sets, err := client.ListSets(context.Background())
	require.NoError(t, err)

	// Ascending by release date, undated sets last, sentinel always first.
	assert.Equal(t, []string{AllSets, "Base Set", "Jungle", "Evolutions", "Mystery Box"}, sets)
}

func TestListSetsFailureYieldsSentinelOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, "")
	sets, err := client.ListSets(context.Background())

	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
	assert.Equal(t, []string{AllSets}, sets)
}
