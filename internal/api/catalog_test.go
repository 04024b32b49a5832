package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/recipefinder/internal/cache"
)

// fakeCatalog serves canned bodies keyed by "path?rawquery" and counts requests
type fakeCatalog struct {
	mu        sync.Mutex
	responses map[string]string
	statuses  map[string]int
	hits      map[string]int
	total     int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		responses: make(map[string]string),
		statuses:  make(map[string]int),
		hits:      make(map[string]int),
	}
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	f.hits[key]++
	f.total++

	if status, ok := f.statuses[key]; ok {
		w.WriteHeader(status)
		return
	}
	body, ok := f.responses[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeCatalog) requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

func (f *fakeCatalog) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func newTestClient(t *testing.T, fake *fakeCatalog) *CatalogClient {
	t.Helper()
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	c := NewCatalogClient(ts.URL+"/api/json/v1/1", time.Minute, nil)
	c.SetHTTPClient(ts.Client())
	return c
}

const prefix = "/api/json/v1/1/"

func TestSearchByNameBlankMakesNoRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"home listing query", ""},
		{"cleared search box", "   "},
		{"tabs and newlines", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCatalog()
			c := newTestClient(t, fake)

			got, err := c.SearchByName(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NotNil(t, got)
			assert.Equal(t, 0, fake.requests())
		})
	}
}

func TestSearchByNameEncodesAndCaches(t *testing.T) {
	fake := newFakeCatalog()
	fake.responses[prefix+"search.php?s=beef%20stew"] = `{"meals":[{"idMeal":"1","strMeal":"Beef Stew"}]}`
	c := newTestClient(t, fake)

	// surrounding whitespace is not part of the query, so all of these share one cache entry
	for _, q := range []string{"  beef stew ", "beef stew", "\tbeef stew\n"} {
		got, err := c.SearchByName(context.Background(), q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Beef Stew", got[0].Name)
	}

	assert.Equal(t, 1, fake.count(prefix+"search.php?s=beef%20stew"), "repeat searches should be served from cache")
	assert.Equal(t, 1, c.Cache().Len())
}

func TestSearchByNameNullMeansNoResults(t *testing.T) {
	fake := newFakeCatalog()
	fake.responses[prefix+"search.php?s=zzz"] = `{"meals":null}`
	c := newTestClient(t, fake)

	got, err := c.SearchByName(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchByFirstLetter(t *testing.T) {
	tests := []struct {
		name     string
		letter   string
		requests int
	}{
		{"empty", "", 0},
		{"two letters", "ab", 0},
		{"one letter", "a", 1},
		{"uppercase already", "A", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCatalog()
			fake.responses[prefix+"search.php?f=A"] = `{"meals":[{"idMeal":"7","strMeal":"Apple Frangipan Tart"}]}`
			c := newTestClient(t, fake)

			got, err := c.SearchByFirstLetter(context.Background(), tt.letter)
			require.NoError(t, err)
			assert.Equal(t, tt.requests, fake.requests())
			assert.Len(t, got, tt.requests)
		})
	}
}

func TestReferenceLists(t *testing.T) {
	fake := newFakeCatalog()
	fake.responses[prefix+"categories.php"] = `{"categories":[{"idCategory":"1","strCategory":"Beef","strCategoryDescription":"Cow","strCategoryThumb":"b.png"}]}`
	fake.responses[prefix+"list.php?a=list"] = `{"meals":[{"strArea":"British"},{"strArea":"Italian"}]}`
	fake.responses[prefix+"list.php?i=list"] = `{"meals":[{"idIngredient":"1","strIngredient":"Chicken","strDescription":null}]}`
	c := newTestClient(t, fake)
	ctx := context.Background()

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Beef", categories[0].Name)
	assert.Equal(t, "Cow", categories[0].Description)

	areas, err := c.ListAreas(ctx)
	require.NoError(t, err)
	assert.Len(t, areas, 2)
	assert.Equal(t, "Italian", areas[1].Name)

	ingredients, err := c.ListIngredients(ctx)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Chicken", ingredients[0].Name)
	assert.Empty(t, ingredients[0].Description)
}

func TestFilterEndpoints(t *testing.T) {
	fake := newFakeCatalog()
	body := `{"meals":[{"strMeal":"Baked salmon","strMealThumb":"s.jpg","idMeal":"52959"}]}`
	fake.responses[prefix+"filter.php?c=Seafood"] = body
	fake.responses[prefix+"filter.php?a=Canadian"] = body
	fake.responses[prefix+"filter.php?i=chicken%20breast"] = body
	c := newTestClient(t, fake)
	ctx := context.Background()

	byCategory, err := c.FindByCategory(ctx, "Seafood")
	require.NoError(t, err)
	assert.Equal(t, "52959", byCategory[0].ID)

	byArea, err := c.FindByArea(ctx, "Canadian")
	require.NoError(t, err)
	assert.Len(t, byArea, 1)

	byIngredient, err := c.FindByIngredient(ctx, "chicken breast")
	require.NoError(t, err)
	assert.Equal(t, "Baked salmon", byIngredient[0].Name)
}

func TestGetByID(t *testing.T) {
	fake := newFakeCatalog()
	fake.responses[prefix+"lookup.php?i=52772"] = `{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole"}]}`
	fake.responses[prefix+"lookup.php?i=1"] = `{"meals":null}`
	c := newTestClient(t, fake)
	ctx := context.Background()

	recipe, err := c.GetByID(ctx, "52772")
	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.Equal(t, "Teriyaki Chicken Casserole", recipe.Name)

	missing, err := c.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	blank, err := c.GetByID(ctx, " ")
	require.NoError(t, err)
	assert.Nil(t, blank)
	assert.Equal(t, 2, fake.requests())
}

func TestFailuresAreRemoteFetchErrors(t *testing.T) {
	fake := newFakeCatalog()
	fake.statuses[prefix+"categories.php"] = http.StatusInternalServerError
	fake.responses[prefix+"list.php?a=list"] = `<html>oops</html>`
	c := newTestClient(t, fake)
	ctx := context.Background()

	_, err := c.ListCategories(ctx)
	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, EndpointCategories, fetchErr.Endpoint)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)

	_, err = c.ListAreas(ctx)
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, EndpointAreas, fetchErr.Endpoint)

	// Failures are not cached; a retry hits the network again
	_, _ = c.ListCategories(ctx)
	assert.Equal(t, 2, fake.count(prefix+"categories.php"))
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	c := NewCatalogClient(ts.URL, time.Minute, nil)
	_, err := c.GetRandom(context.Background())

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, EndpointRandom, fetchErr.Endpoint)
}

func TestGetRandomBatch(t *testing.T) {
	tests := []struct {
		name       string
		batch      string
		batchFail  bool
		random     string
		randomFail bool
		wantIDs    []string
	}{
		{
			name:    "batch works",
			batch:   `{"meals":[{"idMeal":"1"},{"idMeal":"2"}]}`,
			random:  `{"meals":[{"idMeal":"9"}]}`,
			wantIDs: []string{"1", "2"},
		},
		{
			name:      "batch fails, random fills in",
			batchFail: true,
			random:    `{"meals":[{"idMeal":"9"}]}`,
			wantIDs:   []string{"9"},
		},
		{
			name:      "batch fails, random empty",
			batchFail: true,
			random:    `{"meals":null}`,
			wantIDs:   []string{},
		},
		{
			name:       "everything fails",
			batchFail:  true,
			randomFail: true,
			wantIDs:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeCatalog()
			if tt.batchFail {
				fake.statuses[prefix+"randomselection.php"] = http.StatusForbidden
			} else {
				fake.responses[prefix+"randomselection.php"] = tt.batch
			}
			if tt.randomFail {
				fake.statuses[prefix+"random.php"] = http.StatusBadGateway
			} else {
				fake.responses[prefix+"random.php"] = tt.random
			}
			c := newTestClient(t, fake)

			got := c.GetRandomBatch(context.Background())
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.LessOrEqual(t, len(got), len(tt.wantIDs))
		})
	}
}

func TestGetLatestSwallowsFailure(t *testing.T) {
	fake := newFakeCatalog()
	fake.statuses[prefix+"latest.php"] = http.StatusUnauthorized
	c := newTestClient(t, fake)

	got := c.GetLatest(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCacheEntryExpiresAndRefetches(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	fake := newFakeCatalog()
	fake.responses[prefix+"random.php"] = `{"meals":[{"idMeal":"5"}]}`
	c := newTestClient(t, fake)
	c.SetCache(cache.NewResponseCacheWithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := c.GetRandom(ctx)
	require.NoError(t, err)
	_, err = c.GetRandom(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.requests())

	now = now.Add(time.Minute)
	_, err = c.GetRandom(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.requests())
}

func TestCachedValueIsVerbatim(t *testing.T) {
	fake := newFakeCatalog()
	c := newTestClient(t, fake)
	key := c.RequestURL(EndpointSearchByName, "pie")

	// Seed the cache directly; the network has nothing for this key
	c.Cache().Set(key, json.RawMessage(`{"meals":[{"idMeal":"3","strMeal":"Pie"}]}`), time.Minute)

	got, err := c.SearchByName(context.Background(), "pie")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pie", got[0].Name)
	assert.Equal(t, 0, fake.requests())
}

func TestRequestURLCanonical(t *testing.T) {
	c := NewCatalogClient("https://example.test/api/", time.Minute, nil)

	tests := []struct {
		endpoint string
		value    string
		want     string
	}{
		{EndpointCategories, "", "https://example.test/api/categories.php"},
		{EndpointByArea, "Italian", "https://example.test/api/filter.php?a=Italian"},
		{EndpointSearchByName, "mac & cheese", "https://example.test/api/search.php?s=mac%20%26%20cheese"},
		{EndpointByIngredient, "crème fraîche", "https://example.test/api/filter.php?i=cr%C3%A8me%20fra%C3%AEche"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, c.RequestURL(tt.endpoint, tt.value))
		})
	}
}

func TestRemoteFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &RemoteFetchError{Endpoint: EndpointLatest, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "latest.php")
}
