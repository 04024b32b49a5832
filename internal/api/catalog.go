package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/recipefinder/internal/cache"
	"github.com/thesavant42/recipefinder/internal/models"
)

const (
	// DefaultBaseURL is the public catalog API
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"
	defaultTimeout = 30 * time.Second
	userAgent      = "recipefinder/1.0"
	maxErrorBody   = 512 // bytes of a failed response kept for the error message
)

// Endpoint path+query templates; the trailing "=" ones take a percent-encoded value
const (
	EndpointSearchByName   = "search.php?s="
	EndpointSearchByLetter = "search.php?f="
	EndpointCategories     = "categories.php"
	EndpointAreas          = "list.php?a=list"
	EndpointIngredients    = "list.php?i=list"
	EndpointByIngredient   = "filter.php?i="
	EndpointByCategory     = "filter.php?c="
	EndpointByArea         = "filter.php?a="
	EndpointLookup         = "lookup.php?i="
	EndpointRandom         = "random.php"
	EndpointRandomBatch    = "randomselection.php"
	EndpointLatest         = "latest.php"
)

// Payload fields holding the result array
const (
	fieldMeals      = "meals"
	fieldCategories = "categories"
)

// CatalogClient is a typed, caching client for the recipe catalog API
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.ResponseCache
	ttl        time.Duration
	logger     *log.Logger
}

// NewCatalogClient creates a catalog client with its own response cache
// A zero ttl uses cache.DefaultTTL; logger may be nil
func NewCatalogClient(baseURL string, ttl time.Duration, logger *log.Logger) *CatalogClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return &CatalogClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		cache:  cache.NewResponseCache(),
		ttl:    ttl,
		logger: logger,
	}
}

// SetHTTPClient replaces the HTTP client used for requests
func (c *CatalogClient) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetCache replaces the response cache, e.g. with one driven by a fake clock
func (c *CatalogClient) SetCache(rc *cache.ResponseCache) {
	c.cache = rc
}

// Cache returns the response cache
func (c *CatalogClient) Cache() *cache.ResponseCache {
	return c.cache
}

// RequestURL builds the canonical URL for an endpoint and optional value
// The URL doubles as the cache key, so identical requests always map to one entry
func (c *CatalogClient) RequestURL(endpoint, value string) string {
	return c.baseURL + "/" + endpoint + encodeValue(value)
}

// encodeValue percent-encodes a query value the way browsers' encodeURIComponent does for spaces
func encodeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// SearchByName searches recipes by name
// A query that is empty after trimming returns no results without a request
func (c *CatalogClient) SearchByName(ctx context.Context, query string) ([]models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Recipe{}, nil
	}
	return fetchList[models.Recipe](ctx, c, EndpointSearchByName, query, fieldMeals)
}

// SearchByFirstLetter lists recipes whose name starts with letter
// Anything other than exactly one character returns no results without a request
func (c *CatalogClient) SearchByFirstLetter(ctx context.Context, letter string) ([]models.Recipe, error) {
	if len([]rune(letter)) != 1 {
		return []models.Recipe{}, nil
	}
	return fetchList[models.Recipe](ctx, c, EndpointSearchByLetter, strings.ToUpper(letter), fieldMeals)
}

// ListCategories returns every category with description and image
func (c *CatalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	return fetchList[models.Category](ctx, c, EndpointCategories, "", fieldCategories)
}

// ListAreas returns every cuisine area
func (c *CatalogClient) ListAreas(ctx context.Context) ([]models.Area, error) {
	return fetchList[models.Area](ctx, c, EndpointAreas, "", fieldMeals)
}

// ListIngredients returns every ingredient
func (c *CatalogClient) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return fetchList[models.Ingredient](ctx, c, EndpointIngredients, "", fieldMeals)
}

// FindByIngredient returns lightweight results for recipes using an ingredient
func (c *CatalogClient) FindByIngredient(ctx context.Context, name string) ([]models.FilterResult, error) {
	return fetchList[models.FilterResult](ctx, c, EndpointByIngredient, name, fieldMeals)
}

// FindByCategory returns lightweight results for recipes in a category
func (c *CatalogClient) FindByCategory(ctx context.Context, name string) ([]models.FilterResult, error) {
	return fetchList[models.FilterResult](ctx, c, EndpointByCategory, name, fieldMeals)
}

// FindByArea returns lightweight results for recipes from an area
func (c *CatalogClient) FindByArea(ctx context.Context, name string) ([]models.FilterResult, error) {
	return fetchList[models.FilterResult](ctx, c, EndpointByArea, name, fieldMeals)
}

// GetRandom returns one random recipe, or nil if the catalog returned none
func (c *CatalogClient) GetRandom(ctx context.Context) (*models.Recipe, error) {
	recipes, err := fetchList[models.Recipe](ctx, c, EndpointRandom, "", fieldMeals)
	if err != nil {
		return nil, err
	}
	return first(recipes), nil
}

// GetByID looks up a recipe, returning nil if the id does not resolve
// An empty id resolves to nothing without a request
func (c *CatalogClient) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	recipes, err := fetchList[models.Recipe](ctx, c, EndpointLookup, id, fieldMeals)
	if err != nil {
		return nil, err
	}
	return first(recipes), nil
}

// GetRandomBatch returns a selection of random recipes
// If the batch endpoint fails it falls back to a single GetRandom; failures are
// logged and never returned, so callers can't tell whether the fallback ran
func (c *CatalogClient) GetRandomBatch(ctx context.Context) []models.Recipe {
	recipes, err := fetchList[models.Recipe](ctx, c, EndpointRandomBatch, "", fieldMeals)
	if err == nil {
		return recipes
	}

	if c.logger != nil {
		c.logger.Warn("Random selection unavailable, falling back to single random recipe", "error", err)
	}

	recipe, err := c.GetRandom(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Random fallback failed", "error", err)
		}
		return []models.Recipe{}
	}
	if recipe == nil {
		return []models.Recipe{}
	}
	return []models.Recipe{*recipe}
}

// GetLatest returns the newest recipes, or an empty list if the endpoint fails
func (c *CatalogClient) GetLatest(ctx context.Context) []models.Recipe {
	recipes, err := fetchList[models.Recipe](ctx, c, EndpointLatest, "", fieldMeals)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("Latest recipes unavailable", "error", err)
		}
		return []models.Recipe{}
	}
	return recipes
}

// fetchList fetches (or reads from cache) one endpoint and decodes the named result array
// The raw body is cached only once it has decoded cleanly
func fetchList[T any](ctx context.Context, c *CatalogClient, endpoint, value, field string) ([]T, error) {
	reqURL := c.RequestURL(endpoint, value)

	if raw, ok := c.cache.Get(reqURL); ok {
		if c.logger != nil {
			c.logger.Debug("Cache hit", "url", reqURL)
		}
		return decodeList[T](raw, field)
	}

	raw, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, &RemoteFetchError{Endpoint: endpoint, Cause: err}
	}

	items, err := decodeList[T](raw, field)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Failed to decode response", "url", reqURL, "error", err)
		}
		return nil, &RemoteFetchError{Endpoint: endpoint, Cause: err}
	}

	c.cache.Set(reqURL, raw, c.ttl)
	return items, nil
}

// get performs one unauthenticated GET and returns the body of a 2xx response
func (c *CatalogClient) get(ctx context.Context, reqURL string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Failed to create request", "url", reqURL, "error", err)
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Info("GET", "url", reqURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "url", reqURL, "error", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Error("Catalog error", "url", reqURL, "status", resp.StatusCode)
		}
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: snippet}
	}

	return body, nil
}

// decodeList pulls the array stored under field out of a catalog payload
// null, a missing field, or a non-array marker (the API sometimes answers with a string) all mean "no results"
func decodeList[T any](raw json.RawMessage, field string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	value := bytes.TrimSpace(envelope[field])
	if len(value) == 0 || value[0] != '[' {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", field, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func first(recipes []models.Recipe) *models.Recipe {
	if len(recipes) == 0 {
		return nil
	}
	r := recipes[0]
	return &r
}
