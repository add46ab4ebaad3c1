package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rgolubev/patentlens/internal/cache"
	"github.com/rgolubev/patentlens/internal/model"
)

// Client queries the SerpAPI Google engine for patent search results.
// The query is always restricted to the configured site before being sent.
type Client struct {
	baseURL    string
	location   string
	site       string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a new search client. cache may be nil to disable
// provider-response caching.
func NewClient(cfg model.SearchConfig, timeout time.Duration, c cache.Cache) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}
	return &Client{
		baseURL:    baseURL,
		location:   cfg.Location,
		site:       cfg.Site,
		httpClient: &http.Client{Timeout: timeout},
		cache:      c,
		cacheTTL:   cfg.CacheTTL,
	}
}

// serpResponse is the subset of the provider response this client reads.
// Missing fields decode to their zero values and are defaulted explicitly
// in toResults.
type serpResponse struct {
	Error          string       `json:"error"`
	OrganicResults []serpResult `json:"organic_results"`
}

type serpResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Search issues one provider query and returns the organic results coerced
// into SearchResults. A missing title defaults to the fixed placeholder and
// a missing link to the empty string; filtering linkless records is the
// caller's concern.
func (c *Client) Search(ctx context.Context, query, apiKey string) ([]model.SearchResult, error) {
	q := query
	if c.site != "" {
		q = query + " site:" + c.site
	}

	if results, ok := c.cached(q); ok {
		return results, nil
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", q)
	if c.location != "" {
		params.Set("location", c.location)
	}
	params.Set("api_key", apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("provider error: %s", parsed.Error)
	}

	results := toResults(parsed.OrganicResults)
	c.store(q, results)
	return results, nil
}

// toResults applies the per-field defaults from the provider contract
func toResults(raw []serpResult) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(raw))
	for _, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = model.UntitledPatent
		}
		results = append(results, model.SearchResult{
			Title: title,
			Link:  strings.TrimSpace(r.Link),
		})
	}
	return results
}

// cached returns a previously stored result list for the full query
func (c *Client) cached(query string) ([]model.SearchResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, found := c.cache.Get(cache.Key(query))
	if !found {
		return nil, false
	}
	var results []model.SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		_ = c.cache.Delete(cache.Key(query))
		return nil, false
	}
	return results, true
}

// store caches the result list for the full query
func (c *Client) store(query string, results []model.SearchResult) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	_ = c.cache.Set(cache.Key(query), data, c.cacheTTL)
}
