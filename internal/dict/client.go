package dict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the Jisho words search endpoint.
	DefaultBaseURL = "https://jisho.org/api/v1/search/words"
	// DefaultTimeout bounds a single lookup request.
	DefaultTimeout = 15 * time.Second
)

// Client looks up words against the Jisho API. A nil cache disables
// caching; cache failures degrade to network-only lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithCache attaches a lookup cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger attaches a logger for cache degradation warnings.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a Jisho client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches dictionary entries for keyword. An empty result is not
// an error: a word with no entries returns an empty slice.
func (c *Client) Lookup(ctx context.Context, keyword string) ([]Entry, error) {
	if c.cache != nil {
		entries, ok, err := c.cache.Get(keyword)
		if err != nil {
			c.log.Warn("lookup cache read failed", "keyword", keyword, "error", err)
		} else if ok {
			return entries, nil
		}
	}

	entries, err := c.fetch(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(keyword, entries); err != nil {
			c.log.Warn("lookup cache write failed", "keyword", keyword, "error", err)
		}
	}
	return entries, nil
}

func (c *Client) fetch(ctx context.Context, keyword string) ([]Entry, error) {
	reqURL := c.baseURL + "?keyword=" + url.QueryEscape(keyword)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if apiResp.Meta.Status != 0 && apiResp.Meta.Status != http.StatusOK {
		return nil, fmt.Errorf("dictionary API status %d", apiResp.Meta.Status)
	}

	return apiResp.Data, nil
}
