package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client talks to the catalog service. Results are cached per request scope;
// an empty list is a normal, cacheable result rather than an error.
type Client struct {
	httpClient  *http.Client
	config      Config
	cache       *CatalogCache
	cleanupStop chan<- struct{}
	logger      *zap.Logger
	mu          sync.RWMutex
	status      ServiceStatus
}

const (
	DefaultLiveURL    = "https://api.paydesk.africa/v1"
	DefaultSandboxURL = "https://sandbox.paydesk.africa/v1"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = 2 * time.Second
	DefaultCacheTTL   = 5 * time.Minute
)

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		switch config.Environment {
		case Live:
			config.BaseURL = DefaultLiveURL
		case Sandbox:
			config.BaseURL = DefaultSandboxURL
		default:
			return nil, fmt.Errorf("unknown environment: %s", config.Environment)
		}
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryCount == 0 {
		config.RetryCount = DefaultRetryCount
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		cache:      NewCatalogCache(config.CacheTTL),
		logger:     logger,
		status: ServiceStatus{
			BaseURL:     config.BaseURL,
			Connected:   false,
			LastChecked: time.Now(),
		},
	}
	c.cleanupStop = c.cache.StartCleanupRoutine(config.CacheTTL)

	return c, nil
}

// Close stops the background cache cleanup. The client must not be used
// after Close.
func (c *Client) Close() {
	if c.cleanupStop != nil {
		close(c.cleanupStop)
		c.cleanupStop = nil
	}
}

// SetAPIToken replaces the bearer token, for credentials unsealed after
// the client is constructed.
func (c *Client) SetAPIToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config.APIToken = token
}

func (c *Client) apiToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.config.APIToken
}

func (c *Client) GetStatus() ServiceStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

func (c *Client) updateStatus(connected bool, latency time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status.Connected = connected
	c.status.Latency = latency
	c.status.LastChecked = time.Now()
}

// ListCategories returns all service categories, sorted by code for display.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	if cached, found := c.cache.GetCategories(); found {
		return cached, nil
	}

	var categories []Category
	if err := c.fetchWithRetry(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Code < categories[j].Code
	})

	c.cache.SetCategories(categories)
	return categories, nil
}

// ListProviders returns the providers available for a category. Duplicate
// display names are returned as-is; callers decide presentation policy.
func (c *Client) ListProviders(ctx context.Context, categoryID string) ([]Provider, error) {
	if categoryID == "" {
		return nil, NewCatalogError(ErrBadResponse, "category id is required", nil)
	}

	if cached, found := c.cache.GetProviders(categoryID); found {
		return cached, nil
	}

	query := url.Values{"category_id": {categoryID}}
	var providers []Provider
	if err := c.fetchWithRetry(ctx, "/providers", query, &providers); err != nil {
		return nil, err
	}

	c.cache.SetProviders(categoryID, providers)
	return providers, nil
}

// ListProducts returns the concrete offerings for (category, provider).
func (c *Client) ListProducts(ctx context.Context, categoryID, providerID string) ([]Product, error) {
	if categoryID == "" || providerID == "" {
		return nil, NewCatalogError(ErrBadResponse, "category and provider ids are required", nil)
	}

	if cached, found := c.cache.GetProducts(categoryID, providerID); found {
		return cached, nil
	}

	query := url.Values{
		"category_id": {categoryID},
		"provider_id": {providerID},
	}
	var products []Product
	if err := c.fetchWithRetry(ctx, "/products", query, &products); err != nil {
		return nil, err
	}

	c.cache.SetProducts(categoryID, providerID, products)
	return products, nil
}

func (c *Client) InvalidateProviders(categoryID string) {
	c.cache.Invalidate(providersKey(categoryID))
}

func (c *Client) InvalidateProducts(categoryID, providerID string) {
	c.cache.Invalidate(productsKey(categoryID, providerID))
}

func (c *Client) ClearCache() {
	c.cache.Clear()
}

func (c *Client) fetchWithRetry(ctx context.Context, path string, query url.Values, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt < c.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ClassifyError(ctx.Err())
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
		}

		err := c.doFetch(ctx, path, query, out)
		if err == nil {
			return nil
		}

		lastErr = err
		catalogErr := ClassifyError(err)
		if catalogErr != nil && !catalogErr.IsRetryable() {
			break
		}

		c.logger.Warn("catalog request failed, retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return ClassifyError(lastErr)
}

func (c *Client) doFetch(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewNetworkError("failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.apiToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.updateStatus(false, 0)
		return ClassifyError(err)
	}
	defer resp.Body.Close()

	c.updateStatus(true, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return NewStatusError("GET "+path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewCatalogError(ErrBadResponse, "failed to decode response", err)
	}

	return nil
}
