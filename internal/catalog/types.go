package catalog

import (
	"sync"
	"time"
)

type Environment string

const (
	Live    Environment = "live"
	Sandbox Environment = "sandbox"
)

type Config struct {
	Environment Environment
	BaseURL     string
	APIToken    string
	Timeout     time.Duration
	RetryCount  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
}

// Category is a top-level service type (airtime, data, cable, ...). The Code
// field selects the field set and validation rules that apply to purchases in
// that category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	Icon string `json:"icon,omitempty"`
}

// Provider is an operator/vendor scoped to a category. Distinct provider
// records may share a display name; de-duplication happens at selection time,
// not here.
type Provider struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CategoryID string `json:"category_id"`
}

type Validity struct {
	Duration     int    `json:"duration"`
	DurationType string `json:"duration_type"`
}

// Product is a concrete purchasable offering scoped to (category, provider),
// e.g. a specific data bundle or cable bouquet.
type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	Validity   Validity `json:"validity"`
	CategoryID string   `json:"category_id"`
	ProviderID string   `json:"provider_id"`
}

type CatalogCache struct {
	entries map[string]*cacheEntry
	mu      sync.RWMutex
	ttl     time.Duration
}

type cacheEntry struct {
	categories []Category
	providers  []Provider
	products   []Product
	fetchedAt  time.Time
}

type ErrorType string

const (
	ErrNetworkConnection  ErrorType = "network_connection"
	ErrServiceUnavailable ErrorType = "service_unavailable"
	ErrUnauthorized       ErrorType = "unauthorized"
	ErrNotFound           ErrorType = "not_found"
	ErrRateLimited        ErrorType = "rate_limited"
	ErrTimeout            ErrorType = "timeout"
	ErrBadResponse        ErrorType = "bad_response"
)

type CatalogError struct {
	Type    ErrorType
	Message string
	Code    int
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

type ServiceStatus struct {
	Connected   bool
	BaseURL     string
	LastChecked time.Time
	Latency     time.Duration
}
