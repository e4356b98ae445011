package catalog

import (
	"time"
)

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

func categoriesKey() string {
	return "categories"
}

func providersKey(categoryID string) string {
	return "providers/" + categoryID
}

func productsKey(categoryID, providerID string) string {
	return "products/" + categoryID + "/" + providerID
}

func (c *CatalogCache) GetCategories() ([]Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[categoriesKey()]
	if !exists || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}

	out := make([]Category, len(entry.categories))
	copy(out, entry.categories)
	return out, true
}

func (c *CatalogCache) SetCategories(categories []Category) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]Category, len(categories))
	copy(stored, categories)
	c.entries[categoriesKey()] = &cacheEntry{categories: stored, fetchedAt: time.Now()}
}

func (c *CatalogCache) GetProviders(categoryID string) ([]Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[providersKey(categoryID)]
	if !exists || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}

	out := make([]Provider, len(entry.providers))
	copy(out, entry.providers)
	return out, true
}

func (c *CatalogCache) SetProviders(categoryID string, providers []Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]Provider, len(providers))
	copy(stored, providers)
	c.entries[providersKey(categoryID)] = &cacheEntry{providers: stored, fetchedAt: time.Now()}
}

func (c *CatalogCache) GetProducts(categoryID, providerID string) ([]Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[productsKey(categoryID, providerID)]
	if !exists || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}

	out := make([]Product, len(entry.products))
	copy(out, entry.products)
	return out, true
}

func (c *CatalogCache) SetProducts(categoryID, providerID string, products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]Product, len(products))
	copy(stored, products)
	c.entries[productsKey(categoryID, providerID)] = &cacheEntry{products: stored, fetchedAt: time.Now()}
}

func (c *CatalogCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *CatalogCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
}

func (c *CatalogCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.Sub(entry.fetchedAt) > c.ttl {
			delete(c.entries, key)
		}
	}
}

func (c *CatalogCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *CatalogCache) StartCleanupRoutine(interval time.Duration) chan<- struct{} {
	stop := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Cleanup()
			case <-stop:
				return
			}
		}
	}()
	return stop
}
