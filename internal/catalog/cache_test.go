package catalog

import (
	"testing"
	"time"
)

func TestNewCatalogCache(t *testing.T) {
	ttl := 5 * time.Minute
	cache := NewCatalogCache(ttl)

	if cache == nil {
		t.Fatal("Cache is nil")
	}

	if cache.ttl != ttl {
		t.Errorf("Expected TTL %v, got %v", ttl, cache.ttl)
	}

	if cache.entries == nil {
		t.Error("Entries map should be initialized")
	}
}

func TestCacheCategoriesSetAndGet(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)

	categories := []Category{
		{ID: "cat-1", Name: "Airtime", Code: "airtime"},
		{ID: "cat-2", Name: "Data", Code: "data"},
	}

	// Test cache miss
	_, found := cache.GetCategories()
	if found {
		t.Error("Expected cache miss for empty cache")
	}

	cache.SetCategories(categories)

	cached, found := cache.GetCategories()
	if !found {
		t.Fatal("Expected cache hit after setting")
	}

	if len(cached) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(cached))
	}

	if cached[0].Code != "airtime" || cached[1].Code != "data" {
		t.Errorf("Unexpected categories: %+v", cached)
	}
}

func TestCacheReturnsCopies(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)
	cache.SetCategories([]Category{{ID: "cat-1", Name: "Airtime", Code: "airtime"}})

	first, _ := cache.GetCategories()
	first[0].Name = "mutated"

	second, _ := cache.GetCategories()
	if second[0].Name != "Airtime" {
		t.Error("Cache should return copies, not shared slices")
	}
}

func TestCacheProvidersScopedByCategory(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)

	cache.SetProviders("cat-1", []Provider{{ID: "p-1", Name: "MTN", CategoryID: "cat-1"}})

	_, found := cache.GetProviders("cat-2")
	if found {
		t.Error("Expected cache miss for different category scope")
	}

	providers, found := cache.GetProviders("cat-1")
	if !found {
		t.Fatal("Expected cache hit for stored category")
	}
	if providers[0].Name != "MTN" {
		t.Errorf("Expected MTN, got %s", providers[0].Name)
	}
}

func TestCacheProductsScopedByCategoryAndProvider(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)

	cache.SetProducts("cat-1", "p-1", []Product{{ID: "s-1", Name: "1GB Daily", Price: 300}})

	_, found := cache.GetProducts("cat-1", "p-2")
	if found {
		t.Error("Expected cache miss for different provider scope")
	}

	products, found := cache.GetProducts("cat-1", "p-1")
	if !found {
		t.Fatal("Expected cache hit for stored scope")
	}
	if products[0].Name != "1GB Daily" {
		t.Errorf("Expected 1GB Daily, got %s", products[0].Name)
	}
}

func TestCacheEmptyListIsCacheable(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)

	cache.SetProviders("cat-1", []Provider{})

	providers, found := cache.GetProviders("cat-1")
	if !found {
		t.Fatal("Expected cache hit for empty provider list")
	}
	if len(providers) != 0 {
		t.Errorf("Expected empty list, got %d entries", len(providers))
	}
}

func TestCacheExpiration(t *testing.T) {
	cache := NewCatalogCache(100 * time.Millisecond)

	cache.SetCategories([]Category{{ID: "cat-1", Code: "airtime"}})

	_, found := cache.GetCategories()
	if !found {
		t.Error("Expected cache hit immediately after setting")
	}

	time.Sleep(150 * time.Millisecond)

	_, found = cache.GetCategories()
	if found {
		t.Error("Expected cache miss after expiration")
	}
}

func TestCacheInvalidate(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)

	cache.SetProviders("cat-1", []Provider{{ID: "p-1", Name: "MTN"}})
	cache.SetProviders("cat-2", []Provider{{ID: "p-2", Name: "DSTV"}})

	cache.Invalidate(providersKey("cat-1"))

	if _, found := cache.GetProviders("cat-1"); found {
		t.Error("Expected cache miss after invalidation")
	}
	if _, found := cache.GetProviders("cat-2"); !found {
		t.Error("Invalidation should not touch other scopes")
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCatalogCache(5 * time.Minute)

	cache.SetCategories([]Category{{ID: "cat-1"}})
	cache.SetProviders("cat-1", []Provider{{ID: "p-1"}})
	cache.SetProducts("cat-1", "p-1", []Product{{ID: "s-1"}})

	if cache.Size() != 3 {
		t.Errorf("Expected size 3, got %d", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", cache.Size())
	}
}

func TestCacheCleanup(t *testing.T) {
	cache := NewCatalogCache(100 * time.Millisecond)

	cache.SetCategories([]Category{{ID: "cat-1"}})
	cache.SetProviders("cat-1", []Provider{{ID: "p-1"}})

	if cache.Size() != 2 {
		t.Errorf("Expected size 2, got %d", cache.Size())
	}

	time.Sleep(150 * time.Millisecond)

	cache.Cleanup()

	if cache.Size() != 0 {
		t.Errorf("Expected size 0 after cleanup, got %d", cache.Size())
	}
}
