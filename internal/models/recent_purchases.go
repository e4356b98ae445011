package models

import (
	"sort"
	"strings"
	"time"

	"adaeze/payTerm/internal/schema"
)

type RecentPurchase struct {
	Reference    string              `json:"reference"`
	Category     schema.CategoryCode `json:"category"`
	ProviderName string              `json:"provider_name,omitempty"`
	ProductName  string              `json:"product_name,omitempty"`
	Identifier   string              `json:"identifier"`
	Amount       string              `json:"amount,omitempty"`
	LastUsed     time.Time           `json:"last_used"`
	UseCount     int                 `json:"use_count"`
}

// RecentPurchaseManager keeps a bounded, recency-ordered history of
// successful purchases, de-duplicated by (category, identifier) so repeat
// top-ups for the same number collapse into one entry.
type RecentPurchaseManager struct {
	purchases  []RecentPurchase
	maxEntries int
}

func NewRecentPurchaseManager(maxEntries int) *RecentPurchaseManager {
	if maxEntries <= 0 {
		maxEntries = 25
	}

	return &RecentPurchaseManager{
		purchases:  make([]RecentPurchase, 0),
		maxEntries: maxEntries,
	}
}

func (m *RecentPurchaseManager) Add(purchase RecentPurchase) {
	purchase.Identifier = strings.TrimSpace(purchase.Identifier)
	if purchase.Identifier == "" {
		return
	}

	now := time.Now()

	for i, existing := range m.purchases {
		if existing.Category == purchase.Category && existing.Identifier == purchase.Identifier {
			m.purchases[i].Reference = purchase.Reference
			m.purchases[i].ProviderName = purchase.ProviderName
			m.purchases[i].ProductName = purchase.ProductName
			m.purchases[i].Amount = purchase.Amount
			m.purchases[i].LastUsed = now
			m.purchases[i].UseCount++
			m.sortPurchases()
			return
		}
	}

	purchase.LastUsed = now
	purchase.UseCount = 1
	m.purchases = append(m.purchases, purchase)

	m.sortPurchases()
	if len(m.purchases) > m.maxEntries {
		m.purchases = m.purchases[:m.maxEntries]
	}
}

func (m *RecentPurchaseManager) Recent(limit int) []RecentPurchase {
	if limit <= 0 || limit > len(m.purchases) {
		limit = len(m.purchases)
	}

	out := make([]RecentPurchase, limit)
	copy(out, m.purchases[:limit])
	return out
}

func (m *RecentPurchaseManager) ForCategory(category schema.CategoryCode, limit int) []RecentPurchase {
	var out []RecentPurchase
	for _, p := range m.purchases {
		if p.Category == category {
			out = append(out, p)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

func (m *RecentPurchaseManager) Clear() {
	m.purchases = make([]RecentPurchase, 0)
}

func (m *RecentPurchaseManager) Export() []RecentPurchase {
	out := make([]RecentPurchase, len(m.purchases))
	copy(out, m.purchases)
	return out
}

func (m *RecentPurchaseManager) Import(purchases []RecentPurchase) {
	m.purchases = make([]RecentPurchase, 0, len(purchases))
	m.purchases = append(m.purchases, purchases...)

	m.sortPurchases()
	if len(m.purchases) > m.maxEntries {
		m.purchases = m.purchases[:m.maxEntries]
	}
}

func (m *RecentPurchaseManager) sortPurchases() {
	sort.Slice(m.purchases, func(i, j int) bool {
		return m.purchases[i].LastUsed.After(m.purchases[j].LastUsed)
	})
}
