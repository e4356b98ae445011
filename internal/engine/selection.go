// Package engine owns the category-polymorphic transaction form state: the
// cascading category → provider → product selection, per-category draft
// handoff, amount-mode handling, validation entry point and the summary
// projection.
package engine

import (
	"adaeze/payTerm/internal/catalog"
	"adaeze/payTerm/internal/drafts"
	"adaeze/payTerm/internal/schema"
)

type AmountMode int

const (
	AmountPreset AmountMode = iota
	AmountCustom
)

// AmountPresets are the fixed-choice amounts offered before the user opts
// into free-text entry.
var AmountPresets = []string{"100", "200", "500", "1000", "2000", "5000"}

// Controller is the cascading selection state machine. All methods are
// called from the UI event loop; transitions are synchronous and in-memory.
type Controller struct {
	selector *schema.Selector
	drafts   *drafts.Store

	category *catalog.Category
	code     schema.CategoryCode
	provider *catalog.Provider
	product  *catalog.Product

	providers       []catalog.Provider
	products        []catalog.Product
	providersLoaded bool
	productsLoaded  bool

	amountMode AmountMode
	values     drafts.FormValues

	// Monotonic fetch tokens. A response carrying a token that is no longer
	// current for its kind was issued for a stale selection and is dropped.
	providerSeq uint64
	productSeq  uint64
}

func NewController(selector *schema.Selector, store *drafts.Store) *Controller {
	return &Controller{
		selector: selector,
		drafts:   store,
		values:   drafts.DefaultValues(),
	}
}

func (c *Controller) ActiveCategory() *catalog.Category { return c.category }
func (c *Controller) ActiveCode() schema.CategoryCode   { return c.code }
func (c *Controller) ActiveProvider() *catalog.Provider { return c.provider }
func (c *Controller) ActiveProduct() *catalog.Product   { return c.product }
func (c *Controller) Mode() AmountMode                  { return c.amountMode }
func (c *Controller) ProvidersLoaded() bool             { return c.providersLoaded }
func (c *Controller) ProductsLoaded() bool              { return c.productsLoaded }

func (c *Controller) Providers() []catalog.Provider {
	out := make([]catalog.Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

func (c *Controller) Products() []catalog.Product {
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Values returns the full form value set, including stale keys retained from
// previously visited categories. Callers project before transmission.
func (c *Controller) Values() drafts.FormValues {
	return c.values.Clone()
}

func (c *Controller) SetField(key, value string) {
	c.values[key] = value
}

func (c *Controller) Field(key string) string {
	return c.values[key]
}

// SelectCategory activates a category: the outgoing category's values are
// snapshotted into the draft store before the active pointer moves, then the
// incoming category's draft is restored merged over the retained value set.
// Provider and product are always reset. The returned token identifies the
// provider fetch this transition triggers.
func (c *Controller) SelectCategory(category catalog.Category) uint64 {
	if c.category != nil {
		c.drafts.Save(c.code, c.values)
	}

	c.category = &category
	c.code = schema.CategoryCode(category.Code)
	c.provider = nil
	c.product = nil
	c.providers = nil
	c.products = nil
	c.providersLoaded = false
	c.productsLoaded = false
	c.amountMode = AmountPreset

	restored := c.drafts.Restore(c.code)
	for key, value := range restored {
		c.values[key] = value
	}
	// Keys relevant to this category but absent from the draft reset to
	// empty so a fresh visit starts clean while other categories' history
	// stays in the map.
	for _, key := range c.selector.KeysFor(c.code) {
		if _, ok := restored[key]; !ok {
			c.values[key] = ""
		}
	}

	// Both sequences advance: a product fetch issued for the previous
	// category must not land in this one.
	c.providerSeq++
	c.productSeq++
	return c.providerSeq
}

// AcceptProviders installs a provider fetch result. Responses for anything
// but the newest token are discarded. The stored list is de-duplicated by
// display name, first seen wins.
func (c *Controller) AcceptProviders(token uint64, providers []catalog.Provider) bool {
	if token != c.providerSeq {
		return false
	}

	c.providers = DedupeProviders(providers)
	c.providersLoaded = true
	return true
}

// SelectProvider activates a provider, clears the dependent product and
// returns the token for the product fetch this triggers.
func (c *Controller) SelectProvider(provider catalog.Provider) uint64 {
	c.provider = &provider
	c.product = nil
	c.products = nil
	c.productsLoaded = false

	c.values[ProviderFieldKey(c.code)] = provider.Name

	c.productSeq++
	return c.productSeq
}

func (c *Controller) AcceptProducts(token uint64, products []catalog.Product) bool {
	if token != c.productSeq {
		return false
	}

	c.products = products
	c.productsLoaded = true
	return true
}

// SelectProduct activates a product. No downstream fetches.
func (c *Controller) SelectProduct(product catalog.Product) {
	c.product = &product

	if key := ProductFieldKey(c.code); key != "" {
		c.values[key] = product.Name
	}
}

// SetAmountMode switches the amount control. A preset writes its value into
// the amount field directly; custom clears it for manual entry.
func (c *Controller) SetAmountMode(mode AmountMode, preset string) {
	c.amountMode = mode

	switch mode {
	case AmountCustom:
		c.values["amount"] = ""
	case AmountPreset:
		c.values["amount"] = preset
	}
}

// Validate runs only the active category's rule set over the current values.
func (c *Controller) Validate() schema.ValidationResult {
	return c.selector.Validate(c.code, c.values)
}

// SaveDraft snapshots the current values for the active category.
func (c *Controller) SaveDraft() {
	if c.category != nil {
		c.drafts.Save(c.code, c.values)
	}
}

// Reset clears the active category's draft and its relevant fields, leaving
// other categories' drafts intact.
func (c *Controller) Reset() {
	if c.category == nil {
		return
	}

	c.drafts.Clear(c.code)
	for _, key := range c.selector.KeysFor(c.code) {
		c.values[key] = ""
	}
	c.product = nil
	c.amountMode = AmountPreset
}

// ProviderFieldKey maps a category to the key its operator selection writes.
func ProviderFieldKey(code schema.CategoryCode) string {
	switch code {
	case schema.CategoryBetting:
		return "platform"
	case schema.CategoryOthers:
		return "serviceType"
	default:
		return "provider"
	}
}

// ProductFieldKey maps a category to the key its product selection writes;
// empty when the category has no product concept.
func ProductFieldKey(code schema.CategoryCode) string {
	switch code {
	case schema.CategoryData:
		return "dataType"
	case schema.CategoryCable:
		return "package"
	case schema.CategoryEducation:
		return "examType"
	case schema.CategoryInternet:
		return "planType"
	default:
		return ""
	}
}

// HasProducts reports whether a category offers concrete products to pick.
func HasProducts(code schema.CategoryCode) bool {
	return ProductFieldKey(code) != ""
}

// HasAmountField reports whether a category's form carries an amount field.
func HasAmountField(code schema.CategoryCode) bool {
	switch code {
	case schema.CategoryAirtime, schema.CategoryElectricity, schema.CategoryBetting, schema.CategoryOthers:
		return true
	default:
		return false
	}
}

// DedupeProviders collapses providers sharing a display name down to the
// first record encountered, preserving fetch order. This matches observed
// upstream behavior where duplicate records exist for one operator.
func DedupeProviders(providers []catalog.Provider) []catalog.Provider {
	seen := make(map[string]bool, len(providers))
	out := make([]catalog.Provider, 0, len(providers))

	for _, p := range providers {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}

	return out
}
