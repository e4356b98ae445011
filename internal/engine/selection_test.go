package engine

import (
	"testing"

	"adaeze/payTerm/internal/catalog"
	"adaeze/payTerm/internal/drafts"
	"adaeze/payTerm/internal/schema"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()

	selector, err := schema.NewSelector()
	if err != nil {
		t.Fatalf("Failed to create selector: %v", err)
	}
	return NewController(selector, drafts.NewStore())
}

func airtimeCategory() catalog.Category {
	return catalog.Category{ID: "cat-air", Name: "Airtime", Code: "airtime"}
}

func dataCategory() catalog.Category {
	return catalog.Category{ID: "cat-data", Name: "Data", Code: "data"}
}

func cableCategory() catalog.Category {
	return catalog.Category{ID: "cat-cable", Name: "Cable TV", Code: "cable"}
}

func TestSelectCategoryResetsDownstream(t *testing.T) {
	c := newTestController(t)

	token := c.SelectCategory(airtimeCategory())
	c.AcceptProviders(token, []catalog.Provider{{ID: "p-1", Name: "MTN"}})
	c.SelectProvider(catalog.Provider{ID: "p-1", Name: "MTN"})
	c.SelectProduct(catalog.Product{ID: "s-1", Name: "Weekly Bundle"})

	c.SelectCategory(cableCategory())

	if c.ActiveProvider() != nil {
		t.Error("Selecting a category must reset the active provider")
	}
	if c.ActiveProduct() != nil {
		t.Error("Selecting a category must reset the active product")
	}
	if c.ProvidersLoaded() {
		t.Error("Provider list should be pending after category switch")
	}
}

func TestDraftRoundTripAcrossCategorySwitches(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(airtimeCategory())
	c.SetField("phone", "08012345678")
	c.SetField("amount", "500")

	c.SelectCategory(dataCategory())
	if got := c.Field("phone"); got != "" {
		t.Errorf("Fresh data category should start with empty phone, got %q", got)
	}
	c.SetField("phone", "08055555555")

	c.SelectCategory(airtimeCategory())
	if got := c.Field("phone"); got != "08012345678" {
		t.Errorf("Expected airtime draft restored exactly, got %q", got)
	}
	if got := c.Field("amount"); got != "500" {
		t.Errorf("Expected airtime amount restored, got %q", got)
	}

	c.SelectCategory(dataCategory())
	if got := c.Field("phone"); got != "08055555555" {
		t.Errorf("Expected data draft restored exactly, got %q", got)
	}
}

func TestStaleProviderResponseDiscarded(t *testing.T) {
	c := newTestController(t)

	oldToken := c.SelectCategory(airtimeCategory())
	newToken := c.SelectCategory(cableCategory())

	if c.AcceptProviders(oldToken, []catalog.Provider{{ID: "p-old", Name: "MTN"}}) {
		t.Error("Stale provider response must be discarded")
	}
	if c.ProvidersLoaded() {
		t.Error("Stale response must not mark providers as loaded")
	}

	if !c.AcceptProviders(newToken, []catalog.Provider{{ID: "p-new", Name: "DSTV"}}) {
		t.Error("Current provider response must be accepted")
	}
	if got := c.Providers(); len(got) != 1 || got[0].Name != "DSTV" {
		t.Errorf("Expected DSTV providers, got %+v", got)
	}
}

func TestStaleProductResponseDiscarded(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(dataCategory())
	oldToken := c.SelectProvider(catalog.Provider{ID: "p-1", Name: "MTN"})
	newToken := c.SelectProvider(catalog.Provider{ID: "p-2", Name: "Airtel"})

	if c.AcceptProducts(oldToken, []catalog.Product{{ID: "s-old", Name: "MTN 1GB"}}) {
		t.Error("Product response for a previously active provider must be discarded")
	}

	if !c.AcceptProducts(newToken, []catalog.Product{{ID: "s-new", Name: "Airtel 1GB"}}) {
		t.Error("Current product response must be accepted")
	}
	if got := c.Products(); len(got) != 1 || got[0].Name != "Airtel 1GB" {
		t.Errorf("Expected Airtel products, got %+v", got)
	}
}

func TestStaleProductResponseDiscardedAcrossCategorySwitch(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(dataCategory())
	oldToken := c.SelectProvider(catalog.Provider{ID: "p-1", Name: "MTN"})

	c.SelectCategory(cableCategory())

	if c.AcceptProducts(oldToken, []catalog.Product{{ID: "s-old", Name: "MTN 1GB"}}) {
		t.Error("Product response for a previous category must be discarded")
	}
	if c.ProductsLoaded() || len(c.Products()) != 0 {
		t.Errorf("Expected no products after category switch, got %+v", c.Products())
	}

	newToken := c.SelectProvider(catalog.Provider{ID: "p-9", Name: "DStv"})
	if !c.AcceptProducts(newToken, []catalog.Product{{ID: "s-new", Name: "Premium"}}) {
		t.Error("Current product response must be accepted")
	}
	if got := c.Products(); len(got) != 1 || got[0].Name != "Premium" {
		t.Errorf("Expected cable products, got %+v", got)
	}
}

func TestSelectProviderClearsProduct(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(dataCategory())
	token := c.SelectProvider(catalog.Provider{ID: "p-1", Name: "MTN"})
	c.AcceptProducts(token, []catalog.Product{{ID: "s-1", Name: "1GB Daily"}})
	c.SelectProduct(catalog.Product{ID: "s-1", Name: "1GB Daily"})

	c.SelectProvider(catalog.Provider{ID: "p-2", Name: "Airtel"})

	if c.ActiveProduct() != nil {
		t.Error("Selecting a provider must clear the active product")
	}
	if c.ProductsLoaded() {
		t.Error("Product list should be pending after provider switch")
	}
}

func TestDedupeProvidersFirstSeenWins(t *testing.T) {
	providers := []catalog.Provider{
		{ID: "1", Name: "MTN"},
		{ID: "2", Name: "MTN"},
		{ID: "3", Name: "Airtel"},
	}

	deduped := DedupeProviders(providers)

	if len(deduped) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(deduped))
	}
	if deduped[0].ID != "1" || deduped[0].Name != "MTN" {
		t.Errorf("Expected first MTN record to win, got %+v", deduped[0])
	}
	if deduped[1].ID != "3" || deduped[1].Name != "Airtel" {
		t.Errorf("Expected Airtel third record, got %+v", deduped[1])
	}
}

func TestAmountModePresetAndCustom(t *testing.T) {
	c := newTestController(t)
	c.SelectCategory(airtimeCategory())

	c.SetAmountMode(AmountPreset, "500")
	if got := c.Field("amount"); got != "500" {
		t.Errorf("Preset mode must write the preset value, got %q", got)
	}

	c.SetAmountMode(AmountCustom, "")
	if got := c.Field("amount"); got != "" {
		t.Errorf("Custom mode must clear the amount, got %q", got)
	}
	if c.Mode() != AmountCustom {
		t.Error("Expected custom mode to be active")
	}
}

func TestProviderSelectionWritesCategorySpecificKey(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(catalog.Category{ID: "cat-bet", Name: "Betting", Code: "betting"})
	c.SelectProvider(catalog.Provider{ID: "p-1", Name: "bet9ja"})

	if got := c.Field("platform"); got != "bet9ja" {
		t.Errorf("Betting provider should write platform key, got %q", got)
	}
	if got := c.Field("provider"); got != "" {
		t.Errorf("Betting must not write the generic provider key, got %q", got)
	}
}

func TestValidateBlocksOnCategoryRules(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(cableCategory())
	c.SelectProvider(catalog.Provider{ID: "p-1", Name: "dstv"})
	c.SetField("smartCardNumber", "")
	c.SetField("package", "Compact")

	result := c.Validate()
	if result.IsValid {
		t.Fatal("Empty smart card number must block submission")
	}
	if _, found := result.ErrorFor("smartCardNumber"); !found {
		t.Error("Expected validation error on smartCardNumber")
	}
}

func TestValuesRetainCrossCategoryHistory(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(airtimeCategory())
	c.SetField("phone", "08012345678")

	c.SelectCategory(cableCategory())
	c.SetField("smartCardNumber", "1234567890")

	// The emitted full value set deliberately retains airtime history.
	values := c.Values()
	if values["phone"] != "08012345678" {
		t.Error("Full value set should retain stale keys for draft restoration")
	}
	if values["smartCardNumber"] != "1234567890" {
		t.Error("Full value set should carry active category values")
	}
}

func TestResetClearsOnlyActiveCategory(t *testing.T) {
	c := newTestController(t)

	c.SelectCategory(airtimeCategory())
	c.SetField("phone", "08012345678")
	c.SaveDraft()

	c.SelectCategory(cableCategory())
	c.SetField("smartCardNumber", "1234567890")
	c.Reset()

	if got := c.Field("smartCardNumber"); got != "" {
		t.Errorf("Reset should clear the active category's fields, got %q", got)
	}

	c.SelectCategory(airtimeCategory())
	if got := c.Field("phone"); got != "08012345678" {
		t.Errorf("Reset must not touch other categories' drafts, got %q", got)
	}
}

func TestHelperCategoryTraits(t *testing.T) {
	if !HasProducts(schema.CategoryData) || HasProducts(schema.CategoryAirtime) {
		t.Error("Unexpected product trait mapping")
	}
	if !HasAmountField(schema.CategoryAirtime) || HasAmountField(schema.CategoryData) {
		t.Error("Unexpected amount trait mapping")
	}
	if ProviderFieldKey(schema.CategoryOthers) != "serviceType" {
		t.Error("Others category should use serviceType as its operator key")
	}
}
