package drafts

import (
	"testing"

	"adaeze/payTerm/internal/schema"
)

func TestRestoreWithoutSaveReturnsDefault(t *testing.T) {
	store := NewStore()

	values := store.Restore(schema.CategoryAirtime)
	if values == nil {
		t.Fatal("Expected default values, got nil")
	}
	if len(values) != 0 {
		t.Errorf("Expected empty default, got %d entries", len(values))
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	store := NewStore()

	saved := FormValues{"provider": "mtn", "phone": "08012345678", "amount": "500"}
	store.Save(schema.CategoryAirtime, saved)

	restored := store.Restore(schema.CategoryAirtime)
	if len(restored) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(restored))
	}
	for key, want := range saved {
		if restored[key] != want {
			t.Errorf("Key %s: expected %q, got %q", key, want, restored[key])
		}
	}
}

func TestEntriesAreIndependentAcrossCategories(t *testing.T) {
	store := NewStore()

	store.Save(schema.CategoryAirtime, FormValues{"phone": "08012345678"})
	store.Save(schema.CategoryCable, FormValues{"smartCardNumber": "1234567890"})

	airtime := store.Restore(schema.CategoryAirtime)
	if airtime["smartCardNumber"] != "" {
		t.Error("Airtime draft must never contain cable values")
	}
	if airtime["phone"] != "08012345678" {
		t.Errorf("Expected airtime phone preserved, got %q", airtime["phone"])
	}

	cable := store.Restore(schema.CategoryCable)
	if cable["phone"] != "" {
		t.Error("Cable draft must never contain airtime values")
	}
}

func TestSaveSnapshotsValues(t *testing.T) {
	store := NewStore()

	values := FormValues{"phone": "08012345678"}
	store.Save(schema.CategoryAirtime, values)

	// Mutating the caller's map after Save must not leak into the store.
	values["phone"] = "08099999999"

	restored := store.Restore(schema.CategoryAirtime)
	if restored["phone"] != "08012345678" {
		t.Errorf("Expected snapshot isolation, got %q", restored["phone"])
	}
}

func TestRestoreReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Save(schema.CategoryAirtime, FormValues{"phone": "08012345678"})

	first := store.Restore(schema.CategoryAirtime)
	first["phone"] = "mutated"

	second := store.Restore(schema.CategoryAirtime)
	if second["phone"] != "08012345678" {
		t.Error("Restore should return copies, not shared maps")
	}
}

func TestClearOnlyAffectsNamedCategory(t *testing.T) {
	store := NewStore()

	store.Save(schema.CategoryAirtime, FormValues{"phone": "08012345678"})
	store.Save(schema.CategoryData, FormValues{"phone": "08055555555"})

	store.Clear(schema.CategoryAirtime)

	if store.Has(schema.CategoryAirtime) {
		t.Error("Cleared category should have no draft")
	}
	if len(store.Restore(schema.CategoryAirtime)) != 0 {
		t.Error("Cleared category should restore to default")
	}

	data := store.Restore(schema.CategoryData)
	if data["phone"] != "08055555555" {
		t.Error("Clear must not affect other categories")
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := NewStore()

	store.Save(schema.CategoryAirtime, FormValues{"amount": "100"})
	store.Save(schema.CategoryAirtime, FormValues{"amount": "900"})

	if got := store.Restore(schema.CategoryAirtime)["amount"]; got != "900" {
		t.Errorf("Expected latest save to win, got %q", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store := NewStore()
	store.Save(schema.CategoryAirtime, FormValues{"phone": "08012345678"})
	store.Save(schema.CategoryCable, FormValues{"smartCardNumber": "1234567890"})
	store.Clear(schema.CategoryCable)

	exported := store.Export()
	if _, ok := exported[schema.CategoryCable]; ok {
		t.Error("Cleared entries should not be exported")
	}

	fresh := NewStore()
	fresh.Import(exported)

	if got := fresh.Restore(schema.CategoryAirtime)["phone"]; got != "08012345678" {
		t.Errorf("Expected imported draft to restore, got %q", got)
	}
}
