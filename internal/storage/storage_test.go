package storage

import (
	"testing"

	"adaeze/payTerm/internal/drafts"
	"adaeze/payTerm/internal/models"
	"adaeze/payTerm/internal/schema"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := NewStorageAt(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return s
}

func TestSealOpenRoundTrip(t *testing.T) {
	sealed, err := Seal([]byte("sk_live_abc123"), "correct horse")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	plaintext, err := Open(sealed, "correct horse")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(plaintext) != "sk_live_abc123" {
		t.Errorf("Round trip mismatch: %q", plaintext)
	}
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "right")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open(sealed, "wrong"); err == nil {
		t.Error("Expected error for wrong passphrase")
	}
	if ValidatePassphrase(sealed, "wrong") {
		t.Error("ValidatePassphrase should reject wrong passphrase")
	}
	if !ValidatePassphrase(sealed, "right") {
		t.Error("ValidatePassphrase should accept correct passphrase")
	}
}

func TestDraftsPersistence(t *testing.T) {
	s := newTestStorage(t)

	entries := map[schema.CategoryCode]drafts.FormValues{
		schema.CategoryAirtime: {"provider": "MTN", "phone": "08012345678"},
		schema.CategoryCable:   {"provider": "DStv", "smartCardNumber": "1234567890"},
	}

	if err := s.SaveDrafts(entries); err != nil {
		t.Fatalf("SaveDrafts failed: %v", err)
	}

	loaded, err := s.LoadDrafts()
	if err != nil {
		t.Fatalf("LoadDrafts failed: %v", err)
	}

	if loaded[schema.CategoryAirtime]["phone"] != "08012345678" {
		t.Errorf("Airtime draft not preserved: %+v", loaded[schema.CategoryAirtime])
	}
	if loaded[schema.CategoryCable]["smartCardNumber"] != "1234567890" {
		t.Errorf("Cable draft not preserved: %+v", loaded[schema.CategoryCable])
	}
}

func TestLoadDraftsMissingFile(t *testing.T) {
	s := newTestStorage(t)

	loaded, err := s.LoadDrafts()
	if err != nil {
		t.Fatalf("LoadDrafts on empty dir failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected no drafts, got %d", len(loaded))
	}
}

func TestBeneficiariesPersistence(t *testing.T) {
	s := newTestStorage(t)

	list := &models.BeneficiaryList{}
	list.Add(models.NewBeneficiary("Mum", "08012345678", schema.CategoryAirtime))

	if err := s.SaveBeneficiaries(list); err != nil {
		t.Fatalf("SaveBeneficiaries failed: %v", err)
	}

	loaded, err := s.LoadBeneficiaries()
	if err != nil {
		t.Fatalf("LoadBeneficiaries failed: %v", err)
	}
	if len(loaded.Beneficiaries) != 1 || loaded.Beneficiaries[0].Name != "Mum" {
		t.Errorf("Unexpected beneficiaries: %+v", loaded.Beneficiaries)
	}
}

func TestRecentPurchasesPersistence(t *testing.T) {
	s := newTestStorage(t)

	manager := models.NewRecentPurchaseManager(10)
	manager.Add(models.RecentPurchase{Reference: "ref-1", Category: schema.CategoryData, Identifier: "08012345678"})

	if err := s.SaveRecentPurchases(manager.Export()); err != nil {
		t.Fatalf("SaveRecentPurchases failed: %v", err)
	}

	loaded, err := s.LoadRecentPurchases()
	if err != nil {
		t.Fatalf("LoadRecentPurchases failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Reference != "ref-1" {
		t.Errorf("Unexpected purchases: %+v", loaded)
	}
}

func TestProfileSealedRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	if s.HasProfile() {
		t.Fatal("Fresh storage should have no profile")
	}

	profile := &Profile{Name: "default", APIToken: "sk_test_xyz", Environment: "sandbox"}
	if err := s.SaveProfile(profile, "pass1234"); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	if !s.HasProfile() {
		t.Error("Expected profile to exist after save")
	}

	loaded, err := s.LoadProfile("pass1234")
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if loaded.APIToken != "sk_test_xyz" || loaded.Environment != "sandbox" {
		t.Errorf("Unexpected profile: %+v", loaded)
	}

	if _, err := s.LoadProfile("wrong"); err == nil {
		t.Error("Expected error for wrong passphrase")
	}
}
