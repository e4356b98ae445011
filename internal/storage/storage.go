package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"adaeze/payTerm/internal/drafts"
	"adaeze/payTerm/internal/models"
	"adaeze/payTerm/internal/schema"
)

const (
	appDir            = ".payterm"
	draftsFile        = "drafts.json"
	beneficiariesFile = "beneficiaries.json"
	recentsFile       = "recent_purchases.json"
	profileFile       = "profile.json"
)

type Storage struct {
	dataDir string
}

// SealedProfile wraps the API credentials at rest. Only the ciphertext
// carries the token; name and environment stay readable for listing.
type SealedProfile struct {
	Name        string      `json:"name"`
	Environment string      `json:"environment"`
	Data        *SealedData `json:"data"`
}

// Profile holds the credentials a sealed profile decrypts to.
type Profile struct {
	Name        string `json:"name"`
	APIToken    string `json:"api_token"`
	Environment string `json:"environment"`
}

func NewStorage() (*Storage, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewStorageAt(filepath.Join(homeDir, appDir))
}

// NewStorageAt uses an explicit data directory instead of the default
// under the user's home.
func NewStorageAt(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) SaveDrafts(entries map[schema.CategoryCode]drafts.FormValues) error {
	return s.writeJSON(draftsFile, entries)
}

func (s *Storage) LoadDrafts() (map[schema.CategoryCode]drafts.FormValues, error) {
	entries := make(map[schema.CategoryCode]drafts.FormValues)
	if err := s.readJSON(draftsFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Storage) SaveBeneficiaries(list *models.BeneficiaryList) error {
	return s.writeJSON(beneficiariesFile, list)
}

func (s *Storage) LoadBeneficiaries() (*models.BeneficiaryList, error) {
	list := &models.BeneficiaryList{Beneficiaries: []models.Beneficiary{}}
	if err := s.readJSON(beneficiariesFile, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Storage) SaveRecentPurchases(purchases []models.RecentPurchase) error {
	return s.writeJSON(recentsFile, purchases)
}

func (s *Storage) LoadRecentPurchases() ([]models.RecentPurchase, error) {
	purchases := []models.RecentPurchase{}
	if err := s.readJSON(recentsFile, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// SaveProfile seals the API token under the passphrase before writing.
func (s *Storage) SaveProfile(profile *Profile, passphrase string) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	sealed, err := Seal(payload, passphrase)
	if err != nil {
		return fmt.Errorf("failed to seal profile: %w", err)
	}

	return s.writeJSON(profileFile, &SealedProfile{
		Name:        profile.Name,
		Environment: profile.Environment,
		Data:        sealed,
	})
}

func (s *Storage) LoadProfile(passphrase string) (*Profile, error) {
	var sealed SealedProfile
	if err := s.readJSON(profileFile, &sealed); err != nil {
		return nil, err
	}
	if sealed.Data == nil {
		return nil, fmt.Errorf("no profile saved")
	}

	payload, err := Open(sealed.Data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal profile: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

func (s *Storage) HasProfile() bool {
	_, err := os.Stat(filepath.Join(s.dataDir, profileFile))
	return err == nil
}

func (s *Storage) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	filePath := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

// readJSON leaves v untouched when the file does not exist yet.
func (s *Storage) readJSON(name string, v interface{}) error {
	filePath := filepath.Join(s.dataDir, name)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}

	return nil
}
