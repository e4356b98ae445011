package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"adaeze/payTerm/internal/schema"
)

// Beneficiary is a saved recipient identifier scoped to a category: a phone
// number for airtime/data, a smart card number for cable, a meter number for
// electricity, and so on.
type Beneficiary struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Identifier string              `json:"identifier"`
	Category   schema.CategoryCode `json:"category"`
	CreatedAt  time.Time           `json:"created_at"`
	LastUsed   time.Time           `json:"last_used"`
	UseCount   int                 `json:"use_count"`
}

func NewBeneficiary(name, identifier string, category schema.CategoryCode) *Beneficiary {
	return &Beneficiary{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Identifier: strings.TrimSpace(identifier),
		Category:   category,
		CreatedAt:  time.Now(),
	}
}

type BeneficiaryList struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

func (l *BeneficiaryList) Add(b *Beneficiary) {
	if b == nil || b.Identifier == "" {
		return
	}

	// Same identifier in the same category updates the saved name instead
	// of creating a duplicate entry.
	for i, existing := range l.Beneficiaries {
		if existing.Category == b.Category && existing.Identifier == b.Identifier {
			if b.Name != "" {
				l.Beneficiaries[i].Name = b.Name
			}
			return
		}
	}

	l.Beneficiaries = append(l.Beneficiaries, *b)
}

func (l *BeneficiaryList) Remove(id string) bool {
	for i, b := range l.Beneficiaries {
		if b.ID == id {
			l.Beneficiaries = append(l.Beneficiaries[:i], l.Beneficiaries[i+1:]...)
			return true
		}
	}
	return false
}

// ForCategory returns the beneficiaries usable in a category, most recently
// used first.
func (l *BeneficiaryList) ForCategory(category schema.CategoryCode) []Beneficiary {
	var out []Beneficiary
	for _, b := range l.Beneficiaries {
		if b.Category == category {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUsed.After(out[j].LastUsed)
	})

	return out
}

func (l *BeneficiaryList) FindByIdentifier(category schema.CategoryCode, identifier string) *Beneficiary {
	for i, b := range l.Beneficiaries {
		if b.Category == category && b.Identifier == identifier {
			return &l.Beneficiaries[i]
		}
	}
	return nil
}

// MarkUsed records a successful purchase against a beneficiary.
func (l *BeneficiaryList) MarkUsed(category schema.CategoryCode, identifier string) {
	for i, b := range l.Beneficiaries {
		if b.Category == category && b.Identifier == identifier {
			l.Beneficiaries[i].LastUsed = time.Now()
			l.Beneficiaries[i].UseCount++
			return
		}
	}
}
