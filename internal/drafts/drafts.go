// Package drafts keeps per-category, unsubmitted form values so that
// switching away from a category and back restores what the user had typed.
package drafts

import (
	"sync"

	"adaeze/payTerm/internal/schema"
)

// FormValues is the open field-key to value mapping a category form edits.
// The legal key set and its validation rules depend entirely on the category
// that produced the values.
type FormValues map[string]string

// DefaultValues returns the category-agnostic empty value set.
func DefaultValues() FormValues {
	return make(FormValues)
}

func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// Store holds one draft entry per category. Entries are independent: writing
// one category never mutates another, and Clear nils only the named category.
type Store struct {
	entries map[schema.CategoryCode]FormValues
	mu      sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		entries: make(map[schema.CategoryCode]FormValues),
	}
}

// Save unconditionally overwrites the cached entry for the category with a
// snapshot of values. Callers must Save the outgoing category before they
// Restore the incoming one on a category switch.
func (s *Store) Save(code schema.CategoryCode, values FormValues) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[code] = values.Clone()
}

// Restore returns the cached entry for the category, or the default empty
// value set when none exists.
func (s *Store) Restore(code schema.CategoryCode) FormValues {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[code]
	if !exists || entry == nil {
		return DefaultValues()
	}

	return entry.Clone()
}

// Clear sets the category's entry to nil. Other categories are untouched.
func (s *Store) Clear(code schema.CategoryCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[code] = nil
}

// Has reports whether a non-empty draft exists for the category.
func (s *Store) Has(code schema.CategoryCode) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[code]
	return exists && len(entry) > 0
}

// Export returns a snapshot of all non-nil entries, for persistence.
func (s *Store) Export() map[schema.CategoryCode]FormValues {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[schema.CategoryCode]FormValues, len(s.entries))
	for code, entry := range s.entries {
		if entry != nil {
			out[code] = entry.Clone()
		}
	}
	return out
}

// Import replaces the store contents with the given entries.
func (s *Store) Import(entries map[schema.CategoryCode]FormValues) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[schema.CategoryCode]FormValues, len(entries))
	for code, entry := range entries {
		s.entries[code] = entry.Clone()
	}
}
