package autosave

import (
	"maps"
	"sync"

	"github.com/fairyhunter13/food-waste-inventory-service/internal/model"
)

// Store holds the latest draft per form. Drafts carry partial field sets:
// a newer draft overwrites the fields it names and keeps the rest.
type Store struct {
	mu sync.RWMutex
	m  map[string]model.Draft
}

func NewStore() *Store {
	return &Store{m: make(map[string]model.Draft)}
}

// Get returns a copy of the saved draft for formID.
func (s *Store) Get(formID string) (model.Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.m[formID]
	if !ok {
		return model.Draft{}, false
	}
	d.Fields = maps.Clone(d.Fields)
	return d, true
}

// Apply merges d into the stored draft. Drafts with a sequence not newer
// than the stored one are ignored. Reports whether d was applied.
func (s *Store) Apply(d model.Draft) bool {
	if d.FormID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[d.FormID]
	if ok {
		if d.Sequence <= cur.Sequence {
			return false
		}
		maps.Copy(cur.Fields, d.Fields)
		cur.Sequence = d.Sequence
		cur.SavedAt = d.SavedAt
		s.m[d.FormID] = cur
		return true
	}
	fields := make(map[string]any, len(d.Fields))
	maps.Copy(fields, d.Fields)
	d.Fields = fields
	s.m[d.FormID] = d
	return true
}

// Len returns the number of forms with a saved draft.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
