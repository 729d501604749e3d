package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"brandgate/internal/brand/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

// InMemory is a concurrency-safe in-process brand store. Name uniqueness is
// case-insensitive and enforced under the same lock as the insert.
type InMemory struct {
	mu     sync.RWMutex
	brands map[id.BrandID]*models.Brand
	byName map[string]id.BrandID
}

func NewInMemory() *InMemory {
	return &InMemory{
		brands: make(map[id.BrandID]*models.Brand),
		byName: make(map[string]id.BrandID),
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CreateIfNameAvailable inserts the brand unless the name is taken.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, b *models.Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey(b.Name)
	if _, taken := s.byName[key]; taken {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.brands[b.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}

	cp := *b
	s.brands[b.ID] = &cp
	s.byName[key] = b.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, brandID id.BrandID) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.brands[brandID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *InMemory) Exists(_ context.Context, brandID id.BrandID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.brands[brandID]
	return ok, nil
}

// List returns all brands ordered by name.
func (s *InMemory) List(_ context.Context) ([]*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return nameKey(out[i].Name) < nameKey(out[j].Name) })
	return out, nil
}

// Execute runs validate then mutate against the live record while holding the
// write lock, so concurrent patches serialize and each sees the latest state.
// The returned brand is a copy taken after mutation.
func (s *InMemory) Execute(_ context.Context, brandID id.BrandID, validate func(*models.Brand) error, mutate func(*models.Brand)) (*models.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.brands[brandID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(b); err != nil {
		return nil, err
	}

	snapshot := *b
	oldKey := nameKey(b.Name)
	mutate(b)
	newKey := nameKey(b.Name)
	if newKey != oldKey {
		if other, taken := s.byName[newKey]; taken && other != brandID {
			// Rename collided with another brand; roll the record back and
			// refuse so the store never holds two brands under one name.
			*b = snapshot
			return nil, sentinel.ErrAlreadyUsed
		}
		delete(s.byName, oldKey)
		s.byName[newKey] = brandID
	}

	cp := *b
	return &cp, nil
}
