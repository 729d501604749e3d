package store

import (
	"context"
	"sort"
	"sync"

	"brandgate/internal/giving/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

// InMemory keeps foundations and donations under one mutex so settlement is
// a single critical section.
type InMemory struct {
	mu          sync.RWMutex
	foundations map[id.FoundationID]*models.Foundation
	donations   []*models.Donation
}

var _ FoundationStore = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{
		foundations: make(map[id.FoundationID]*models.Foundation),
	}
}

func (s *InMemory) CreateFoundation(_ context.Context, f *models.Foundation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.foundations[f.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.foundations[f.ID] = f.Clone()
	return nil
}

func (s *InMemory) FindFoundation(_ context.Context, foundationID id.FoundationID) (*models.Foundation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.foundations[foundationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return f.Clone(), nil
}

func (s *InMemory) ListFoundations(_ context.Context, brandID id.BrandID) ([]*models.Foundation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Foundation, 0)
	for _, f := range s.foundations {
		if f.BrandID == brandID {
			out = append(out, f.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) ExecuteFoundation(_ context.Context, brandID id.BrandID, foundationID id.FoundationID,
	validate func(*models.Foundation) error, mutate func(*models.Foundation)) (*models.Foundation, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.foundations[foundationID]
	if !ok || f.BrandID != brandID {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	mutate(f)
	return f.Clone(), nil
}

func (s *InMemory) DeleteFoundation(_ context.Context, brandID id.BrandID, foundationID id.FoundationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.foundations[foundationID]
	if !ok || f.BrandID != brandID {
		return sentinel.ErrNotFound
	}
	delete(s.foundations, foundationID)
	return nil
}

func (s *InMemory) SettleDonation(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.FoundationID != nil {
		f, ok := s.foundations[*d.FoundationID]
		if !ok || f.BrandID != d.BrandID {
			return sentinel.ErrNotFound
		}
		f.RaisedAmount = f.RaisedAmount.Add(d.Amount)
		f.UpdatedAt = d.CreatedAt
	}

	cp := *d
	s.donations = append(s.donations, &cp)
	return nil
}

func (s *InMemory) ListDonations(_ context.Context, brandID id.BrandID, foundationID *id.FoundationID) ([]*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Donation, 0)
	for _, d := range s.donations {
		if d.BrandID != brandID {
			continue
		}
		if foundationID != nil && (d.FoundationID == nil || *d.FoundationID != *foundationID) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
