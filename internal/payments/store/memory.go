package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"brandgate/internal/payments/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

// InMemory keeps transactions under one mutex; SettlePaid holds it across
// the apply callback so concurrent polls of the same session serialize.
type InMemory struct {
	mu        sync.RWMutex
	bySession map[string]*models.Transaction
}

var _ TransactionStore = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{bySession: make(map[string]*models.Transaction)}
}

func (s *InMemory) Create(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySession[t.SessionID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.bySession[t.SessionID] = t.Clone()
	return nil
}

func (s *InMemory) FindBySession(_ context.Context, sessionID string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.bySession[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *InMemory) ListByMember(_ context.Context, brandID id.BrandID, memberID id.MemberID) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Transaction, 0)
	for _, t := range s.bySession {
		if t.BrandID == brandID && t.MemberID != nil && *t.MemberID == memberID {
			out = append(out, t.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) ListByBrand(_ context.Context, brandID id.BrandID) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Transaction, 0)
	for _, t := range s.bySession {
		if t.BrandID == brandID {
			out = append(out, t.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) ListPendingSessions(_ context.Context, createdBefore time.Time, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := make([]*models.Transaction, 0)
	for _, t := range s.bySession {
		if t.Status == models.StatusPending && t.CreatedAt.Before(createdBefore) {
			pending = append(pending, t)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	out := make([]string, 0, len(pending))
	for _, t := range pending {
		out = append(out, t.SessionID)
	}
	return out, nil
}

func (s *InMemory) SettlePaid(ctx context.Context, sessionID string, now time.Time, apply func(context.Context, *models.Transaction) error) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.bySession[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if t.Status == models.StatusPaid {
		return t.Clone(), nil
	}
	if err := t.CanTransition(models.StatusPaid); err != nil {
		return nil, err
	}

	if err := apply(ctx, t.Clone()); err != nil {
		return nil, err
	}
	t.Status = models.StatusPaid
	t.Settled = true
	t.UpdatedAt = now
	return t.Clone(), nil
}

func (s *InMemory) Transition(_ context.Context, sessionID string, to models.Status, now time.Time) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.bySession[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if t.Status == to {
		return t.Clone(), nil
	}
	if err := t.CanTransition(to); err != nil {
		return nil, err
	}
	t.Status = to
	t.UpdatedAt = now
	return t.Clone(), nil
}

func sortNewestFirst(out []*models.Transaction) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
