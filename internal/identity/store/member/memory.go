package member

import (
	"context"
	"strings"
	"sync"

	"brandgate/internal/identity/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

type emailKey struct {
	brandID id.BrandID
	email   string
}

// InMemory stores members keyed by id with a per-brand email index. The
// same email may exist under different brands; uniqueness is scoped to
// (brand, email) and enforced atomically under the store lock.
type InMemory struct {
	mu      sync.RWMutex
	members map[id.MemberID]*models.Member
	byEmail map[emailKey]id.MemberID
}

func NewInMemory() *InMemory {
	return &InMemory{
		members: make(map[id.MemberID]*models.Member),
		byEmail: make(map[emailKey]id.MemberID),
	}
}

func key(brandID id.BrandID, email string) emailKey {
	return emailKey{brandID: brandID, email: strings.ToLower(email)}
}

// CreateIfEmailAvailable inserts the member unless the email is already
// registered under the same brand.
func (s *InMemory) CreateIfEmailAvailable(_ context.Context, m *models.Member) error {
	k := key(m.BrandID, m.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[k]; exists {
		return sentinel.ErrAlreadyUsed
	}
	copied := *m
	s.members[m.ID] = &copied
	s.byEmail[k] = m.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, memberID id.MemberID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.members[memberID]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

// SetActive flips a member's active flag. The member must belong to the
// given brand; a cross-brand id answers not-found, same as a missing one.
func (s *InMemory) SetActive(_ context.Context, brandID id.BrandID, memberID id.MemberID, active bool) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[memberID]
	if !ok || m.BrandID != brandID {
		return nil, sentinel.ErrNotFound
	}
	m.IsActive = active
	copied := *m
	return &copied, nil
}

// FindByEmail resolves a member within one brand; login is always
// brand-scoped because the same email may exist under several brands.
func (s *InMemory) FindByEmail(_ context.Context, brandID id.BrandID, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if memberID, ok := s.byEmail[key(brandID, email)]; ok {
		copied := *s.members[memberID]
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}
