package admin

import (
	"context"
	"strings"
	"sync"

	"brandgate/internal/identity/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

// InMemory stores admins keyed by id with a lowercase email index. Admin
// emails are unique across all brands.
type InMemory struct {
	mu      sync.RWMutex
	admins  map[id.AdminID]*models.Admin
	byEmail map[string]id.AdminID
}

func NewInMemory() *InMemory {
	return &InMemory{
		admins:  make(map[id.AdminID]*models.Admin),
		byEmail: make(map[string]id.AdminID),
	}
}

func (s *InMemory) Create(_ context.Context, a *models.Admin) error {
	key := strings.ToLower(a.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrAlreadyUsed
	}
	copied := *a
	s.admins[a.ID] = &copied
	s.byEmail[key] = a.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, adminID id.AdminID) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.admins[adminID]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if adminID, ok := s.byEmail[strings.ToLower(email)]; ok {
		copied := *s.admins[adminID]
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}
