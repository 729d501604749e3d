// Package tenantstore provides a concurrency-safe in-memory document store
// for brand-scoped resources. Each feature instantiates it with its own
// entity type; writes serialize under a single RWMutex so the Execute
// callback gives read-validate-mutate atomicity.
package tenantstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

// Resource is implemented by every entity kept in a Memory store. Key is the
// entity's own uuid, Brand the owning tenant, Clone a deep copy so callers
// never alias live store state.
type Resource[T any] interface {
	Key() uuid.UUID
	Brand() id.BrandID
	Clone() T
}

// Memory holds one entity kind for all brands.
type Memory[T Resource[T]] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
}

func NewMemory[T Resource[T]]() *Memory[T] {
	return &Memory[T]{items: make(map[uuid.UUID]T)}
}

// Create inserts a new resource. Duplicate keys are rejected.
func (s *Memory[T]) Create(_ context.Context, resource T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[resource.Key()]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.items[resource.Key()] = resource.Clone()
	return nil
}

// Find returns the resource regardless of brand. Used by public reads where
// the record itself is the visibility boundary.
func (s *Memory[T]) Find(_ context.Context, key uuid.UUID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[key]
	if !ok {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return item.Clone(), nil
}

// FindScoped returns the resource only when it belongs to brandID. A record
// under another brand is indistinguishable from a missing one.
func (s *Memory[T]) FindScoped(_ context.Context, brandID id.BrandID, key uuid.UUID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[key]
	if !ok || item.Brand() != brandID {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return item.Clone(), nil
}

// ListByBrand returns every resource of one brand, optionally filtered. The
// result is ordered by key for determinism; services re-sort by their own
// criteria.
func (s *Memory[T]) ListByBrand(_ context.Context, brandID id.BrandID, keep func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, item := range s.items {
		if item.Brand() != brandID {
			continue
		}
		if keep != nil && !keep(item) {
			continue
		}
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key().String() < out[j].Key().String()
	})
	return out, nil
}

// Execute runs validate then mutate on the live record while holding the
// write lock. The brand check happens inside the critical section, before
// validate, so a cross-tenant caller can never observe or touch the record.
func (s *Memory[T]) Execute(_ context.Context, brandID id.BrandID, key uuid.UUID, validate func(T) error, mutate func(T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	item, ok := s.items[key]
	if !ok || item.Brand() != brandID {
		return zero, sentinel.ErrNotFound
	}
	if err := validate(item); err != nil {
		return zero, err
	}
	mutate(item)
	return item.Clone(), nil
}

// Delete removes the resource when it belongs to brandID.
func (s *Memory[T]) Delete(_ context.Context, brandID id.BrandID, key uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok || item.Brand() != brandID {
		return sentinel.ErrNotFound
	}
	delete(s.items, key)
	return nil
}
