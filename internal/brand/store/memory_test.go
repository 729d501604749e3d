package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"brandgate/internal/brand/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/platform/sentinel"
)

type BrandStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *BrandStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestBrandStoreSuite(t *testing.T) {
	suite.Run(t, new(BrandStoreSuite))
}

func (s *BrandStoreSuite) newBrand(name string) *models.Brand {
	return &models.Brand{
		ID:        id.NewBrandID(),
		Name:      name,
		CreatedAt: time.Now(),
	}
}

func (s *BrandStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds brand by ID", func() {
		brand := s.newBrand("North Ridge")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, brand))

		found, err := s.store.FindByID(s.ctx, brand.ID)
		s.Require().NoError(err)
		s.Equal(brand.Name, found.Name)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewBrandID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("Exists reports presence", func() {
		brand := s.newBrand("Presence")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, brand))

		ok, err := s.store.Exists(s.ctx, brand.ID)
		s.Require().NoError(err)
		s.True(ok)

		ok, err = s.store.Exists(s.ctx, id.NewBrandID())
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *BrandStoreSuite) TestNameUniqueness() {
	s.Run("rejects duplicate name", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newBrand("Duplicate")))

		err := s.store.CreateIfNameAvailable(s.ctx, s.newBrand("Duplicate"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("enforces case-insensitive uniqueness", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newBrand("MyBrand")))

		err := s.store.CreateIfNameAvailable(s.ctx, s.newBrand("MYBRAND"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})
}

func (s *BrandStoreSuite) TestList() {
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newBrand("bravo")))
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newBrand("Alpha")))

	brands, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(brands, 2)
	s.Equal("Alpha", brands[0].Name)
	s.Equal("bravo", brands[1].Name)
}

func (s *BrandStoreSuite) TestExecute() {
	s.Run("applies mutation atomically and returns a copy", func() {
		brand := s.newBrand("Execute Test")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, brand))

		updated, err := s.store.Execute(s.ctx, brand.ID,
			func(b *models.Brand) error { return nil },
			func(b *models.Brand) { b.Tagline = "new tagline" },
		)
		s.Require().NoError(err)
		s.Equal("new tagline", updated.Tagline)

		found, err := s.store.FindByID(s.ctx, brand.ID)
		s.Require().NoError(err)
		s.Equal("new tagline", found.Tagline)
	})

	s.Run("validation failure leaves record untouched", func() {
		brand := s.newBrand("Untouched")
		brand.Tagline = "original"
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, brand))

		_, err := s.store.Execute(s.ctx, brand.ID,
			func(b *models.Brand) error { return sentinel.ErrInvalidState },
			func(b *models.Brand) { b.Tagline = "should not land" },
		)
		s.Require().ErrorIs(err, sentinel.ErrInvalidState)

		found, err := s.store.FindByID(s.ctx, brand.ID)
		s.Require().NoError(err)
		s.Equal("original", found.Tagline)
	})

	s.Run("unknown ID", func() {
		_, err := s.store.Execute(s.ctx, id.NewBrandID(),
			func(b *models.Brand) error { return nil },
			func(b *models.Brand) {},
		)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rename onto an existing name rolls back", func() {
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, s.newBrand("Taken")))
		brand := s.newBrand("Renamer")
		s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, brand))

		_, err := s.store.Execute(s.ctx, brand.ID,
			func(b *models.Brand) error { return nil },
			func(b *models.Brand) { b.Name = "taken" },
		)
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)

		found, err := s.store.FindByID(s.ctx, brand.ID)
		s.Require().NoError(err)
		s.Equal("Renamer", found.Name)
	})
}

func (s *BrandStoreSuite) TestCopyOutSemantics() {
	brand := s.newBrand("Aliasing")
	s.Require().NoError(s.store.CreateIfNameAvailable(s.ctx, brand))

	found, err := s.store.FindByID(s.ctx, brand.ID)
	s.Require().NoError(err)
	found.Tagline = "mutated by caller"

	again, err := s.store.FindByID(s.ctx, brand.ID)
	s.Require().NoError(err)
	s.Empty(again.Tagline)
}
