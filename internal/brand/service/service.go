package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"brandgate/internal/brand/models"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/sentinel"
	"brandgate/pkg/requestcontext"
)

// Store is the brand persistence contract.
type Store interface {
	CreateIfNameAvailable(ctx context.Context, b *models.Brand) error
	FindByID(ctx context.Context, brandID id.BrandID) (*models.Brand, error)
	Exists(ctx context.Context, brandID id.BrandID) (bool, error)
	List(ctx context.Context) ([]*models.Brand, error)
	Execute(ctx context.Context, brandID id.BrandID, validate func(*models.Brand) error, mutate func(*models.Brand)) (*models.Brand, error)
}

// Service owns brand lifecycle. Reads are public; writes require an admin and
// a patch may only ever touch the brand the admin's token is bound to.
type Service struct {
	brands Store
	logger *slog.Logger
}

func New(brands Store, logger *slog.Logger) *Service {
	return &Service{brands: brands, logger: logger}
}

func wrapBrandErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "brand not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "brand name is already taken")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "brand store failure")
	}
}

// List returns all brands. Public.
func (s *Service) List(ctx context.Context) ([]*models.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, wrapBrandErr(err)
	}
	return brands, nil
}

// Get returns one brand by id. Public.
func (s *Service) Get(ctx context.Context, brandID id.BrandID) (*models.Brand, error) {
	b, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return nil, wrapBrandErr(err)
	}
	return b, nil
}

// Exists reports whether a brand id resolves. Used by registration flows.
func (s *Service) Exists(ctx context.Context, brandID id.BrandID) (bool, error) {
	return s.brands.Exists(ctx, brandID)
}

// CreateParams carries brand creation input.
type CreateParams struct {
	Name           string
	Domain         string
	Tagline        string
	LogoURL        string
	HeroImageURL   string
	HeroVideoURL   string
	Location       string
	ServiceTimes   string
	PrimaryColor   string
	SecondaryColor string
	WhatsappNumber string
}

// Create provisions a new brand. Caller must already be authenticated as an
// admin; the handler enforces that.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Brand, error) {
	now := requestcontext.Now(ctx)
	b := &models.Brand{
		ID:             id.NewBrandID(),
		Name:           strings.TrimSpace(p.Name),
		Domain:         p.Domain,
		Tagline:        p.Tagline,
		LogoURL:        p.LogoURL,
		HeroImageURL:   p.HeroImageURL,
		HeroVideoURL:   p.HeroVideoURL,
		Location:       p.Location,
		ServiceTimes:   p.ServiceTimes,
		PrimaryColor:   p.PrimaryColor,
		SecondaryColor: p.SecondaryColor,
		WhatsappNumber: p.WhatsappNumber,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.brands.CreateIfNameAvailable(ctx, b); err != nil {
		return nil, wrapBrandErr(err)
	}
	return b, nil
}

// Patch merges the supplied fields into the caller's own brand. The target
// brand always comes from the token; a mismatching path id is answered with
// the same not-found as a missing record.
func (s *Service) Patch(ctx context.Context, brandID id.BrandID, patch *models.Patch) (*models.Brand, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsAdmin() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if principal.BrandID != brandID {
		return nil, dErrors.New(dErrors.CodeNotFound, "brand not found")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.brands.Execute(ctx, brandID,
		func(b *models.Brand) error { return nil },
		func(b *models.Brand) { patch.Apply(b, now) },
	)
	if err != nil {
		return nil, wrapBrandErr(err)
	}
	return updated, nil
}
