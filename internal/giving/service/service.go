// Package service implements giving: fundraising foundations with an exact
// donation ledger, and brand-scoped giving categories. Foundation reads are
// public; writes are admin-only and scoped to the brand in the caller's
// token. Donations settle synchronously and atomically, so a foundation's
// raised amount is always the exact sum of its settled donations.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandgate/internal/audit"
	"brandgate/internal/giving/metrics"
	"brandgate/internal/giving/models"
	"brandgate/internal/giving/store"
	"brandgate/internal/platform/tenantstore"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/sentinel"
	"brandgate/pkg/requestcontext"
)

type Service struct {
	foundations store.FoundationStore
	categories  *tenantstore.Memory[*models.GivingCategory]
	logger      *slog.Logger
	metrics     *metrics.Metrics
	auditor     *audit.Publisher
}

func New(foundations store.FoundationStore, logger *slog.Logger, m *metrics.Metrics, auditor *audit.Publisher) *Service {
	return &Service{
		foundations: foundations,
		categories:  tenantstore.NewMemory[*models.GivingCategory](),
		logger:      logger,
		metrics:     m,
		auditor:     auditor,
	}
}

func adminBrand(ctx context.Context) (id.BrandID, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsAdmin() {
		return id.BrandID{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return principal.BrandID, nil
}

func wrapGivingErr(err error, noun string) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Newf(dErrors.CodeNotFound, "%s not found", noun)
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.Newf(dErrors.CodeConflict, "%s already exists", noun)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "giving store failure")
	}
}

// CreateFoundationParams carries admin foundation creation input.
type CreateFoundationParams struct {
	Title         string
	Description   string
	ImageURL      string
	GalleryImages []string
	GoalAmount    money.Amount
	IsActive      bool
}

func (s *Service) CreateFoundation(ctx context.Context, p CreateFoundationParams) (*models.Foundation, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	f := &models.Foundation{
		ID:            id.NewFoundationID(),
		BrandID:       brandID,
		Title:         strings.TrimSpace(p.Title),
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		GalleryImages: p.GalleryImages,
		GoalAmount:    p.GoalAmount,
		RaisedAmount:  money.Zero,
		IsActive:      p.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.foundations.CreateFoundation(ctx, f); err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}
	return f, nil
}

// ListFoundations returns one brand's foundations, newest first. Public.
func (s *Service) ListFoundations(ctx context.Context, brandID id.BrandID) ([]*models.Foundation, error) {
	items, err := s.foundations.ListFoundations(ctx, brandID)
	if err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}
	return items, nil
}

// GetFoundation is a public, unscoped read for campaign pages.
func (s *Service) GetFoundation(ctx context.Context, foundationID id.FoundationID) (*models.Foundation, error) {
	f, err := s.foundations.FindFoundation(ctx, foundationID)
	if err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}
	return f, nil
}

// PatchFoundation merges the supplied fields into a foundation of the
// caller's brand. The raised amount is never patchable.
func (s *Service) PatchFoundation(ctx context.Context, foundationID id.FoundationID, patch *models.FoundationPatch) (*models.Foundation, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.foundations.ExecuteFoundation(ctx, brandID, foundationID,
		func(*models.Foundation) error { return nil },
		func(f *models.Foundation) { patch.Apply(f, now) },
	)
	if err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}
	return updated, nil
}

// DeleteFoundation removes a foundation of the caller's brand.
func (s *Service) DeleteFoundation(ctx context.Context, foundationID id.FoundationID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.foundations.DeleteFoundation(ctx, brandID, foundationID); err != nil {
		return wrapGivingErr(err, "foundation")
	}
	return nil
}

// DonateParams carries one public donation.
type DonateParams struct {
	FoundationID id.FoundationID
	DonorName    string
	DonorEmail   string
	Amount       money.Amount
	Message      string
}

// Donate settles a direct donation against an active foundation. The
// donation inherits the foundation's brand; the ledger entry and the raised
// amount move together.
func (s *Service) Donate(ctx context.Context, p DonateParams) (*models.Donation, error) {
	f, err := s.foundations.FindFoundation(ctx, p.FoundationID)
	if err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}
	if err := f.CanAcceptDonation(); err != nil {
		return nil, err
	}

	d := &models.Donation{
		ID:           id.NewDonationID(),
		BrandID:      f.BrandID,
		FoundationID: &f.ID,
		DonorName:    strings.TrimSpace(p.DonorName),
		DonorEmail:   strings.ToLower(strings.TrimSpace(p.DonorEmail)),
		Amount:       p.Amount,
		Message:      p.Message,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.foundations.SettleDonation(ctx, d); err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}

	s.metrics.ObserveSettlement(d.Amount.Float64())
	s.logger.InfoContext(ctx, "donation settled",
		slog.String("donation_id", d.ID.String()),
		slog.String("foundation_id", f.ID.String()),
		slog.String("amount", d.Amount.String()),
	)
	if err := s.auditor.Emit(ctx, audit.Event{
		Action:  audit.ActionDonationRecorded,
		BrandID: d.BrandID,
		Metadata: map[string]string{
			"donation_id":   d.ID.String(),
			"foundation_id": f.ID.String(),
			"amount":        d.Amount.String(),
		},
		Timestamp: d.CreatedAt,
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err.Error())
	}
	return d, nil
}

// SettlementParams carries a settlement originating from a paid checkout.
type SettlementParams struct {
	BrandID      id.BrandID
	FoundationID id.FoundationID
	DonorName    string
	DonorEmail   string
	Amount       money.Amount
	Message      string
	SettledAt    time.Time
}

// ApplySettlement records a donation for money that has already been
// collected by the payment processor. Unlike Donate it does not require the
// foundation to still be active; the funds exist either way.
func (s *Service) ApplySettlement(ctx context.Context, p SettlementParams) (*models.Donation, error) {
	d := &models.Donation{
		ID:           id.NewDonationID(),
		BrandID:      p.BrandID,
		FoundationID: &p.FoundationID,
		DonorName:    strings.TrimSpace(p.DonorName),
		DonorEmail:   strings.ToLower(strings.TrimSpace(p.DonorEmail)),
		Amount:       p.Amount,
		Message:      p.Message,
		CreatedAt:    p.SettledAt,
	}
	if d.DonorName == "" {
		d.DonorName = "Anonymous"
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.foundations.SettleDonation(ctx, d); err != nil {
		return nil, wrapGivingErr(err, "foundation")
	}

	s.metrics.ObserveSettlement(d.Amount.Float64())
	if err := s.auditor.Emit(ctx, audit.Event{
		Action:  audit.ActionSettlementApplied,
		BrandID: d.BrandID,
		Metadata: map[string]string{
			"donation_id":   d.ID.String(),
			"foundation_id": p.FoundationID.String(),
			"amount":        d.Amount.String(),
		},
		Timestamp: d.CreatedAt,
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err.Error())
	}
	return d, nil
}

// ListDonations returns the caller's brand ledger, newest first. Admin only.
func (s *Service) ListDonations(ctx context.Context, foundationID *id.FoundationID) ([]*models.Donation, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.foundations.ListDonations(ctx, brandID, foundationID)
	if err != nil {
		return nil, wrapGivingErr(err, "donation")
	}
	return items, nil
}

// CreateCategoryParams carries admin giving category creation input.
type CreateCategoryParams struct {
	Name        string
	Description string
	IsActive    bool
}

func (s *Service) CreateCategory(ctx context.Context, p CreateCategoryParams) (*models.GivingCategory, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	c := &models.GivingCategory{
		ID:          id.NewCategoryID(),
		BrandID:     brandID,
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, wrapGivingErr(err, "category")
	}
	return c, nil
}

// ListCategories returns one brand's active giving categories sorted by
// name. Public.
func (s *Service) ListCategories(ctx context.Context, brandID id.BrandID) ([]*models.GivingCategory, error) {
	items, err := s.categories.ListByBrand(ctx, brandID, func(c *models.GivingCategory) bool {
		return c.IsActive
	})
	if err != nil {
		return nil, wrapGivingErr(err, "category")
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

// PatchCategory merges the supplied fields into a category of the caller's
// brand.
func (s *Service) PatchCategory(ctx context.Context, categoryID id.CategoryID, patch *models.GivingCategoryPatch) (*models.GivingCategory, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.categories.Execute(ctx, brandID, uuid.UUID(categoryID),
		func(c *models.GivingCategory) error { return nil },
		func(c *models.GivingCategory) { patch.Apply(c, now) },
	)
	if err != nil {
		return nil, wrapGivingErr(err, "category")
	}
	return updated, nil
}

// DeleteCategory removes a category of the caller's brand.
func (s *Service) DeleteCategory(ctx context.Context, categoryID id.CategoryID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, brandID, uuid.UUID(categoryID)); err != nil {
		return wrapGivingErr(err, "category")
	}
	return nil
}
