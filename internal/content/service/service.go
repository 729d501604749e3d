// Package service implements brand-scoped content operations: events with
// attendee registration, announcements, ministries, blogs, gallery images,
// countdowns, and live streams. Reads are public and filtered by brand;
// writes are admin-only and always scoped to the brand bound into the
// caller's token.
package service

import (
	"context"
	"errors"
	"log/slog"

	"brandgate/internal/content/models"
	"brandgate/internal/platform/tenantstore"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/sentinel"
	"brandgate/pkg/requestcontext"
)

type Service struct {
	events        *tenantstore.Memory[*models.Event]
	attendees     *tenantstore.Memory[*models.Attendee]
	announcements *tenantstore.Memory[*models.Announcement]
	ministries    *tenantstore.Memory[*models.Ministry]
	blogs         *tenantstore.Memory[*models.Blog]
	gallery       *tenantstore.Memory[*models.GalleryImage]
	countdowns    *tenantstore.Memory[*models.Countdown]
	streams       *tenantstore.Memory[*models.LiveStream]
	logger        *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{
		events:        tenantstore.NewMemory[*models.Event](),
		attendees:     tenantstore.NewMemory[*models.Attendee](),
		announcements: tenantstore.NewMemory[*models.Announcement](),
		ministries:    tenantstore.NewMemory[*models.Ministry](),
		blogs:         tenantstore.NewMemory[*models.Blog](),
		gallery:       tenantstore.NewMemory[*models.GalleryImage](),
		countdowns:    tenantstore.NewMemory[*models.Countdown](),
		streams:       tenantstore.NewMemory[*models.LiveStream](),
		logger:        logger,
	}
}

// adminBrand resolves the caller's brand from the token. Content writes never
// take the brand from the request body.
func adminBrand(ctx context.Context) (id.BrandID, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsAdmin() {
		return id.BrandID{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return principal.BrandID, nil
}

func wrapContentErr(err error, noun string) error {
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
		return dErrors.Wrap(err, dErrors.CodeInternal, "content store failure")
	}
}
