package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"brandgate/internal/content/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/requestcontext"
)

// CreateMinistryParams carries admin ministry creation input.
type CreateMinistryParams struct {
	Title           string
	Description     string
	Leader          string
	ImageURL        string
	MeetingSchedule string
}

func (s *Service) CreateMinistry(ctx context.Context, p CreateMinistryParams) (*models.Ministry, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	m := &models.Ministry{
		ID:              id.NewMinistryID(),
		BrandID:         brandID,
		Title:           strings.TrimSpace(p.Title),
		Description:     p.Description,
		Leader:          p.Leader,
		ImageURL:        p.ImageURL,
		MeetingSchedule: p.MeetingSchedule,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.ministries.Create(ctx, m); err != nil {
		return nil, wrapContentErr(err, "ministry")
	}
	return m, nil
}

// ListMinistries returns one brand's ministries ordered by title. Public.
func (s *Service) ListMinistries(ctx context.Context, brandID id.BrandID) ([]*models.Ministry, error) {
	items, err := s.ministries.ListByBrand(ctx, brandID, nil)
	if err != nil {
		return nil, wrapContentErr(err, "ministry")
	}
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})
	return items, nil
}

// GetMinistry returns one ministry by id. Public.
func (s *Service) GetMinistry(ctx context.Context, ministryID id.MinistryID) (*models.Ministry, error) {
	m, err := s.ministries.Find(ctx, uuid.UUID(ministryID))
	if err != nil {
		return nil, wrapContentErr(err, "ministry")
	}
	return m, nil
}

// PatchMinistry merges the supplied fields into a ministry of the caller's
// brand.
func (s *Service) PatchMinistry(ctx context.Context, ministryID id.MinistryID, patch *models.MinistryPatch) (*models.Ministry, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.ministries.Execute(ctx, brandID, uuid.UUID(ministryID),
		func(m *models.Ministry) error { return nil },
		func(m *models.Ministry) { patch.Apply(m, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "ministry")
	}
	return updated, nil
}

// DeleteMinistry removes a ministry of the caller's brand.
func (s *Service) DeleteMinistry(ctx context.Context, ministryID id.MinistryID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.ministries.Delete(ctx, brandID, uuid.UUID(ministryID)); err != nil {
		return wrapContentErr(err, "ministry")
	}
	return nil
}
