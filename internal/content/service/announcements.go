package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandgate/internal/content/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/requestcontext"
)

// CreateAnnouncementParams carries admin announcement creation input.
type CreateAnnouncementParams struct {
	Title                string
	Content              string
	ImageURL             string
	IsUrgent             bool
	EventID              *id.EventID
	Location             string
	EventTime            string
	RequiresRegistration bool
	ScheduledStart       *time.Time
	ScheduledEnd         *time.Time
}

func (s *Service) CreateAnnouncement(ctx context.Context, p CreateAnnouncementParams) (*models.Announcement, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	a := &models.Announcement{
		ID:                   id.NewAnnouncementID(),
		BrandID:              brandID,
		Title:                strings.TrimSpace(p.Title),
		Content:              p.Content,
		ImageURL:             p.ImageURL,
		IsUrgent:             p.IsUrgent,
		EventID:              p.EventID,
		Location:             p.Location,
		EventTime:            p.EventTime,
		RequiresRegistration: p.RequiresRegistration,
		ScheduledStart:       p.ScheduledStart,
		ScheduledEnd:         p.ScheduledEnd,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.announcements.Create(ctx, a); err != nil {
		return nil, wrapContentErr(err, "announcement")
	}
	return a, nil
}

// ListAnnouncements returns one brand's announcements inside their scheduling
// window, urgent first then newest first. With urgentOnly set only urgent
// ones are returned. Public.
func (s *Service) ListAnnouncements(ctx context.Context, brandID id.BrandID, urgentOnly bool) ([]*models.Announcement, error) {
	now := requestcontext.Now(ctx)
	items, err := s.announcements.ListByBrand(ctx, brandID, func(a *models.Announcement) bool {
		if !a.VisibleAt(now) {
			return false
		}
		return !urgentOnly || a.IsUrgent
	})
	if err != nil {
		return nil, wrapContentErr(err, "announcement")
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].IsUrgent != items[j].IsUrgent {
			return items[i].IsUrgent
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// GetAnnouncement returns one announcement by id. Public.
func (s *Service) GetAnnouncement(ctx context.Context, announcementID id.AnnouncementID) (*models.Announcement, error) {
	a, err := s.announcements.Find(ctx, uuid.UUID(announcementID))
	if err != nil {
		return nil, wrapContentErr(err, "announcement")
	}
	return a, nil
}

// PatchAnnouncement merges the supplied fields into an announcement of the
// caller's brand.
func (s *Service) PatchAnnouncement(ctx context.Context, announcementID id.AnnouncementID, patch *models.AnnouncementPatch) (*models.Announcement, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.announcements.Execute(ctx, brandID, uuid.UUID(announcementID),
		func(a *models.Announcement) error { return nil },
		func(a *models.Announcement) { patch.Apply(a, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "announcement")
	}
	return updated, nil
}

// DeleteAnnouncement removes an announcement of the caller's brand.
func (s *Service) DeleteAnnouncement(ctx context.Context, announcementID id.AnnouncementID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.announcements.Delete(ctx, brandID, uuid.UUID(announcementID)); err != nil {
		return wrapContentErr(err, "announcement")
	}
	return nil
}
