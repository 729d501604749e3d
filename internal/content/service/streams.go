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

// CreateCountdownParams carries admin countdown creation input.
type CreateCountdownParams struct {
	Title          string
	EventDate      time.Time
	BannerImageURL string
	IsActive       bool
	Priority       int
}

func (s *Service) CreateCountdown(ctx context.Context, p CreateCountdownParams) (*models.Countdown, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	c := &models.Countdown{
		ID:             uuid.New(),
		BrandID:        brandID,
		Title:          strings.TrimSpace(p.Title),
		EventDate:      p.EventDate,
		BannerImageURL: p.BannerImageURL,
		IsActive:       p.IsActive,
		Priority:       p.Priority,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.countdowns.Create(ctx, c); err != nil {
		return nil, wrapContentErr(err, "countdown")
	}
	return c, nil
}

// ListCountdowns returns one brand's active countdowns, highest priority
// first, then soonest event date. Public.
func (s *Service) ListCountdowns(ctx context.Context, brandID id.BrandID) ([]*models.Countdown, error) {
	items, err := s.countdowns.ListByBrand(ctx, brandID, func(c *models.Countdown) bool {
		return c.IsActive
	})
	if err != nil {
		return nil, wrapContentErr(err, "countdown")
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority > items[j].Priority
		}
		return items[i].EventDate.Before(items[j].EventDate)
	})
	return items, nil
}

// PatchCountdown merges the supplied fields into a countdown of the caller's
// brand.
func (s *Service) PatchCountdown(ctx context.Context, countdownID uuid.UUID, patch *models.CountdownPatch) (*models.Countdown, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.countdowns.Execute(ctx, brandID, countdownID,
		func(c *models.Countdown) error { return nil },
		func(c *models.Countdown) { patch.Apply(c, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "countdown")
	}
	return updated, nil
}

// DeleteCountdown removes a countdown of the caller's brand.
func (s *Service) DeleteCountdown(ctx context.Context, countdownID uuid.UUID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.countdowns.Delete(ctx, brandID, countdownID); err != nil {
		return wrapContentErr(err, "countdown")
	}
	return nil
}

// CreateLiveStreamParams carries admin live stream creation input.
type CreateLiveStreamParams struct {
	Title          string
	StreamURL      string
	IsLive         bool
	ScheduledStart *time.Time
}

func (s *Service) CreateLiveStream(ctx context.Context, p CreateLiveStreamParams) (*models.LiveStream, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	l := &models.LiveStream{
		ID:             uuid.New(),
		BrandID:        brandID,
		Title:          strings.TrimSpace(p.Title),
		StreamURL:      p.StreamURL,
		IsLive:         p.IsLive,
		ScheduledStart: p.ScheduledStart,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.streams.Create(ctx, l); err != nil {
		return nil, wrapContentErr(err, "live stream")
	}
	return l, nil
}

// ListLiveStreams returns one brand's streams, live ones first. Public.
func (s *Service) ListLiveStreams(ctx context.Context, brandID id.BrandID) ([]*models.LiveStream, error) {
	items, err := s.streams.ListByBrand(ctx, brandID, nil)
	if err != nil {
		return nil, wrapContentErr(err, "live stream")
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].IsLive != items[j].IsLive {
			return items[i].IsLive
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// PatchLiveStream merges the supplied fields into a stream of the caller's
// brand.
func (s *Service) PatchLiveStream(ctx context.Context, streamID uuid.UUID, patch *models.LiveStreamPatch) (*models.LiveStream, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.streams.Execute(ctx, brandID, streamID,
		func(l *models.LiveStream) error { return nil },
		func(l *models.LiveStream) { patch.Apply(l, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "live stream")
	}
	return updated, nil
}

// DeleteLiveStream removes a stream of the caller's brand.
func (s *Service) DeleteLiveStream(ctx context.Context, streamID uuid.UUID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.streams.Delete(ctx, brandID, streamID); err != nil {
		return wrapContentErr(err, "live stream")
	}
	return nil
}
