package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// LiveStream is a brand-scoped stream entry. IsLive flips when the stream
// goes on air; ScheduledStart feeds countdown surfaces.
type LiveStream struct {
	ID             uuid.UUID  `json:"id"`
	BrandID        id.BrandID `json:"brand_id"`
	Title          string     `json:"title"`
	StreamURL      string     `json:"stream_url"`
	IsLive         bool       `json:"is_live"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (l *LiveStream) Key() uuid.UUID    { return l.ID }
func (l *LiveStream) Brand() id.BrandID { return l.BrandID }

func (l *LiveStream) Clone() *LiveStream {
	cp := *l
	if l.ScheduledStart != nil {
		t := *l.ScheduledStart
		cp.ScheduledStart = &t
	}
	return &cp
}

func (l *LiveStream) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "live stream title is required")
	}
	if strings.TrimSpace(l.StreamURL) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "live stream url is required")
	}
	return nil
}

// LiveStreamPatch is the partial-update payload for live streams.
type LiveStreamPatch struct {
	Title          *string     `json:"title"`
	StreamURL      *string     `json:"stream_url"`
	IsLive         *bool      `json:"is_live"`
	ScheduledStart *time.Time `json:"scheduled_start"`
}

func (p *LiveStreamPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "live stream title cannot be blank")
	}
	if p.StreamURL != nil && strings.TrimSpace(*p.StreamURL) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "live stream url cannot be blank")
	}
	return nil
}

func (p *LiveStreamPatch) Apply(l *LiveStream, now time.Time) {
	if p.Title != nil {
		l.Title = strings.TrimSpace(*p.Title)
	}
	if p.StreamURL != nil {
		l.StreamURL = *p.StreamURL
	}
	if p.IsLive != nil {
		l.IsLive = *p.IsLive
	}
	if p.ScheduledStart != nil {
		l.ScheduledStart = p.ScheduledStart
	}
	l.UpdatedAt = now
}
