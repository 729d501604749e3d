package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// Countdown is a brand-scoped timer banner shown ahead of a live event.
// Higher Priority wins when several are active.
type Countdown struct {
	ID             uuid.UUID  `json:"id"`
	BrandID        id.BrandID `json:"brand_id"`
	Title          string     `json:"title"`
	EventDate      time.Time  `json:"event_date"`
	BannerImageURL string     `json:"banner_image_url"`
	IsActive       bool       `json:"is_active"`
	Priority       int        `json:"priority"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (c *Countdown) Key() uuid.UUID    { return c.ID }
func (c *Countdown) Brand() id.BrandID { return c.BrandID }

func (c *Countdown) Clone() *Countdown {
	cp := *c
	return &cp
}

func (c *Countdown) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "countdown title is required")
	}
	if c.EventDate.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "countdown event date is required")
	}
	return nil
}

// CountdownPatch is the partial-update payload for countdowns.
type CountdownPatch struct {
	Title          *string    `json:"title"`
	EventDate      *time.Time `json:"event_date"`
	BannerImageURL *string    `json:"banner_image_url"`
	IsActive       *bool      `json:"is_active"`
	Priority       *int       `json:"priority"`
}

func (p *CountdownPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "countdown title cannot be blank")
	}
	return nil
}

func (p *CountdownPatch) Apply(c *Countdown, now time.Time) {
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.EventDate != nil {
		c.EventDate = *p.EventDate
	}
	if p.BannerImageURL != nil {
		c.BannerImageURL = *p.BannerImageURL
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	c.UpdatedAt = now
}
