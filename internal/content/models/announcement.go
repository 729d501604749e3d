package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// Announcement is a brand-scoped notice, optionally linked to an event and
// optionally time-windowed via ScheduledStart/End.
type Announcement struct {
	ID                   id.AnnouncementID `json:"id"`
	BrandID              id.BrandID        `json:"brand_id"`
	Title                string            `json:"title"`
	Content              string            `json:"content"`
	ImageURL             string            `json:"image_url"`
	IsUrgent             bool              `json:"is_urgent"`
	EventID              *id.EventID       `json:"event_id"`
	Location             string            `json:"location,omitempty"`
	EventTime            string            `json:"event_time,omitempty"`
	RequiresRegistration bool              `json:"requires_registration"`
	ScheduledStart       *time.Time        `json:"scheduled_start"`
	ScheduledEnd         *time.Time        `json:"scheduled_end"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func (a *Announcement) Key() uuid.UUID    { return uuid.UUID(a.ID) }
func (a *Announcement) Brand() id.BrandID { return a.BrandID }

func (a *Announcement) Clone() *Announcement {
	cp := *a
	if a.EventID != nil {
		e := *a.EventID
		cp.EventID = &e
	}
	if a.ScheduledStart != nil {
		t := *a.ScheduledStart
		cp.ScheduledStart = &t
	}
	if a.ScheduledEnd != nil {
		t := *a.ScheduledEnd
		cp.ScheduledEnd = &t
	}
	return &cp
}

func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "announcement title is required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "announcement content is required")
	}
	return nil
}

// VisibleAt reports whether the announcement is inside its scheduling window.
// Unset bounds are open.
func (a *Announcement) VisibleAt(now time.Time) bool {
	if a.ScheduledStart != nil && now.Before(*a.ScheduledStart) {
		return false
	}
	if a.ScheduledEnd != nil && now.After(*a.ScheduledEnd) {
		return false
	}
	return true
}

// AnnouncementPatch is the partial-update payload for announcements.
type AnnouncementPatch struct {
	Title                *string     `json:"title"`
	Content              *string     `json:"content"`
	ImageURL             *string     `json:"image_url"`
	IsUrgent             *bool       `json:"is_urgent"`
	EventID              *id.EventID `json:"event_id"`
	Location             *string     `json:"location"`
	EventTime            *string     `json:"event_time"`
	RequiresRegistration *bool       `json:"requires_registration"`
	ScheduledStart       *time.Time  `json:"scheduled_start"`
	ScheduledEnd         *time.Time  `json:"scheduled_end"`
}

func (p *AnnouncementPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "announcement title cannot be blank")
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "announcement content cannot be blank")
	}
	return nil
}

func (p *AnnouncementPatch) Apply(a *Announcement, now time.Time) {
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.IsUrgent != nil {
		a.IsUrgent = *p.IsUrgent
	}
	if p.EventID != nil {
		a.EventID = p.EventID
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.EventTime != nil {
		a.EventTime = *p.EventTime
	}
	if p.RequiresRegistration != nil {
		a.RequiresRegistration = *p.RequiresRegistration
	}
	if p.ScheduledStart != nil {
		a.ScheduledStart = p.ScheduledStart
	}
	if p.ScheduledEnd != nil {
		a.ScheduledEnd = p.ScheduledEnd
	}
	a.UpdatedAt = now
}
