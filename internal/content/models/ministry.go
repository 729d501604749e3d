package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// Ministry is a brand-scoped serving team or program.
type Ministry struct {
	ID              id.MinistryID `json:"id"`
	BrandID         id.BrandID    `json:"brand_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Leader          string        `json:"leader"`
	ImageURL        string        `json:"image_url"`
	MeetingSchedule string        `json:"meeting_schedule"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (m *Ministry) Key() uuid.UUID    { return uuid.UUID(m.ID) }
func (m *Ministry) Brand() id.BrandID { return m.BrandID }

func (m *Ministry) Clone() *Ministry {
	cp := *m
	return &cp
}

func (m *Ministry) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "ministry title is required")
	}
	return nil
}

// MinistryPatch is the partial-update payload for ministries.
type MinistryPatch struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Leader          *string `json:"leader"`
	ImageURL        *string `json:"image_url"`
	MeetingSchedule *string `json:"meeting_schedule"`
}

func (p *MinistryPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "ministry title cannot be blank")
	}
	return nil
}

func (p *MinistryPatch) Apply(m *Ministry, now time.Time) {
	if p.Title != nil {
		m.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Leader != nil {
		m.Leader = *p.Leader
	}
	if p.ImageURL != nil {
		m.ImageURL = *p.ImageURL
	}
	if p.MeetingSchedule != nil {
		m.MeetingSchedule = *p.MeetingSchedule
	}
	m.UpdatedAt = now
}
