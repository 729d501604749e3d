package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// DefaultCategoryOptions is the attendee category list used when an event
// enables category selection without configuring its own options.
var DefaultCategoryOptions = []string{"General", "VIP", "Volunteer", "Speaker", "Media", "Youth", "Family"}

// Event is a brand-scoped happening members can optionally register for.
// RegistrationFields toggles which extra attendee fields are collected.
type Event struct {
	ID                   id.EventID      `json:"id"`
	BrandID              id.BrandID      `json:"brand_id"`
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Date                 string          `json:"date"`
	Time                 string          `json:"time"`
	Location             string          `json:"location"`
	ImageURL             string          `json:"image_url"`
	IsFree               bool            `json:"is_free"`
	AcceptsDonations     bool            `json:"accepts_donations"`
	RegistrationEnabled  bool            `json:"registration_enabled"`
	RegistrationFields   map[string]bool `json:"registration_fields,omitempty"`
	CategoryOptions      []string        `json:"category_options,omitempty"`
	RegistrationDeadline *time.Time      `json:"registration_deadline"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (e *Event) Key() uuid.UUID    { return uuid.UUID(e.ID) }
func (e *Event) Brand() id.BrandID { return e.BrandID }

func (e *Event) Clone() *Event {
	cp := *e
	if e.RegistrationFields != nil {
		cp.RegistrationFields = make(map[string]bool, len(e.RegistrationFields))
		for k, v := range e.RegistrationFields {
			cp.RegistrationFields[k] = v
		}
	}
	cp.CategoryOptions = append([]string(nil), e.CategoryOptions...)
	if e.RegistrationDeadline != nil {
		d := *e.RegistrationDeadline
		cp.RegistrationDeadline = &d
	}
	return &cp
}

func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "event title is required")
	}
	return nil
}

// FieldEnabled reports whether an optional registration field is collected.
func (e *Event) FieldEnabled(name string) bool {
	return e.RegistrationFields[name]
}

// Categories returns the configured attendee categories, falling back to the
// default list when category collection is on but no options were set.
func (e *Event) Categories() []string {
	if len(e.CategoryOptions) > 0 {
		return e.CategoryOptions
	}
	return DefaultCategoryOptions
}

// CanRegister checks that registration is open at the given instant.
func (e *Event) CanRegister(now time.Time) error {
	if !e.RegistrationEnabled {
		return dErrors.New(dErrors.CodeInvariantViolation, "registration is not enabled for this event")
	}
	if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) {
		return dErrors.New(dErrors.CodeInvariantViolation, "registration deadline has passed")
	}
	return nil
}

// ValidCategory reports whether the given category is one of the event's
// configured options.
func (e *Event) ValidCategory(category string) bool {
	return slices.Contains(e.Categories(), category)
}

// EventPatch is the partial-update payload for events. Nil fields are left
// untouched on merge.
type EventPatch struct {
	Title                *string          `json:"title"`
	Description          *string          `json:"description"`
	Date                 *string          `json:"date"`
	Time                 *string          `json:"time"`
	Location             *string          `json:"location"`
	ImageURL             *string          `json:"image_url"`
	IsFree               *bool            `json:"is_free"`
	AcceptsDonations     *bool            `json:"accepts_donations"`
	RegistrationEnabled  *bool            `json:"registration_enabled"`
	RegistrationFields   *map[string]bool `json:"registration_fields"`
	CategoryOptions      *[]string        `json:"category_options"`
	RegistrationDeadline *time.Time       `json:"registration_deadline"`
}

func (p *EventPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "event title cannot be blank")
	}
	return nil
}

func (p *EventPatch) Apply(e *Event, now time.Time) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	if p.IsFree != nil {
		e.IsFree = *p.IsFree
	}
	if p.AcceptsDonations != nil {
		e.AcceptsDonations = *p.AcceptsDonations
	}
	if p.RegistrationEnabled != nil {
		e.RegistrationEnabled = *p.RegistrationEnabled
	}
	if p.RegistrationFields != nil {
		e.RegistrationFields = *p.RegistrationFields
	}
	if p.CategoryOptions != nil {
		e.CategoryOptions = *p.CategoryOptions
	}
	if p.RegistrationDeadline != nil {
		e.RegistrationDeadline = p.RegistrationDeadline
	}
	e.UpdatedAt = now
}

// Attendee is one registration row for an event. Immutable once created
// except through an explicit patch by a same-brand admin.
type Attendee struct {
	ID           id.AttendeeID `json:"id"`
	EventID      id.EventID    `json:"event_id"`
	BrandID      id.BrandID    `json:"brand_id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	MobileNumber string        `json:"mobile_number,omitempty"`
	Place        string        `json:"place,omitempty"`
	Category     string        `json:"category,omitempty"`
	Guests       int           `json:"guests"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (a *Attendee) Key() uuid.UUID    { return uuid.UUID(a.ID) }
func (a *Attendee) Brand() id.BrandID { return a.BrandID }

func (a *Attendee) Clone() *Attendee {
	cp := *a
	return &cp
}

// AttendeePatch lets an admin correct a registration without clobbering the
// fields that were not supplied.
type AttendeePatch struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	MobileNumber *string `json:"mobile_number"`
	Place        *string `json:"place"`
	Category     *string `json:"category"`
	Guests       *int    `json:"guests"`
}

func (p *AttendeePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "attendee name cannot be blank")
	}
	if p.Guests != nil && *p.Guests < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "guests cannot be negative")
	}
	return nil
}

func (p *AttendeePatch) Apply(a *Attendee) {
	if p.Name != nil {
		a.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.MobileNumber != nil {
		a.MobileNumber = *p.MobileNumber
	}
	if p.Place != nil {
		a.Place = *p.Place
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Guests != nil {
		a.Guests = *p.Guests
	}
}
