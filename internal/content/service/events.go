package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandgate/internal/content/models"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/requestcontext"
)

// CreateEventParams carries admin event creation input. The brand always
// comes from the caller's token.
type CreateEventParams struct {
	Title                string
	Description          string
	Date                 string
	Time                 string
	Location             string
	ImageURL             string
	IsFree               bool
	AcceptsDonations     bool
	RegistrationEnabled  bool
	RegistrationFields   map[string]bool
	CategoryOptions      []string
	RegistrationDeadline *time.Time
}

func (s *Service) CreateEvent(ctx context.Context, p CreateEventParams) (*models.Event, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	event := &models.Event{
		ID:                   id.NewEventID(),
		BrandID:              brandID,
		Title:                strings.TrimSpace(p.Title),
		Description:          p.Description,
		Date:                 p.Date,
		Time:                 p.Time,
		Location:             p.Location,
		ImageURL:             p.ImageURL,
		IsFree:               p.IsFree,
		AcceptsDonations:     p.AcceptsDonations,
		RegistrationEnabled:  p.RegistrationEnabled,
		RegistrationFields:   p.RegistrationFields,
		CategoryOptions:      p.CategoryOptions,
		RegistrationDeadline: p.RegistrationDeadline,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, wrapContentErr(err, "event")
	}
	return event, nil
}

// ListEvents returns one brand's events, newest first. Public.
func (s *Service) ListEvents(ctx context.Context, brandID id.BrandID) ([]*models.Event, error) {
	events, err := s.events.ListByBrand(ctx, brandID, nil)
	if err != nil {
		return nil, wrapContentErr(err, "event")
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

// GetEvent returns one event by id. Public.
func (s *Service) GetEvent(ctx context.Context, eventID id.EventID) (*models.Event, error) {
	event, err := s.events.Find(ctx, uuid.UUID(eventID))
	if err != nil {
		return nil, wrapContentErr(err, "event")
	}
	return event, nil
}

// PatchEvent merges the supplied fields into an event of the caller's brand.
func (s *Service) PatchEvent(ctx context.Context, eventID id.EventID, patch *models.EventPatch) (*models.Event, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.events.Execute(ctx, brandID, uuid.UUID(eventID),
		func(e *models.Event) error { return nil },
		func(e *models.Event) { patch.Apply(e, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "event")
	}
	return updated, nil
}

// DeleteEvent removes an event of the caller's brand.
func (s *Service) DeleteEvent(ctx context.Context, eventID id.EventID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, brandID, uuid.UUID(eventID)); err != nil {
		return wrapContentErr(err, "event")
	}
	return nil
}

// RegisterAttendeeParams carries public event registration input.
type RegisterAttendeeParams struct {
	Name         string
	Email        string
	MobileNumber string
	Place        string
	Category     string
	Guests       int
}

// RegisterAttendee records an attendee for an event. Registration is public;
// the attendee inherits the event's brand. Which optional fields are required
// follows the event's registration_fields configuration.
func (s *Service) RegisterAttendee(ctx context.Context, eventID id.EventID, p RegisterAttendeeParams) (*models.Attendee, error) {
	event, err := s.events.Find(ctx, uuid.UUID(eventID))
	if err != nil {
		return nil, wrapContentErr(err, "event")
	}

	now := requestcontext.Now(ctx)
	if err := event.CanRegister(now); err != nil {
		return nil, err
	}

	if strings.TrimSpace(p.Name) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "attendee name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "attendee email is required")
	}
	if p.Guests < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "guests cannot be negative")
	}
	if event.FieldEnabled("mobile_number") && strings.TrimSpace(p.MobileNumber) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "mobile number is required for this event")
	}
	if event.FieldEnabled("place") && strings.TrimSpace(p.Place) == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "place is required for this event")
	}
	if event.FieldEnabled("category") {
		if p.Category == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "category is required for this event")
		}
		if !event.ValidCategory(p.Category) {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown category %q", p.Category)
		}
	}

	attendee := &models.Attendee{
		ID:           id.NewAttendeeID(),
		EventID:      event.ID,
		BrandID:      event.BrandID,
		Name:         strings.TrimSpace(p.Name),
		Email:        strings.TrimSpace(strings.ToLower(p.Email)),
		MobileNumber: strings.TrimSpace(p.MobileNumber),
		Place:        strings.TrimSpace(p.Place),
		Category:     p.Category,
		Guests:       p.Guests,
		CreatedAt:    now,
	}
	if err := s.attendees.Create(ctx, attendee); err != nil {
		return nil, wrapContentErr(err, "attendee")
	}
	return attendee, nil
}

// ListAttendees returns the registrations of one event in the caller's brand,
// oldest first. Admin only.
func (s *Service) ListAttendees(ctx context.Context, eventID id.EventID) ([]*models.Attendee, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	// Event lookup scoped to the caller's brand so a cross-tenant event id
	// is indistinguishable from a missing one.
	if _, err := s.events.FindScoped(ctx, brandID, uuid.UUID(eventID)); err != nil {
		return nil, wrapContentErr(err, "event")
	}

	attendees, err := s.attendees.ListByBrand(ctx, brandID, func(a *models.Attendee) bool {
		return a.EventID == eventID
	})
	if err != nil {
		return nil, wrapContentErr(err, "attendee")
	}
	sort.Slice(attendees, func(i, j int) bool {
		return attendees[i].CreatedAt.Before(attendees[j].CreatedAt)
	})
	return attendees, nil
}

// PatchAttendee corrects one registration in the caller's brand.
func (s *Service) PatchAttendee(ctx context.Context, attendeeID id.AttendeeID, patch *models.AttendeePatch) (*models.Attendee, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.attendees.Execute(ctx, brandID, uuid.UUID(attendeeID),
		func(a *models.Attendee) error {
			if patch.Category != nil && *patch.Category != "" {
				event, err := s.events.FindScoped(ctx, brandID, uuid.UUID(a.EventID))
				if err != nil {
					return wrapContentErr(err, "event")
				}
				if !event.ValidCategory(*patch.Category) {
					return dErrors.Newf(dErrors.CodeInvalidInput, "unknown category %q", *patch.Category)
				}
			}
			return nil
		},
		func(a *models.Attendee) { patch.Apply(a) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "attendee")
	}
	return updated, nil
}
