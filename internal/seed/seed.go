// Package seed loads demo data for local development: two brands, an admin
// for each, and enough content and giving records to click through the API.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	brandservice "brandgate/internal/brand/service"
	contentservice "brandgate/internal/content/service"
	givingservice "brandgate/internal/giving/service"
	identityservice "brandgate/internal/identity/service"
	"brandgate/pkg/money"
	"brandgate/pkg/requestcontext"
)

// Services collects everything the seeder writes through. Going through the
// services keeps validation and tenant scoping in the loop.
type Services struct {
	Brands   *brandservice.Service
	Identity *identityservice.Service
	Content  *contentservice.Service
	Giving   *givingservice.Service
	Logger   *slog.Logger
}

// Run provisions the demo brands. It is not idempotent; run it against an
// empty store only.
func Run(ctx context.Context, s Services) error {
	if err := seedNehemiah(ctx, s); err != nil {
		return fmt.Errorf("seed nehemiah david ministries: %w", err)
	}
	if err := seedFaithCentre(ctx, s); err != nil {
		return fmt.Errorf("seed faith centre: %w", err)
	}
	return nil
}

func seedNehemiah(ctx context.Context, s Services) error {
	brand, err := s.Brands.Create(ctx, brandservice.CreateParams{
		Name:           "Nehemiah David Ministries",
		Domain:         "nehemiahdavid.example.com",
		Tagline:        "Raising a generation of believers",
		Location:       "Hyderabad, India",
		ServiceTimes:   "Sunday 9:00 AM and 11:30 AM",
		PrimaryColor:   "#1a1a2e",
		SecondaryColor: "#e94560",
		WhatsappNumber: "+91 98765 43210",
	})
	if err != nil {
		return err
	}

	admin, err := s.Identity.CreateAdmin(ctx, brand.ID, "promptforge.dev@gmail.com", "changeme123", "Nehemiah David")
	if err != nil {
		return err
	}
	actx := requestcontext.WithPrincipal(ctx, requestcontext.Principal{
		Kind:        requestcontext.PrincipalAdmin,
		PrincipalID: admin.ID.String(),
		BrandID:     brand.ID,
	})

	if _, err := s.Content.CreateEvent(actx, contentservice.CreateEventParams{
		Title:               "Youth Revival Night",
		Description:         "An evening of worship and the word for young people.",
		Date:                "2026-09-12",
		Time:                "6:00 PM",
		Location:            "Main Auditorium",
		IsFree:              true,
		RegistrationEnabled: true,
		RegistrationFields:  map[string]bool{"name": true, "email": true, "phone": true},
	}); err != nil {
		return err
	}
	if _, err := s.Content.CreateAnnouncement(actx, contentservice.CreateAnnouncementParams{
		Title:    "New Service Timings",
		Content:  "From September we move to two Sunday services: 9:00 AM and 11:30 AM.",
		IsUrgent: true,
	}); err != nil {
		return err
	}
	if _, err := s.Content.CreateMinistry(actx, contentservice.CreateMinistryParams{
		Title:           "Worship Team",
		Description:     "Leads the congregation in worship every Sunday.",
		Leader:          "Sarah Thomas",
		MeetingSchedule: "Saturdays 4:00 PM",
	}); err != nil {
		return err
	}
	if _, err := s.Content.CreateCountdown(actx, contentservice.CreateCountdownParams{
		Title:     "Annual Conference 2026",
		EventDate: time.Date(2026, 11, 20, 9, 0, 0, 0, time.UTC),
		IsActive:  true,
		Priority:  1,
	}); err != nil {
		return err
	}
	if _, err := s.Giving.CreateFoundation(actx, givingservice.CreateFoundationParams{
		Title:       "Building Fund",
		Description: "Help us build the new sanctuary.",
		GoalAmount:  money.FromCents(50_000_00),
		IsActive:    true,
	}); err != nil {
		return err
	}
	if _, err := s.Giving.CreateCategory(actx, givingservice.CreateCategoryParams{
		Name:     "Tithes",
		IsActive: true,
	}); err != nil {
		return err
	}

	s.Logger.Info("seeded demo brand", "brand", brand.Name, "admin", admin.Email)
	return nil
}

func seedFaithCentre(ctx context.Context, s Services) error {
	brand, err := s.Brands.Create(ctx, brandservice.CreateParams{
		Name:           "Faith Centre",
		Domain:         "faithcentre.example.com",
		Tagline:        "A place to belong",
		Location:       "Bengaluru, India",
		ServiceTimes:   "Sunday 10:00 AM",
		PrimaryColor:   "#0f3460",
		SecondaryColor: "#f5a623",
	})
	if err != nil {
		return err
	}

	admin, err := s.Identity.CreateAdmin(ctx, brand.ID, "admin@faithcenter.com", "changeme123", "Faith Centre Admin")
	if err != nil {
		return err
	}
	actx := requestcontext.WithPrincipal(ctx, requestcontext.Principal{
		Kind:        requestcontext.PrincipalAdmin,
		PrincipalID: admin.ID.String(),
		BrandID:     brand.ID,
	})

	if _, err := s.Content.CreateEvent(actx, contentservice.CreateEventParams{
		Title:       "Community Outreach",
		Description: "Food and clothing drive for the neighbourhood.",
		Date:        "2026-09-26",
		Time:        "8:00 AM",
		Location:    "Church Grounds",
		IsFree:      true,
	}); err != nil {
		return err
	}
	if _, err := s.Content.CreateLiveStream(actx, contentservice.CreateLiveStreamParams{
		Title:     "Sunday Service Live",
		StreamURL: "https://video.example.com/live/faithcentre",
		IsLive:    false,
	}); err != nil {
		return err
	}
	if _, err := s.Giving.CreateFoundation(actx, givingservice.CreateFoundationParams{
		Title:       "Missions Fund",
		Description: "Supporting our missionaries in the field.",
		GoalAmount:  money.FromCents(20_000_00),
		IsActive:    true,
	}); err != nil {
		return err
	}

	s.Logger.Info("seeded demo brand", "brand", brand.Name, "admin", admin.Email)
	return nil
}
