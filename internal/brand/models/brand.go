package models

import (
	"strings"
	"time"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// Brand is the tenant root. Every other entity in the system carries a
// BrandID pointing at exactly one of these.
type Brand struct {
	ID             id.BrandID `json:"id"`
	Name           string     `json:"name"`
	Domain         string     `json:"domain"`
	Tagline        string     `json:"tagline"`
	LogoURL        string     `json:"logo_url"`
	HeroImageURL   string     `json:"hero_image_url"`
	HeroVideoURL   string     `json:"hero_video_url"`
	Location       string     `json:"location"`
	ServiceTimes   string     `json:"service_times"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	WhatsappNumber string     `json:"whatsapp_number"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Validate checks creation invariants.
func (b *Brand) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "brand name is required")
	}
	return nil
}

// Patch is a partial update: nil means "leave the field alone", a non-nil
// pointer means "set to this value" even when the value is the zero string.
type Patch struct {
	Name           *string `json:"name"`
	Domain         *string `json:"domain"`
	Tagline        *string `json:"tagline"`
	LogoURL        *string `json:"logo_url"`
	HeroImageURL   *string `json:"hero_image_url"`
	HeroVideoURL   *string `json:"hero_video_url"`
	Location       *string `json:"location"`
	ServiceTimes   *string `json:"service_times"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	WhatsappNumber *string `json:"whatsapp_number"`
}

// Validate rejects patches that would break brand invariants.
func (p *Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "brand name cannot be blank")
	}
	return nil
}

// Apply merges the supplied fields into the brand. Use inside the store's
// Execute callback so the merge is atomic with the read.
func (p *Patch) Apply(b *Brand, now time.Time) {
	if p.Name != nil {
		b.Name = strings.TrimSpace(*p.Name)
	}
	if p.Domain != nil {
		b.Domain = *p.Domain
	}
	if p.Tagline != nil {
		b.Tagline = *p.Tagline
	}
	if p.LogoURL != nil {
		b.LogoURL = *p.LogoURL
	}
	if p.HeroImageURL != nil {
		b.HeroImageURL = *p.HeroImageURL
	}
	if p.HeroVideoURL != nil {
		b.HeroVideoURL = *p.HeroVideoURL
	}
	if p.Location != nil {
		b.Location = *p.Location
	}
	if p.ServiceTimes != nil {
		b.ServiceTimes = *p.ServiceTimes
	}
	if p.PrimaryColor != nil {
		b.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		b.SecondaryColor = *p.SecondaryColor
	}
	if p.WhatsappNumber != nil {
		b.WhatsappNumber = *p.WhatsappNumber
	}
	b.UpdatedAt = now
}
