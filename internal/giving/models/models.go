package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/money"
)

// GivingCategory is a brand-scoped label for recurring giving (tithe,
// offering, missions and the like).
type GivingCategory struct {
	ID          id.CategoryID `json:"id"`
	BrandID     id.BrandID    `json:"brand_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsActive    bool          `json:"is_active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (c *GivingCategory) Key() uuid.UUID    { return uuid.UUID(c.ID) }
func (c *GivingCategory) Brand() id.BrandID { return c.BrandID }

func (c *GivingCategory) Clone() *GivingCategory {
	cp := *c
	return &cp
}

func (c *GivingCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "category name is required")
	}
	return nil
}

// GivingCategoryPatch is the partial-update payload for giving categories.
type GivingCategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (p *GivingCategoryPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "category name cannot be blank")
	}
	return nil
}

func (p *GivingCategoryPatch) Apply(c *GivingCategory, now time.Time) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	c.UpdatedAt = now
}

// Foundation is a brand-scoped fundraising campaign.
//
// Invariants:
//   - RaisedAmount only ever grows, and only through donation settlement;
//     it is never writable through a patch
//   - RaisedAmount equals the exact sum of settled donation amounts
type Foundation struct {
	ID            id.FoundationID `json:"id"`
	BrandID       id.BrandID      `json:"brand_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url"`
	GalleryImages []string        `json:"gallery_images"`
	GoalAmount    money.Amount    `json:"goal_amount"`
	RaisedAmount  money.Amount    `json:"raised_amount"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (f *Foundation) Clone() *Foundation {
	cp := *f
	cp.GalleryImages = append([]string(nil), f.GalleryImages...)
	return &cp
}

func (f *Foundation) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "foundation title is required")
	}
	if f.GoalAmount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "goal amount cannot be negative")
	}
	return nil
}

// CanAcceptDonation checks the foundation is open for giving.
func (f *Foundation) CanAcceptDonation() error {
	if !f.IsActive {
		return dErrors.New(dErrors.CodeInvariantViolation, "foundation is not accepting donations")
	}
	return nil
}

// FoundationPatch is the partial-update payload for foundations. RaisedAmount
// is deliberately absent; it moves only through settlement.
type FoundationPatch struct {
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	ImageURL      *string       `json:"image_url"`
	GalleryImages *[]string     `json:"gallery_images"`
	GoalAmount    *money.Amount `json:"goal_amount"`
	IsActive      *bool         `json:"is_active"`
}

func (p *FoundationPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "foundation title cannot be blank")
	}
	if p.GoalAmount != nil && *p.GoalAmount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "goal amount cannot be negative")
	}
	return nil
}

func (p *FoundationPatch) Apply(f *Foundation, now time.Time) {
	if p.Title != nil {
		f.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.ImageURL != nil {
		f.ImageURL = *p.ImageURL
	}
	if p.GalleryImages != nil {
		f.GalleryImages = *p.GalleryImages
	}
	if p.GoalAmount != nil {
		f.GoalAmount = *p.GoalAmount
	}
	if p.IsActive != nil {
		f.IsActive = *p.IsActive
	}
	f.UpdatedAt = now
}

// Donation is one immutable ledger entry. FoundationID is nil for donations
// settled against a checkout that named no foundation; the transaction itself
// is the ledger in that case.
type Donation struct {
	ID           id.DonationID    `json:"id"`
	BrandID      id.BrandID       `json:"brand_id"`
	FoundationID *id.FoundationID `json:"foundation_id"`
	DonorName    string           `json:"donor_name"`
	DonorEmail   string           `json:"donor_email,omitempty"`
	Amount       money.Amount     `json:"amount"`
	Message      string           `json:"message,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (d *Donation) Validate() error {
	if !d.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeInvalidInput, "donation amount must be positive")
	}
	if strings.TrimSpace(d.DonorName) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "donor name is required")
	}
	return nil
}
