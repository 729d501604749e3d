package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// GalleryImage is one photo in a brand's media gallery, grouped by a free-form
// category such as "worship" or "community".
type GalleryImage struct {
	ID        uuid.UUID  `json:"id"`
	BrandID   id.BrandID `json:"brand_id"`
	URL       string     `json:"url"`
	Category  string     `json:"category"`
	Caption   string     `json:"caption"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (g *GalleryImage) Key() uuid.UUID    { return g.ID }
func (g *GalleryImage) Brand() id.BrandID { return g.BrandID }

func (g *GalleryImage) Clone() *GalleryImage {
	cp := *g
	return &cp
}

func (g *GalleryImage) Validate() error {
	if strings.TrimSpace(g.URL) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "gallery image url is required")
	}
	return nil
}

// GalleryImagePatch is the partial-update payload for gallery images.
type GalleryImagePatch struct {
	URL      *string `json:"url"`
	Category *string `json:"category"`
	Caption  *string `json:"caption"`
}

func (p *GalleryImagePatch) Validate() error {
	if p.URL != nil && strings.TrimSpace(*p.URL) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "gallery image url cannot be blank")
	}
	return nil
}

func (p *GalleryImagePatch) Apply(g *GalleryImage, now time.Time) {
	if p.URL != nil {
		g.URL = strings.TrimSpace(*p.URL)
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Caption != nil {
		g.Caption = *p.Caption
	}
	g.UpdatedAt = now
}
