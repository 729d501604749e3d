package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
)

// ContentBlock is one ordered block of a blog post body: a heading, a text
// paragraph, an image, or a pull quote.
type ContentBlock struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Alignment string    `json:"alignment,omitempty"`
	Order     int       `json:"order"`
}

// Blog is a brand-scoped post. Public listings show published posts only;
// drafts stay visible to the owning brand's admins.
type Blog struct {
	ID            uuid.UUID      `json:"id"`
	BrandID       id.BrandID     `json:"brand_id"`
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	ContentBlocks []ContentBlock `json:"content_blocks"`
	Excerpt       string         `json:"excerpt"`
	Author        string         `json:"author"`
	ImageURL      string         `json:"image_url"`
	Published     bool           `json:"published"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (b *Blog) Key() uuid.UUID    { return b.ID }
func (b *Blog) Brand() id.BrandID { return b.BrandID }

func (b *Blog) Clone() *Blog {
	cp := *b
	if b.ContentBlocks != nil {
		cp.ContentBlocks = append([]ContentBlock(nil), b.ContentBlocks...)
	}
	return &cp
}

func (b *Blog) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "blog title is required")
	}
	if strings.TrimSpace(b.Content) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "blog content is required")
	}
	return nil
}

// BlogPatch is the partial-update payload for blog posts.
type BlogPatch struct {
	Title         *string         `json:"title"`
	Content       *string         `json:"content"`
	ContentBlocks *[]ContentBlock `json:"content_blocks"`
	Excerpt       *string         `json:"excerpt"`
	Author        *string         `json:"author"`
	ImageURL      *string         `json:"image_url"`
	Published     *bool           `json:"published"`
}

func (p *BlogPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "blog title cannot be blank")
	}
	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "blog content cannot be blank")
	}
	return nil
}

func (p *BlogPatch) Apply(b *Blog, now time.Time) {
	if p.Title != nil {
		b.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.ContentBlocks != nil {
		b.ContentBlocks = append([]ContentBlock(nil), *p.ContentBlocks...)
	}
	if p.Excerpt != nil {
		b.Excerpt = *p.Excerpt
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
	}
	if p.Published != nil {
		b.Published = *p.Published
	}
	b.UpdatedAt = now
}
