package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"brandgate/internal/content/models"
	id "brandgate/pkg/domain"
	"brandgate/pkg/requestcontext"
)

// CreateBlogParams carries admin blog creation input.
type CreateBlogParams struct {
	Title         string
	Content       string
	ContentBlocks []models.ContentBlock
	Excerpt       string
	Author        string
	ImageURL      string
	Published     bool
}

func (s *Service) CreateBlog(ctx context.Context, p CreateBlogParams) (*models.Blog, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	b := &models.Blog{
		ID:            uuid.New(),
		BrandID:       brandID,
		Title:         strings.TrimSpace(p.Title),
		Content:       p.Content,
		ContentBlocks: p.ContentBlocks,
		Excerpt:       p.Excerpt,
		Author:        strings.TrimSpace(p.Author),
		ImageURL:      p.ImageURL,
		Published:     p.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, wrapContentErr(err, "blog")
	}
	return b, nil
}

// ListBlogs returns one brand's published posts, newest first. Public.
func (s *Service) ListBlogs(ctx context.Context, brandID id.BrandID) ([]*models.Blog, error) {
	items, err := s.blogs.ListByBrand(ctx, brandID, func(b *models.Blog) bool {
		return b.Published
	})
	if err != nil {
		return nil, wrapContentErr(err, "blog")
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// GetBlog is a public, unscoped read for post pages.
func (s *Service) GetBlog(ctx context.Context, blogID uuid.UUID) (*models.Blog, error) {
	b, err := s.blogs.Find(ctx, blogID)
	if err != nil {
		return nil, wrapContentErr(err, "blog")
	}
	return b, nil
}

// PatchBlog merges the supplied fields into a post of the caller's brand.
func (s *Service) PatchBlog(ctx context.Context, blogID uuid.UUID, patch *models.BlogPatch) (*models.Blog, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.blogs.Execute(ctx, brandID, blogID,
		func(b *models.Blog) error { return nil },
		func(b *models.Blog) { patch.Apply(b, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "blog")
	}
	return updated, nil
}

// DeleteBlog removes a post of the caller's brand.
func (s *Service) DeleteBlog(ctx context.Context, blogID uuid.UUID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, brandID, blogID); err != nil {
		return wrapContentErr(err, "blog")
	}
	return nil
}

// CreateGalleryImageParams carries admin gallery upload input.
type CreateGalleryImageParams struct {
	URL      string
	Category string
	Caption  string
}

func (s *Service) CreateGalleryImage(ctx context.Context, p CreateGalleryImageParams) (*models.GalleryImage, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	g := &models.GalleryImage{
		ID:        uuid.New(),
		BrandID:   brandID,
		URL:       strings.TrimSpace(p.URL),
		Category:  p.Category,
		Caption:   p.Caption,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if err := s.gallery.Create(ctx, g); err != nil {
		return nil, wrapContentErr(err, "gallery image")
	}
	return g, nil
}

// ListGalleryImages returns one brand's gallery, newest first, optionally
// narrowed to a category. Public.
func (s *Service) ListGalleryImages(ctx context.Context, brandID id.BrandID, category string) ([]*models.GalleryImage, error) {
	items, err := s.gallery.ListByBrand(ctx, brandID, func(g *models.GalleryImage) bool {
		return category == "" || g.Category == category
	})
	if err != nil {
		return nil, wrapContentErr(err, "gallery image")
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// PatchGalleryImage merges the supplied fields into an image of the caller's
// brand.
func (s *Service) PatchGalleryImage(ctx context.Context, imageID uuid.UUID, patch *models.GalleryImagePatch) (*models.GalleryImage, error) {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.gallery.Execute(ctx, brandID, imageID,
		func(g *models.GalleryImage) error { return nil },
		func(g *models.GalleryImage) { patch.Apply(g, now) },
	)
	if err != nil {
		return nil, wrapContentErr(err, "gallery image")
	}
	return updated, nil
}

// DeleteGalleryImage removes an image of the caller's brand.
func (s *Service) DeleteGalleryImage(ctx context.Context, imageID uuid.UUID) error {
	brandID, err := adminBrand(ctx)
	if err != nil {
		return err
	}
	if err := s.gallery.Delete(ctx, brandID, imageID); err != nil {
		return wrapContentErr(err, "gallery image")
	}
	return nil
}
