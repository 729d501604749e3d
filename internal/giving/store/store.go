// Package store persists foundations and their donation ledger. The two move
// together: settling a donation appends a ledger entry and bumps the
// foundation's raised amount in one atomic step, so the raised total always
// equals the exact sum of settled donations.
package store

import (
	"context"

	"brandgate/internal/giving/models"
	id "brandgate/pkg/domain"
)

// FoundationStore is the persistence surface for fundraising campaigns and
// their immutable donation ledger.
type FoundationStore interface {
	CreateFoundation(ctx context.Context, f *models.Foundation) error

	// FindFoundation is an unscoped read for public campaign pages.
	FindFoundation(ctx context.Context, foundationID id.FoundationID) (*models.Foundation, error)

	ListFoundations(ctx context.Context, brandID id.BrandID) ([]*models.Foundation, error)

	// ExecuteFoundation runs validate then mutate against one foundation of
	// the given brand under the store lock. A foundation of another brand is
	// reported as missing.
	ExecuteFoundation(ctx context.Context, brandID id.BrandID, foundationID id.FoundationID,
		validate func(*models.Foundation) error, mutate func(*models.Foundation)) (*models.Foundation, error)

	DeleteFoundation(ctx context.Context, brandID id.BrandID, foundationID id.FoundationID) error

	// SettleDonation appends the donation and, when it names a foundation,
	// increments that foundation's raised amount. Both effects land atomically
	// or not at all.
	SettleDonation(ctx context.Context, d *models.Donation) error

	// ListDonations returns a brand's ledger, newest first. A non-nil
	// foundationID narrows it to one campaign.
	ListDonations(ctx context.Context, brandID id.BrandID, foundationID *id.FoundationID) ([]*models.Donation, error)
}
