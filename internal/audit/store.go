package audit

import (
	"context"

	id "brandgate/pkg/domain"
)

// Store persists audit events. Append-only by contract; nothing updates or
// deletes an event once written.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByBrand(ctx context.Context, brandID id.BrandID) ([]Event, error)
}
