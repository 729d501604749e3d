// Package store persists payment transactions. SettlePaid is the heart of
// the exactly-once guarantee: the paid transition, the settlement side
// effect, and the settled marker land together under one lock, so a session
// polled by any number of concurrent callers credits the ledger once.
package store

import (
	"context"
	"time"

	"brandgate/internal/payments/models"
	id "brandgate/pkg/domain"
)

// TransactionStore is the persistence surface for checkout transactions.
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error

	// FindBySession looks a transaction up by its provider session id.
	// Session ids are unguessable provider tokens, so the read is unscoped.
	FindBySession(ctx context.Context, sessionID string) (*models.Transaction, error)

	ListByMember(ctx context.Context, brandID id.BrandID, memberID id.MemberID) ([]*models.Transaction, error)

	ListByBrand(ctx context.Context, brandID id.BrandID) ([]*models.Transaction, error)

	// ListPendingSessions returns session ids still pending that were created
	// before the cutoff, oldest first, for the reconciler to re-poll.
	ListPendingSessions(ctx context.Context, createdBefore time.Time, limit int) ([]string, error)

	// SettlePaid moves a pending transaction to paid and runs apply inside
	// the critical section. The context handed to apply carries the store's
	// open transaction when it has one, so SQL writes apply performs through
	// it commit and roll back together with the settled marker. If apply
	// fails the transaction stays pending and the error is returned. Calling
	// it on an already-paid transaction is a no-op returning the stored
	// transaction, which is what makes repeated polls idempotent.
	SettlePaid(ctx context.Context, sessionID string, now time.Time, apply func(context.Context, *models.Transaction) error) (*models.Transaction, error)

	// Transition moves a pending transaction to a non-paid terminal status.
	// Re-asserting the current status is a no-op.
	Transition(ctx context.Context, sessionID string, to models.Status, now time.Time) (*models.Transaction, error)
}
