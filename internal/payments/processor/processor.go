// Package processor talks to the external checkout provider. The provider
// hosts the payment page; this process only creates sessions and polls their
// state, never touching card data.
package processor

import (
	"context"

	"brandgate/pkg/money"
)

// SessionState is the provider's view of a checkout session.
type SessionState string

const (
	StateOpen    SessionState = "open"
	StatePaid    SessionState = "paid"
	StateExpired SessionState = "expired"
	StateFailed  SessionState = "failed"
)

// CreateSessionParams describes the checkout to open with the provider.
type CreateSessionParams struct {
	Amount      money.Amount
	Description string
	CustomerRef string
	SuccessURL  string
	CancelURL   string
}

// Session is a newly created checkout session.
type Session struct {
	ID          string
	CheckoutURL string
}

// Client is the provider operations the payment engine depends on.
type Client interface {
	// CreateSession opens a hosted checkout and returns its id and URL.
	CreateSession(ctx context.Context, p CreateSessionParams) (Session, error)

	// FetchState returns the provider-side state of a session.
	FetchState(ctx context.Context, sessionID string) (SessionState, error)
}
