// Package models defines the payment transaction and its state machine.
package models

import (
	"strings"
	"time"

	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/money"
)

// Status is the lifecycle state of a checkout. Pending is the only
// non-terminal state; paid, expired and failed are absorbing.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusExpired Status = "expired"
	StatusFailed  Status = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool { return s != StatusPending }

// ParseStatus validates a status string from storage or the processor.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusExpired, StatusFailed:
		return Status(s), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown transaction status %q", s)
	}
}

// Transaction is one checkout attempt against the payment processor.
//
// Invariants:
//   - status moves pending to exactly one of paid, expired or failed, and
//     never moves again
//   - Settled flips to true exactly once, together with the paid transition;
//     it is how a paid transaction is credited to the giving ledger at most
//     once no matter how many times the status is polled
type Transaction struct {
	ID           id.TransactionID `json:"id"`
	BrandID      id.BrandID       `json:"brand_id"`
	SessionID    string           `json:"session_id"`
	MemberID     *id.MemberID     `json:"member_id,omitempty"`
	FoundationID *id.FoundationID `json:"foundation_id,omitempty"`
	Category     string           `json:"category"`
	DonorName    string           `json:"donor_name"`
	DonorEmail   string           `json:"donor_email,omitempty"`
	Amount       money.Amount     `json:"amount"`
	Message      string           `json:"message,omitempty"`
	Status       Status           `json:"status"`
	Settled      bool             `json:"settled"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (t *Transaction) Clone() *Transaction {
	cp := *t
	if t.MemberID != nil {
		m := *t.MemberID
		cp.MemberID = &m
	}
	if t.FoundationID != nil {
		f := *t.FoundationID
		cp.FoundationID = &f
	}
	return &cp
}

func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}
	if strings.TrimSpace(t.SessionID) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "session id is required")
	}
	return nil
}

// CanTransition reports whether the transaction may move to the target
// status. Re-asserting the current terminal status is allowed so repeated
// polls are idempotent.
func (t *Transaction) CanTransition(to Status) error {
	if t.Status == to {
		return nil
	}
	if t.Status.IsTerminal() {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"transaction is already %s", t.Status)
	}
	return nil
}
