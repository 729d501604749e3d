// Package service implements the checkout engine. A checkout opens a hosted
// session with the payment provider and records a pending transaction;
// polling the session drives the transaction to a terminal status. The paid
// transition settles into the giving ledger exactly once, no matter how many
// clients poll the same session concurrently.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	givingmodels "brandgate/internal/giving/models"
	giving "brandgate/internal/giving/service"
	"brandgate/internal/payments/metrics"
	"brandgate/internal/payments/models"
	"brandgate/internal/payments/processor"
	"brandgate/internal/payments/store"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/sentinel"
	"brandgate/pkg/requestcontext"
)

// GivingService is the slice of the giving feature the payment engine needs:
// resolving the target foundation at checkout time and crediting the ledger
// at settlement time.
type GivingService interface {
	GetFoundation(ctx context.Context, foundationID id.FoundationID) (*givingmodels.Foundation, error)
	ApplySettlement(ctx context.Context, p giving.SettlementParams) (*givingmodels.Donation, error)
}

type Service struct {
	transactions store.TransactionStore
	provider     processor.Client
	giving       GivingService
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func New(transactions store.TransactionStore, provider processor.Client, givingSvc GivingService, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		transactions: transactions,
		provider:     provider,
		giving:       givingSvc,
		logger:       logger,
		metrics:      m,
	}
}

func wrapPaymentErr(err error) error {
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "transaction not found")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeConflict, "session already recorded")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "payment store failure")
	}
}

// CreateCheckoutParams carries one checkout request. FoundationID is
// optional: without it the paid transaction itself is the record of the
// gift, scoped by BrandID.
type CreateCheckoutParams struct {
	BrandID      id.BrandID
	FoundationID *id.FoundationID
	Category     string
	DonorName    string
	DonorEmail   string
	Amount       money.Amount
	Message      string
	SuccessURL   string
	CancelURL    string
}

// Checkout is the reply to a checkout request: where to send the donor and
// the session to poll afterwards.
type Checkout struct {
	Transaction *models.Transaction `json:"transaction"`
	CheckoutURL string              `json:"checkout_url"`
}

// CreateCheckout validates the request, opens a provider session, and
// records a pending transaction for it.
func (s *Service) CreateCheckout(ctx context.Context, p CreateCheckoutParams) (*Checkout, error) {
	if !p.Amount.IsPositive() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "amount must be positive")
	}

	brandID := p.BrandID
	category := strings.TrimSpace(p.Category)
	description := "General donation"
	if category != "" {
		description = category
	}
	if p.FoundationID != nil {
		foundation, err := s.giving.GetFoundation(ctx, *p.FoundationID)
		if err != nil {
			return nil, err
		}
		if err := foundation.CanAcceptDonation(); err != nil {
			return nil, err
		}
		brandID = foundation.BrandID
		description = foundation.Title
		if category == "" {
			category = "foundation"
		}
	}
	if category == "" {
		category = "general"
	}
	if brandID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "brand id is required")
	}

	now := requestcontext.Now(ctx)
	txnID := id.NewTransactionID()

	session, err := s.provider.CreateSession(ctx, processor.CreateSessionParams{
		Amount:      p.Amount,
		Description: description,
		CustomerRef: txnID.String(),
		SuccessURL:  p.SuccessURL,
		CancelURL:   p.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:           txnID,
		BrandID:      brandID,
		SessionID:    session.ID,
		FoundationID: p.FoundationID,
		Category:     category,
		DonorName:    p.DonorName,
		DonorEmail:   p.DonorEmail,
		Amount:       p.Amount,
		Message:      p.Message,
		Status:       models.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if principal := requestcontext.GetPrincipal(ctx); principal.IsMember() && principal.BrandID == brandID {
		if memberID, err := id.ParseMemberID(principal.PrincipalID); err == nil {
			txn.MemberID = &memberID
		}
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}
	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, wrapPaymentErr(err)
	}

	s.metrics.IncrementCheckout()
	s.logger.InfoContext(ctx, "checkout session opened",
		slog.String("transaction_id", txn.ID.String()),
		slog.String("session_id", session.ID),
		slog.String("amount", txn.Amount.String()),
	)
	return &Checkout{Transaction: txn, CheckoutURL: session.CheckoutURL}, nil
}

// GetStatus returns the current state of a checkout, polling the provider
// when the transaction is still pending. A paid answer settles the
// transaction; repeating the call afterwards returns the stored transaction
// without touching the ledger again.
func (s *Service) GetStatus(ctx context.Context, sessionID string) (*models.Transaction, error) {
	txn, err := s.transactions.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	if txn.Status.IsTerminal() {
		return txn, nil
	}

	state, err := s.provider.FetchState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	switch state {
	case processor.StateOpen:
		return txn, nil

	case processor.StatePaid:
		settled, err := s.transactions.SettlePaid(ctx, sessionID, now, func(applyCtx context.Context, t *models.Transaction) error {
			if t.FoundationID == nil {
				return nil
			}
			// applyCtx carries the store's open transaction, keeping the
			// ledger credit and the settled marker in one commit.
			_, err := s.giving.ApplySettlement(applyCtx, giving.SettlementParams{
				BrandID:      t.BrandID,
				FoundationID: *t.FoundationID,
				DonorName:    t.DonorName,
				DonorEmail:   t.DonorEmail,
				Amount:       t.Amount,
				Message:      t.Message,
				SettledAt:    now,
			})
			return err
		})
		if err != nil {
			return nil, wrapPaymentErr(err)
		}
		if settled.UpdatedAt.Equal(now) {
			s.metrics.ObserveTransition(string(models.StatusPaid), settled.Amount.Float64())
			s.logger.InfoContext(ctx, "transaction settled",
				slog.String("transaction_id", settled.ID.String()),
				slog.String("session_id", sessionID),
				slog.String("amount", settled.Amount.String()),
			)
		}
		return settled, nil

	case processor.StateExpired, processor.StateFailed:
		to := models.StatusExpired
		if state == processor.StateFailed {
			to = models.StatusFailed
		}
		updated, err := s.transactions.Transition(ctx, sessionID, to, now)
		if err != nil {
			return nil, wrapPaymentErr(err)
		}
		s.metrics.ObserveTransition(string(to), 0)
		return updated, nil

	default:
		return nil, dErrors.Newf(dErrors.CodeInternal, "unexpected provider state %q", state)
	}
}

// ListHistory returns the calling member's own transactions, newest first.
func (s *Service) ListHistory(ctx context.Context) ([]*models.Transaction, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsMember() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	memberID, err := id.ParseMemberID(principal.PrincipalID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	items, err := s.transactions.ListByMember(ctx, principal.BrandID, memberID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	return items, nil
}

// ListTransactions returns every transaction of the caller's brand, newest
// first. Admin only.
func (s *Service) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	principal := requestcontext.GetPrincipal(ctx)
	if !principal.IsAdmin() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	items, err := s.transactions.ListByBrand(ctx, principal.BrandID)
	if err != nil {
		return nil, wrapPaymentErr(err)
	}
	return items, nil
}
