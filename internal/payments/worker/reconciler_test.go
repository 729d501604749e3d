package worker

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	givingservice "brandgate/internal/giving/service"
	givingstore "brandgate/internal/giving/store"
	"brandgate/internal/payments/models"
	"brandgate/internal/payments/processor"
	"brandgate/internal/payments/service"
	"brandgate/internal/payments/store"
	id "brandgate/pkg/domain"
	"brandgate/pkg/money"
	"brandgate/pkg/requestcontext"
)

type paidProvider struct {
	mu      sync.Mutex
	fetches int
}

func (p *paidProvider) CreateSession(_ context.Context, _ processor.CreateSessionParams) (processor.Session, error) {
	return processor.Session{ID: "unused", CheckoutURL: "https://pay.example.com"}, nil
}

func (p *paidProvider) FetchState(_ context.Context, _ string) (processor.SessionState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches++
	return processor.StatePaid, nil
}

func TestSweepSettlesStalePendingSessions(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	transactions := store.NewInMemory()
	givingSvc := givingservice.New(givingstore.NewInMemory(), logger, nil, nil)
	provider := &paidProvider{}
	paySvc := service.New(transactions, provider, givingSvc, logger, nil)

	brandID := id.NewBrandID()
	adminCtx := requestcontext.WithPrincipal(context.Background(), requestcontext.Principal{
		Kind: requestcontext.PrincipalAdmin, PrincipalID: id.NewAdminID().String(), BrandID: brandID,
	})
	foundation, err := givingSvc.CreateFoundation(adminCtx, givingservice.CreateFoundationParams{
		Title: "Sweep Fund", IsActive: true,
	})
	require.NoError(t, err)

	stale := func(sessionID string, age time.Duration) *models.Transaction {
		created := time.Now().Add(-age)
		return &models.Transaction{
			ID:           id.NewTransactionID(),
			BrandID:      brandID,
			SessionID:    sessionID,
			FoundationID: &foundation.ID,
			DonorName:    "Sweeper",
			Amount:       money.FromCents(1200),
			Status:       models.StatusPending,
			CreatedAt:    created,
			UpdatedAt:    created,
		}
	}
	require.NoError(t, transactions.Create(context.Background(), stale("sess_old_1", time.Hour)))
	require.NoError(t, transactions.Create(context.Background(), stale("sess_old_2", time.Hour)))
	require.NoError(t, transactions.Create(context.Background(), stale("sess_fresh", time.Second)))

	r := NewReconciler(transactions, paySvc, logger, Config{MinAge: 2 * time.Minute})
	r.sweep(context.Background())

	for _, sessionID := range []string{"sess_old_1", "sess_old_2"} {
		txn, err := transactions.FindBySession(context.Background(), sessionID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPaid, txn.Status)
		assert.True(t, txn.Settled)
	}

	fresh, err := transactions.FindBySession(context.Background(), "sess_fresh")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, fresh.Status, "fresh sessions are left to the client")

	got, err := givingSvc.GetFoundation(context.Background(), foundation.ID)
	require.NoError(t, err)
	assert.Equal(t, money.FromCents(2400), got.RaisedAmount)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	transactions := store.NewInMemory()
	givingSvc := givingservice.New(givingstore.NewInMemory(), logger, nil, nil)
	paySvc := service.New(transactions, &paidProvider{}, givingSvc, logger, nil)

	r := NewReconciler(transactions, paySvc, logger, Config{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("reconciler did not stop after cancellation")
	}
}
