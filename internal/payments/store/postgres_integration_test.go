//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	givingmodels "brandgate/internal/giving/models"
	givingstore "brandgate/internal/giving/store"
	"brandgate/internal/payments/models"
	"brandgate/internal/payments/store"
	id "brandgate/pkg/domain"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/sentinel"
	"brandgate/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.Migrate(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "payment_transactions")
	s.Require().NoError(err)
}

func newTestTransaction(brandID id.BrandID, sessionID string) *models.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Transaction{
		ID:        id.NewTransactionID(),
		BrandID:   brandID,
		SessionID: sessionID,
		DonorName: "Donor",
		Amount:    money.FromCents(5000),
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	brandID := id.NewBrandID()

	foundationID := id.NewFoundationID()
	txn := newTestTransaction(brandID, "sess_find")
	txn.FoundationID = &foundationID
	s.Require().NoError(s.store.Create(ctx, txn))

	found, err := s.store.FindBySession(ctx, "sess_find")
	s.Require().NoError(err)
	s.Equal(txn.ID, found.ID)
	s.Equal(models.StatusPending, found.Status)
	s.Require().NotNil(found.FoundationID)
	s.Equal(foundationID, *found.FoundationID)

	_, err = s.store.FindBySession(ctx, "sess_missing")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Run("duplicate session is rejected", func() {
		dup := newTestTransaction(brandID, "sess_find")
		s.Error(s.store.Create(ctx, dup))
	})
}

// TestConcurrentSettlePaid verifies that concurrent settlement attempts on
// one session run the apply callback exactly once.
func (s *PostgresStoreSuite) TestConcurrentSettlePaid() {
	ctx := context.Background()
	brandID := id.NewBrandID()
	txn := newTestTransaction(brandID, "sess_race")
	s.Require().NoError(s.store.Create(ctx, txn))

	const goroutines = 20
	var applied atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.SettlePaid(ctx, "sess_race", time.Now().UTC(), func(context.Context, *models.Transaction) error {
				applied.Add(1)
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal(int32(1), applied.Load(), "apply should run exactly once")

	found, err := s.store.FindBySession(ctx, "sess_race")
	s.Require().NoError(err)
	s.Equal(models.StatusPaid, found.Status)
	s.True(found.Settled)
}

func (s *PostgresStoreSuite) TestSettleFailureLeavesPending() {
	ctx := context.Background()
	txn := newTestTransaction(id.NewBrandID(), "sess_fail")
	s.Require().NoError(s.store.Create(ctx, txn))

	applyErr := errors.New("ledger rejected the settlement")
	_, err := s.store.SettlePaid(ctx, "sess_fail", time.Now().UTC(), func(context.Context, *models.Transaction) error {
		return applyErr
	})
	s.ErrorIs(err, applyErr)

	found, err := s.store.FindBySession(ctx, "sess_fail")
	s.Require().NoError(err)
	s.Equal(models.StatusPending, found.Status)
	s.False(found.Settled)
}

// TestSettleApplyJoinsSettlementTransaction drives a real giving store
// through the apply callback. The callback context carries the settlement
// transaction, so the ledger credit and the settled marker either both
// commit or both roll back.
func (s *PostgresStoreSuite) TestSettleApplyJoinsSettlementTransaction() {
	ctx := context.Background()
	giving := givingstore.NewPostgres(s.postgres.DB)
	s.Require().NoError(giving.Migrate(ctx))

	brandID := id.NewBrandID()
	now := time.Now().UTC().Truncate(time.Microsecond)
	foundation := &givingmodels.Foundation{
		ID:         id.NewFoundationID(),
		BrandID:    brandID,
		Title:      "Roof Repair",
		GoalAmount: money.FromCents(100_000),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.Require().NoError(giving.CreateFoundation(ctx, foundation))

	txn := newTestTransaction(brandID, "sess_atomic")
	txn.FoundationID = &foundation.ID
	s.Require().NoError(s.store.Create(ctx, txn))

	newDonation := func(t *models.Transaction) *givingmodels.Donation {
		return &givingmodels.Donation{
			ID:           id.NewDonationID(),
			BrandID:      t.BrandID,
			FoundationID: t.FoundationID,
			DonorName:    t.DonorName,
			Amount:       t.Amount,
			CreatedAt:    now,
		}
	}

	s.Run("a failure after the ledger write rolls both back", func() {
		applyErr := errors.New("settlement interrupted")
		_, err := s.store.SettlePaid(ctx, "sess_atomic", now, func(applyCtx context.Context, t *models.Transaction) error {
			s.Require().NoError(giving.SettleDonation(applyCtx, newDonation(t)))
			return applyErr
		})
		s.ErrorIs(err, applyErr)

		found, err := s.store.FindBySession(ctx, "sess_atomic")
		s.Require().NoError(err)
		s.Equal(models.StatusPending, found.Status)
		s.False(found.Settled)

		f, err := giving.FindFoundation(ctx, foundation.ID)
		s.Require().NoError(err)
		s.Equal(int64(0), f.RaisedAmount.Cents())

		donations, err := giving.ListDonations(ctx, brandID, nil)
		s.Require().NoError(err)
		s.Empty(donations)
	})

	s.Run("ledger credit and settled marker commit together", func() {
		settled, err := s.store.SettlePaid(ctx, "sess_atomic", now, func(applyCtx context.Context, t *models.Transaction) error {
			return giving.SettleDonation(applyCtx, newDonation(t))
		})
		s.Require().NoError(err)
		s.Equal(models.StatusPaid, settled.Status)
		s.True(settled.Settled)

		f, err := giving.FindFoundation(ctx, foundation.ID)
		s.Require().NoError(err)
		s.Equal(txn.Amount.Cents(), f.RaisedAmount.Cents())

		donations, err := giving.ListDonations(ctx, brandID, nil)
		s.Require().NoError(err)
		s.Len(donations, 1)
	})
}

func (s *PostgresStoreSuite) TestTransitionIsAbsorbing() {
	ctx := context.Background()
	txn := newTestTransaction(id.NewBrandID(), "sess_expire")
	s.Require().NoError(s.store.Create(ctx, txn))

	updated, err := s.store.Transition(ctx, "sess_expire", models.StatusExpired, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(models.StatusExpired, updated.Status)

	// Re-asserting the same status is idempotent.
	_, err = s.store.Transition(ctx, "sess_expire", models.StatusExpired, time.Now().UTC())
	s.NoError(err)

	// Settling an expired session is refused.
	_, err = s.store.SettlePaid(ctx, "sess_expire", time.Now().UTC(), func(context.Context, *models.Transaction) error {
		s.Fail("apply must not run for a terminal transaction")
		return nil
	})
	s.Error(err)
}

func (s *PostgresStoreSuite) TestListPendingSessions() {
	ctx := context.Background()
	brandID := id.NewBrandID()

	old := newTestTransaction(brandID, "sess_old")
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	s.Require().NoError(s.store.Create(ctx, old))

	fresh := newTestTransaction(brandID, "sess_new")
	s.Require().NoError(s.store.Create(ctx, fresh))

	paid := newTestTransaction(brandID, "sess_paid")
	paid.CreatedAt = time.Now().UTC().Add(-time.Hour)
	s.Require().NoError(s.store.Create(ctx, paid))
	_, err := s.store.SettlePaid(ctx, "sess_paid", time.Now().UTC(), func(context.Context, *models.Transaction) error { return nil })
	s.Require().NoError(err)

	sessions, err := s.store.ListPendingSessions(ctx, time.Now().UTC().Add(-time.Minute), 10)
	s.Require().NoError(err)
	s.Equal([]string{"sess_old"}, sessions)
}

func (s *PostgresStoreSuite) TestMemberScopedHistory() {
	ctx := context.Background()
	brandID := id.NewBrandID()
	memberID := id.NewMemberID()

	mine := newTestTransaction(brandID, "sess_mine")
	mine.MemberID = &memberID
	s.Require().NoError(s.store.Create(ctx, mine))
	s.Require().NoError(s.store.Create(ctx, newTestTransaction(brandID, "sess_anon")))

	history, err := s.store.ListByMember(ctx, brandID, memberID)
	s.Require().NoError(err)
	s.Len(history, 1)
	s.Equal("sess_mine", history[0].SessionID)

	all, err := s.store.ListByBrand(ctx, brandID)
	s.Require().NoError(err)
	s.Len(all, 2)
}
