package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	givingmodels "brandgate/internal/giving/models"
	givingservice "brandgate/internal/giving/service"
	givingstore "brandgate/internal/giving/store"
	"brandgate/internal/jwttoken"
	"brandgate/internal/payments/models"
	"brandgate/internal/payments/processor"
	"brandgate/internal/payments/service"
	"brandgate/internal/payments/store"
	id "brandgate/pkg/domain"
	"brandgate/pkg/money"
	"brandgate/pkg/requestcontext"
	"brandgate/pkg/testutil"
)

type fakeProvider struct {
	mu       sync.Mutex
	state    processor.SessionState
	sessions int
}

func (f *fakeProvider) CreateSession(_ context.Context, _ processor.CreateSessionParams) (processor.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions++
	return processor.Session{
		ID:          fmt.Sprintf("sess_%04d", f.sessions),
		CheckoutURL: "https://pay.example.com/c/" + fmt.Sprint(f.sessions),
	}, nil
}

func (f *fakeProvider) FetchState(_ context.Context, _ string) (processor.SessionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, nil
}

func (f *fakeProvider) setState(s processor.SessionState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

type fixture struct {
	router   chi.Router
	giving   *givingservice.Service
	provider *fakeProvider
	tokens   *jwttoken.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	tokens := jwttoken.New("payments-handler-key", "brandgate-test", time.Hour)
	givingSvc := givingservice.New(givingstore.NewInMemory(), logger, nil, nil)
	provider := &fakeProvider{state: processor.StateOpen}
	paySvc := service.New(store.NewInMemory(), provider, givingSvc, logger, nil)

	r := chi.NewRouter()
	New(paySvc, tokens, logger).Register(r)
	return &fixture{router: r, giving: givingSvc, provider: provider, tokens: tokens}
}

func (f *fixture) token(t *testing.T, kind requestcontext.PrincipalKind, principalID string, brandID id.BrandID) string {
	t.Helper()
	token, err := f.tokens.Generate(kind, principalID, brandID)
	require.NoError(t, err)
	return token
}

func (f *fixture) newFoundation(t *testing.T, brandID id.BrandID) *givingmodels.Foundation {
	t.Helper()
	ctx := requestcontext.WithPrincipal(context.Background(), requestcontext.Principal{
		Kind: requestcontext.PrincipalAdmin, PrincipalID: id.NewAdminID().String(), BrandID: brandID,
	})
	foundation, err := f.giving.CreateFoundation(ctx, givingservice.CreateFoundationParams{
		Title: "Building Fund", GoalAmount: money.FromCents(1_000_000), IsActive: true,
	})
	require.NoError(t, err)
	return foundation
}

func TestCheckoutEndpoint(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()
	foundation := f.newFoundation(t, brandID)

	t.Run("anonymous checkout", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/payments/create-checkout", map[string]any{
			"foundation_id": foundation.ID.String(),
			"donor_name":    "Grace Lee",
			"amount":        50.00,
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		got := testutil.UnmarshalResponse[service.Checkout](t, rr)
		assert.NotEmpty(t, got.CheckoutURL)
		assert.Equal(t, models.StatusPending, got.Transaction.Status)
		assert.Nil(t, got.Transaction.MemberID)
	})

	t.Run("zero amount is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/payments/create-checkout", map[string]any{
			"foundation_id": foundation.ID.String(),
			"amount":        0,
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("missing foundation and brand is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/payments/create-checkout", map[string]any{
			"amount": 10.00,
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("member token binds the transaction to the member", func(t *testing.T) {
		memberID := id.NewMemberID()
		req := testutil.NewJSONRequest(t, http.MethodPost, "/payments/create-checkout", map[string]any{
			"foundation_id": foundation.ID.String(),
			"category":      "Tithe",
			"donor_name":    "Member Donor",
			"amount":        20.00,
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req,
			f.token(t, requestcontext.PrincipalMember, memberID.String(), brandID)))
		testutil.AssertStatus(t, rr, http.StatusCreated)

		hist := testutil.NewRequest(t, http.MethodGet, "/payments/history")
		rr = testutil.DoRequest(f.router, testutil.WithBearer(hist,
			f.token(t, requestcontext.PrincipalMember, memberID.String(), brandID)))
		testutil.AssertStatusOK(t, rr)

		items := testutil.UnmarshalResponse[[]models.Transaction](t, rr)
		require.Len(t, *items, 1)
		assert.Equal(t, int64(2000), (*items)[0].Amount.Cents())
		assert.Equal(t, "Tithe", (*items)[0].Category)
	})
}

func TestStatusEndpointSettlesOnce(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()
	foundation := f.newFoundation(t, brandID)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/payments/create-checkout", map[string]any{
		"foundation_id": foundation.ID.String(),
		"donor_name":    "Grace Lee",
		"amount":        75.00,
	})
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	checkout := testutil.UnmarshalResponse[service.Checkout](t, rr)
	sessionID := checkout.Transaction.SessionID

	t.Run("pending while the session is open", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/payments/status/"+sessionID))
		testutil.AssertStatusOK(t, rr)
		txn := testutil.UnmarshalResponse[models.Transaction](t, rr)
		assert.Equal(t, models.StatusPending, txn.Status)
	})

	t.Run("paid settles and repeated polls stay settled", func(t *testing.T) {
		f.provider.setState(processor.StatePaid)

		for i := 0; i < 3; i++ {
			rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/payments/status/"+sessionID))
			testutil.AssertStatusOK(t, rr)
			txn := testutil.UnmarshalResponse[models.Transaction](t, rr)
			assert.Equal(t, models.StatusPaid, txn.Status)
			assert.True(t, txn.Settled)
		}

		got, err := f.giving.GetFoundation(context.Background(), foundation.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7500), got.RaisedAmount.Cents())
	})

	t.Run("unknown session is 404", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/payments/status/sess_bogus"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestHistoryAndTransactionsAuth(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()

	t.Run("history requires a member token", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/payments/history"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(
			testutil.NewRequest(t, http.MethodGet, "/payments/history"),
			f.token(t, requestcontext.PrincipalAdmin, id.NewAdminID().String(), brandID)))
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("transactions require an admin token", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/payments/transactions"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(
			testutil.NewRequest(t, http.MethodGet, "/payments/transactions"),
			f.token(t, requestcontext.PrincipalMember, id.NewMemberID().String(), brandID)))
		testutil.AssertStatus(t, rr, http.StatusForbidden)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(
			testutil.NewRequest(t, http.MethodGet, "/payments/transactions"),
			f.token(t, requestcontext.PrincipalAdmin, id.NewAdminID().String(), brandID)))
		testutil.AssertStatusOK(t, rr)
	})
}
