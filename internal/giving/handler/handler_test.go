package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandgate/internal/giving/models"
	"brandgate/internal/giving/service"
	"brandgate/internal/giving/store"
	"brandgate/internal/jwttoken"
	id "brandgate/pkg/domain"
	"brandgate/pkg/requestcontext"
	"brandgate/pkg/testutil"
)

type fixture struct {
	router chi.Router
	svc    *service.Service
	tokens *jwttoken.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	tokens := jwttoken.New("giving-handler-key", "brandgate-test", time.Hour)
	svc := service.New(store.NewInMemory(), logger, nil, nil)

	r := chi.NewRouter()
	New(svc, tokens, logger).Register(r)
	return &fixture{router: r, svc: svc, tokens: tokens}
}

func (f *fixture) adminToken(t *testing.T, brandID id.BrandID) string {
	t.Helper()
	token, err := f.tokens.Generate(requestcontext.PrincipalAdmin, id.NewAdminID().String(), brandID)
	require.NoError(t, err)
	return token
}

func TestFoundationEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()

	t.Run("admin creates foundation", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/foundations", map[string]any{
			"title":       "Building Fund",
			"description": "new sanctuary",
			"goal_amount": 10000.00,
			"is_active":   true,
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
		testutil.AssertStatus(t, rr, http.StatusCreated)

		got := testutil.UnmarshalResponse[models.Foundation](t, rr)
		assert.Equal(t, "Building Fund", got.Title)
		assert.Equal(t, int64(1_000_000), got.GoalAmount.Cents())
		assert.Equal(t, int64(0), got.RaisedAmount.Cents())
	})

	t.Run("anonymous create is 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/foundations", map[string]any{"title": "X"})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("public list and get", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/foundations?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.Foundation](t, rr)
		require.Len(t, *items, 1)

		rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/foundations/"+(*items)[0].ID.String()))
		testutil.AssertStatusOK(t, rr)
	})

	t.Run("patch keeps unsupplied fields over the wire", func(t *testing.T) {
		items := f.listFoundations(t, brandID)
		require.NotEmpty(t, items)

		req := testutil.NewJSONRequest(t, http.MethodPatch, "/foundations/"+items[0].ID.String(), map[string]any{
			"image_url": "https://cdn.example.com/fund.jpg",
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
		testutil.AssertStatusOK(t, rr)

		got := testutil.UnmarshalResponse[models.Foundation](t, rr)
		assert.Equal(t, "https://cdn.example.com/fund.jpg", got.ImageURL)
		assert.Equal(t, "Building Fund", got.Title)
		assert.Equal(t, "new sanctuary", got.Description)
		assert.True(t, got.IsActive)
	})

	t.Run("raised amount is not patchable", func(t *testing.T) {
		items := f.listFoundations(t, brandID)
		require.NotEmpty(t, items)

		req := testutil.NewJSONRequest(t, http.MethodPatch, "/foundations/"+items[0].ID.String(), map[string]any{
			"raised_amount": 99999.00,
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
		testutil.AssertStatusOK(t, rr)

		got := testutil.UnmarshalResponse[models.Foundation](t, rr)
		assert.Equal(t, int64(0), got.RaisedAmount.Cents())
	})

	t.Run("cross-brand patch is 404", func(t *testing.T) {
		items := f.listFoundations(t, brandID)
		require.NotEmpty(t, items)

		req := testutil.NewJSONRequest(t, http.MethodPatch, "/foundations/"+items[0].ID.String(), map[string]any{
			"title": "hijacked",
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, id.NewBrandID())))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func (f *fixture) listFoundations(t *testing.T, brandID id.BrandID) []models.Foundation {
	t.Helper()
	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/foundations?brand_id="+brandID.String()))
	testutil.AssertStatusOK(t, rr)
	return *testutil.UnmarshalResponse[[]models.Foundation](t, rr)
}

func TestDonationEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/foundations", map[string]any{
		"title": "Missions", "goal_amount": 5000.00, "is_active": true,
	})
	rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	foundation := testutil.UnmarshalResponse[models.Foundation](t, rr)

	t.Run("public donation settles", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/foundations/"+foundation.ID.String()+"/donate", map[string]any{
			"donor_name": "Grace Lee",
			"amount":     25.50,
			"message":    "keep going",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		got := testutil.UnmarshalResponse[models.Donation](t, rr)
		assert.Equal(t, int64(2550), got.Amount.Cents())

		rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/foundations/"+foundation.ID.String()))
		testutil.AssertStatusOK(t, rr)
		after := testutil.UnmarshalResponse[models.Foundation](t, rr)
		assert.Equal(t, int64(2550), after.RaisedAmount.Cents())
	})

	t.Run("zero amount is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/foundations/"+foundation.ID.String()+"/donate", map[string]any{
			"donor_name": "Grace", "amount": 0,
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("ledger is admin only", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/donations"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(
			testutil.NewRequest(t, http.MethodGet, "/donations"), f.adminToken(t, brandID)))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.Donation](t, rr)
		require.Len(t, *items, 1)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(
			testutil.NewRequest(t, http.MethodGet, "/donations"), f.adminToken(t, id.NewBrandID())))
		testutil.AssertStatusOK(t, rr)
		other := testutil.UnmarshalResponse[[]models.Donation](t, rr)
		assert.Empty(t, *other)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()

	req := testutil.NewJSONRequest(t, http.MethodPost, "/giving-categories", map[string]any{
		"name": "Tithe", "is_active": true,
	})
	rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	t.Run("public list", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/giving-categories?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.GivingCategory](t, rr)
		require.Len(t, *items, 1)
		assert.Equal(t, "Tithe", (*items)[0].Name)
	})

	t.Run("list requires brand_id", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/giving-categories"))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}
