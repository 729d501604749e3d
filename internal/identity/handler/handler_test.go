package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandgate/internal/audit"
	"brandgate/internal/identity/models"
	"brandgate/internal/identity/service"
	adminstore "brandgate/internal/identity/store/admin"
	memberstore "brandgate/internal/identity/store/member"
	"brandgate/internal/jwttoken"
	id "brandgate/pkg/domain"
	"brandgate/pkg/testutil"
)

type allowAllBrands struct{}

func (allowAllBrands) Exists(context.Context, id.BrandID) (bool, error) { return true, nil }

type fixture struct {
	router  chi.Router
	svc     *service.Service
	brandID id.BrandID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	tokens := jwttoken.New("handler-test-key", "brandgate-test", time.Hour)
	svc := service.New(
		adminstore.NewInMemory(),
		memberstore.NewInMemory(),
		allowAllBrands{},
		tokens,
		logger,
		nil,
		audit.NewPublisher(audit.NewInMemoryStore()),
	)

	r := chi.NewRouter()
	New(svc, tokens, logger).Register(r)

	return &fixture{router: r, svc: svc, brandID: id.NewBrandID()}
}

func TestAdminLoginEndpoint(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateAdmin(context.Background(), f.brandID, "admin@example.com", "correct-horse", "Pat Admin")
	require.NoError(t, err)

	t.Run("success returns token and admin", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "correct-horse",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusOK(t, rr)

		resp := testutil.UnmarshalResponse[adminLoginResponse](t, rr)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.Admin)
		assert.Equal(t, "admin@example.com", resp.Admin.Email)
		assert.Equal(t, f.brandID, resp.Admin.BrandID)
	})

	t.Run("password hash never leaks", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "correct-horse",
		})
		rr := testutil.DoRequest(f.router, req)
		assert.NotContains(t, rr.Body.String(), "password")
		assert.NotContains(t, rr.Body.String(), "$2a$")
	})

	t.Run("bad password is 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login", map[string]string{
			"email":    "admin@example.com",
			"password": "wrong",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("garbage body is 400", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/auth/login", "{not json")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestMemberRegisterEndpoint(t *testing.T) {
	f := newFixture(t)

	t.Run("success returns 201 with token and user", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users/register", map[string]string{
			"brand_id": f.brandID.String(),
			"email":    "new@example.com",
			"password": "long-enough-pw",
			"name":     "New Member",
			"phone":    "555-0100",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		resp := testutil.UnmarshalResponse[memberAuthResponse](t, rr)
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "new@example.com", resp.User.Email)
		assert.Equal(t, f.brandID, resp.User.BrandID)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		body := map[string]string{
			"brand_id": f.brandID.String(),
			"email":    "new@example.com",
			"password": "long-enough-pw",
			"name":     "Dup",
		}
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/users/register", body))
		testutil.AssertStatusAndError(t, rr, http.StatusConflict, "conflict")
	})

	t.Run("missing brand id is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users/register", map[string]string{
			"email":    "x@example.com",
			"password": "long-enough-pw",
			"name":     "X",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("short password is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users/register", map[string]string{
			"brand_id": f.brandID.String(),
			"email":    "y@example.com",
			"password": "short",
			"name":     "Y",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestMemberLoginEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _, err := f.svc.RegisterMember(ctx, service.RegisterMemberParams{
		BrandID:  f.brandID,
		Email:    "member@example.com",
		Password: "long-enough-pw",
		Name:     "Member",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users/login", map[string]string{
			"brand_id": f.brandID.String(),
			"email":    "member@example.com",
			"password": "long-enough-pw",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusOK(t, rr)

		resp := testutil.UnmarshalResponse[memberAuthResponse](t, rr)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "member@example.com", resp.User.Email)
	})

	t.Run("wrong brand id is 401, not 404", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users/login", map[string]string{
			"brand_id": id.NewBrandID().String(),
			"email":    "member@example.com",
			"password": "long-enough-pw",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("malformed brand id is 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/users/login", map[string]string{
			"brand_id": "not-a-uuid",
			"email":    "member@example.com",
			"password": "long-enough-pw",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})
}

func TestMemberStatusEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, member, err := f.svc.RegisterMember(ctx, service.RegisterMemberParams{
		BrandID:  f.brandID,
		Email:    "member@example.com",
		Password: "long-enough-pw",
		Name:     "Member",
	})
	require.NoError(t, err)

	admin, err := f.svc.CreateAdmin(ctx, f.brandID, "boss@example.com", "correct-horse", "Boss")
	require.NoError(t, err)
	adminToken, _, err := f.svc.IssueAdminToken(ctx, admin.Email, "correct-horse")
	require.NoError(t, err)

	statusURL := "/users/" + member.ID.String() + "/status"

	t.Run("deactivation blocks the member's login", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, statusURL, map[string]any{
			"is_active": false,
		}), adminToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusOK(t, rr)

		got := testutil.UnmarshalResponse[models.Member](t, rr)
		assert.False(t, got.IsActive)

		login := testutil.NewJSONRequest(t, http.MethodPost, "/users/login", map[string]string{
			"brand_id": f.brandID.String(),
			"email":    "member@example.com",
			"password": "long-enough-pw",
		})
		rr = testutil.DoRequest(f.router, login)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("reactivation restores login", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, statusURL, map[string]any{
			"is_active": true,
		}), adminToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusOK(t, rr)

		login := testutil.NewJSONRequest(t, http.MethodPost, "/users/login", map[string]string{
			"brand_id": f.brandID.String(),
			"email":    "member@example.com",
			"password": "long-enough-pw",
		})
		rr = testutil.DoRequest(f.router, login)
		testutil.AssertStatusOK(t, rr)
	})

	t.Run("missing is_active is 400", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, statusURL, map[string]any{}), adminToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("member token is 403", func(t *testing.T) {
		memberToken, _, err := f.svc.IssueMemberToken(ctx, f.brandID, "member@example.com", "long-enough-pw")
		require.NoError(t, err)
		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, statusURL, map[string]any{
			"is_active": false,
		}), memberToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("admin of another brand is 404", func(t *testing.T) {
		other, err := f.svc.CreateAdmin(ctx, id.NewBrandID(), "other@example.com", "correct-horse", "Other")
		require.NoError(t, err)
		otherToken, _, err := f.svc.IssueAdminToken(ctx, other.Email, "correct-horse")
		require.NoError(t, err)

		req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPut, statusURL, map[string]any{
			"is_active": false,
		}), otherToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestMeEndpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	token, member, err := f.svc.RegisterMember(ctx, service.RegisterMemberParams{
		BrandID:  f.brandID,
		Email:    "me@example.com",
		Password: "long-enough-pw",
		Name:     "Me",
	})
	require.NoError(t, err)

	t.Run("returns the caller's record", func(t *testing.T) {
		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/users/me"), token)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatusOK(t, rr)

		got := testutil.UnmarshalResponse[models.Member](t, rr)
		assert.Equal(t, member.ID, got.ID)
		assert.Equal(t, "me@example.com", got.Email)
	})

	t.Run("no token is 401", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/users/me"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("admin token is 403", func(t *testing.T) {
		admin, err := f.svc.CreateAdmin(ctx, f.brandID, "boss@example.com", "correct-horse", "Boss")
		require.NoError(t, err)
		adminToken, _, err := f.svc.IssueAdminToken(ctx, admin.Email, "correct-horse")
		require.NoError(t, err)

		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/users/me"), adminToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		expired := jwttoken.New("handler-test-key", "brandgate-test", -time.Minute)
		tok, err := expired.Generate("member", member.ID.String(), f.brandID)
		require.NoError(t, err)

		req := testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, "/users/me"), tok)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
