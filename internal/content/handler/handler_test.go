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

	"brandgate/internal/content/models"
	"brandgate/internal/content/service"
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
	tokens := jwttoken.New("content-handler-key", "brandgate-test", time.Hour)
	svc := service.New(logger)

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

func (f *fixture) adminCtx(brandID id.BrandID) context.Context {
	return requestcontext.WithPrincipal(context.Background(), requestcontext.Principal{
		Kind:        requestcontext.PrincipalAdmin,
		PrincipalID: id.NewAdminID().String(),
		BrandID:     brandID,
	})
}

func TestEventEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()

	t.Run("admin creates event", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/events", map[string]any{
			"title":                "REVIVE",
			"description":          "five days",
			"registration_enabled": true,
			"registration_fields":  map[string]bool{"category": true},
			"category_options":     []string{"General", "VIP"},
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
		testutil.AssertStatus(t, rr, http.StatusCreated)

		got := testutil.UnmarshalResponse[models.Event](t, rr)
		assert.Equal(t, "REVIVE", got.Title)
		assert.Equal(t, brandID, got.BrandID)
	})

	t.Run("anonymous create is 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/events", map[string]any{"title": "X"})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("public list requires brand_id", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/events"))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("public list filters by brand", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/events?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		events := testutil.UnmarshalResponse[[]models.Event](t, rr)
		require.Len(t, *events, 1)

		rr = testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/events?brand_id="+id.NewBrandID().String()))
		testutil.AssertStatusOK(t, rr)
		empty := testutil.UnmarshalResponse[[]models.Event](t, rr)
		assert.Empty(t, *empty)
	})

	t.Run("patch keeps unsupplied fields over the wire", func(t *testing.T) {
		events, err := f.svc.ListEvents(context.Background(), brandID)
		require.NoError(t, err)
		require.NotEmpty(t, events)
		event := events[0]

		req := testutil.NewJSONRequest(t, http.MethodPatch, "/events/"+event.ID.String(), map[string]any{
			"location": "New Venue",
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
		testutil.AssertStatusOK(t, rr)

		got := testutil.UnmarshalResponse[models.Event](t, rr)
		assert.Equal(t, "New Venue", got.Location)
		assert.Equal(t, "REVIVE", got.Title)
		assert.Equal(t, "five days", got.Description)
		assert.True(t, got.RegistrationEnabled)
	})

	t.Run("cross-brand patch is 404", func(t *testing.T) {
		events, err := f.svc.ListEvents(context.Background(), brandID)
		require.NoError(t, err)
		require.NotEmpty(t, events)

		req := testutil.NewJSONRequest(t, http.MethodPatch, "/events/"+events[0].ID.String(), map[string]any{
			"title": "hijacked",
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, id.NewBrandID())))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestAttendeeEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()

	event, err := f.svc.CreateEvent(f.adminCtx(brandID), service.CreateEventParams{
		Title:               "Open Event",
		RegistrationEnabled: true,
		RegistrationFields:  map[string]bool{"category": true},
	})
	require.NoError(t, err)

	t.Run("public registration", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/events/"+event.ID.String()+"/register", map[string]any{
			"name":     "John Smith",
			"email":    "john@example.com",
			"category": "General",
			"guests":   2,
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		got := testutil.UnmarshalResponse[models.Attendee](t, rr)
		assert.Equal(t, event.ID, got.EventID)
		assert.Equal(t, 2, got.Guests)
	})

	t.Run("invalid category is 400", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/events/"+event.ID.String()+"/register", map[string]any{
			"name":     "Jane",
			"email":    "jane@example.com",
			"category": "Astronaut",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("attendee listing is admin only and brand scoped", func(t *testing.T) {
		path := "/events/" + event.ID.String() + "/attendees"

		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, path))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, path), f.adminToken(t, brandID)))
		testutil.AssertStatusOK(t, rr)
		attendees := testutil.UnmarshalResponse[[]models.Attendee](t, rr)
		require.Len(t, *attendees, 1)

		rr = testutil.DoRequest(f.router, testutil.WithBearer(testutil.NewRequest(t, http.MethodGet, path), f.adminToken(t, id.NewBrandID())))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestAnnouncementEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()
	adminCtx := f.adminCtx(brandID)

	_, err := f.svc.CreateAnnouncement(adminCtx, service.CreateAnnouncementParams{
		Title: "Urgent Notice", Content: "now", IsUrgent: true,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateAnnouncement(adminCtx, service.CreateAnnouncementParams{
		Title: "Plain Notice", Content: "later",
	})
	require.NoError(t, err)

	t.Run("urgent query filter", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/announcements?brand_id="+brandID.String()+"&urgent=true"))
		testutil.AssertStatusOK(t, rr)

		items := testutil.UnmarshalResponse[[]models.Announcement](t, rr)
		require.Len(t, *items, 1)
		assert.Equal(t, "Urgent Notice", (*items)[0].Title)
	})

	t.Run("full list", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/announcements?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.Announcement](t, rr)
		assert.Len(t, *items, 2)
	})
}

func TestCountdownAndStreamEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()
	adminCtx := f.adminCtx(brandID)

	_, err := f.svc.CreateCountdown(adminCtx, service.CreateCountdownParams{
		Title: "Sunday Service", EventDate: time.Now().Add(24 * time.Hour), IsActive: true, Priority: 5,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateLiveStream(adminCtx, service.CreateLiveStreamParams{
		Title: "On Air", StreamURL: "https://youtube.com/watch?v=live", IsLive: true,
	})
	require.NoError(t, err)

	t.Run("countdown list is public", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/countdowns?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.Countdown](t, rr)
		require.Len(t, *items, 1)
	})

	t.Run("stream list is public", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/livestreams?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.LiveStream](t, rr)
		require.Len(t, *items, 1)
		assert.True(t, (*items)[0].IsLive)
	})

	t.Run("countdown create requires admin", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/countdowns", map[string]any{
			"title":      "Nope",
			"event_date": time.Now().Add(time.Hour),
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestBlogAndGalleryEndpoints(t *testing.T) {
	f := newFixture(t)
	brandID := id.NewBrandID()
	adminCtx := f.adminCtx(brandID)

	published, err := f.svc.CreateBlog(adminCtx, service.CreateBlogParams{
		Title: "Season of Renewal", Content: "full body", Author: "Pastor Jane", Published: true,
	})
	require.NoError(t, err)
	_, err = f.svc.CreateBlog(adminCtx, service.CreateBlogParams{
		Title: "Unfinished Draft", Content: "wip",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateGalleryImage(adminCtx, service.CreateGalleryImageParams{
		URL: "https://cdn.example.com/worship-1.jpg", Category: "worship",
	})
	require.NoError(t, err)
	_, err = f.svc.CreateGalleryImage(adminCtx, service.CreateGalleryImageParams{
		URL: "https://cdn.example.com/community-1.jpg", Category: "community",
	})
	require.NoError(t, err)

	t.Run("public blog list shows published posts only", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/blogs?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.Blog](t, rr)
		require.Len(t, *items, 1)
		assert.Equal(t, "Season of Renewal", (*items)[0].Title)
	})

	t.Run("public blog read by id", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/blogs/"+published.ID.String()))
		testutil.AssertStatusOK(t, rr)
		got := testutil.UnmarshalResponse[models.Blog](t, rr)
		assert.Equal(t, "Pastor Jane", got.Author)
	})

	t.Run("malformed blog id is 404", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/blogs/not-a-uuid"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("anonymous blog create is 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/blogs", map[string]any{
			"title": "Nope", "content": "x",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("admin patch publishes a draft", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/blogs", map[string]any{
			"title": "Second Post", "content": "body",
		})
		rr := testutil.DoRequest(f.router, testutil.WithBearer(req, f.adminToken(t, brandID)))
		testutil.AssertStatus(t, rr, http.StatusCreated)
		created := testutil.UnmarshalResponse[models.Blog](t, rr)

		patch := testutil.NewJSONRequest(t, http.MethodPatch, "/blogs/"+created.ID.String(),
			map[string]any{"published": true})
		rr = testutil.DoRequest(f.router, testutil.WithBearer(patch, f.adminToken(t, brandID)))
		testutil.AssertStatusOK(t, rr)

		got := testutil.UnmarshalResponse[models.Blog](t, rr)
		assert.True(t, got.Published)
		assert.Equal(t, "Second Post", got.Title)
	})

	t.Run("gallery category filter", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/gallery?brand_id="+brandID.String()+"&category=worship"))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.GalleryImage](t, rr)
		require.Len(t, *items, 1)
		assert.Equal(t, "worship", (*items)[0].Category)
	})

	t.Run("full gallery list", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet,
			"/gallery?brand_id="+brandID.String()))
		testutil.AssertStatusOK(t, rr)
		items := testutil.UnmarshalResponse[[]models.GalleryImage](t, rr)
		assert.Len(t, *items, 2)
	})

	t.Run("anonymous gallery upload is 401", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/gallery", map[string]any{
			"url": "https://cdn.example.com/x.jpg",
		})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
