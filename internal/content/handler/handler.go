package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandgate/internal/content/models"
	"brandgate/internal/content/service"
	"brandgate/internal/platform/middleware"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/httputil"
	"brandgate/pkg/requestcontext"
)

// Service defines the content operations the handler depends on.
type Service interface {
	CreateEvent(ctx context.Context, p service.CreateEventParams) (*models.Event, error)
	ListEvents(ctx context.Context, brandID id.BrandID) ([]*models.Event, error)
	GetEvent(ctx context.Context, eventID id.EventID) (*models.Event, error)
	PatchEvent(ctx context.Context, eventID id.EventID, patch *models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, eventID id.EventID) error
	RegisterAttendee(ctx context.Context, eventID id.EventID, p service.RegisterAttendeeParams) (*models.Attendee, error)
	ListAttendees(ctx context.Context, eventID id.EventID) ([]*models.Attendee, error)
	PatchAttendee(ctx context.Context, attendeeID id.AttendeeID, patch *models.AttendeePatch) (*models.Attendee, error)

	CreateAnnouncement(ctx context.Context, p service.CreateAnnouncementParams) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context, brandID id.BrandID, urgentOnly bool) ([]*models.Announcement, error)
	GetAnnouncement(ctx context.Context, announcementID id.AnnouncementID) (*models.Announcement, error)
	PatchAnnouncement(ctx context.Context, announcementID id.AnnouncementID, patch *models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, announcementID id.AnnouncementID) error

	CreateMinistry(ctx context.Context, p service.CreateMinistryParams) (*models.Ministry, error)
	ListMinistries(ctx context.Context, brandID id.BrandID) ([]*models.Ministry, error)
	GetMinistry(ctx context.Context, ministryID id.MinistryID) (*models.Ministry, error)
	PatchMinistry(ctx context.Context, ministryID id.MinistryID, patch *models.MinistryPatch) (*models.Ministry, error)
	DeleteMinistry(ctx context.Context, ministryID id.MinistryID) error

	CreateBlog(ctx context.Context, p service.CreateBlogParams) (*models.Blog, error)
	ListBlogs(ctx context.Context, brandID id.BrandID) ([]*models.Blog, error)
	GetBlog(ctx context.Context, blogID uuid.UUID) (*models.Blog, error)
	PatchBlog(ctx context.Context, blogID uuid.UUID, patch *models.BlogPatch) (*models.Blog, error)
	DeleteBlog(ctx context.Context, blogID uuid.UUID) error

	CreateGalleryImage(ctx context.Context, p service.CreateGalleryImageParams) (*models.GalleryImage, error)
	ListGalleryImages(ctx context.Context, brandID id.BrandID, category string) ([]*models.GalleryImage, error)
	PatchGalleryImage(ctx context.Context, imageID uuid.UUID, patch *models.GalleryImagePatch) (*models.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, imageID uuid.UUID) error

	CreateCountdown(ctx context.Context, p service.CreateCountdownParams) (*models.Countdown, error)
	ListCountdowns(ctx context.Context, brandID id.BrandID) ([]*models.Countdown, error)
	PatchCountdown(ctx context.Context, countdownID uuid.UUID, patch *models.CountdownPatch) (*models.Countdown, error)
	DeleteCountdown(ctx context.Context, countdownID uuid.UUID) error

	CreateLiveStream(ctx context.Context, p service.CreateLiveStreamParams) (*models.LiveStream, error)
	ListLiveStreams(ctx context.Context, brandID id.BrandID) ([]*models.LiveStream, error)
	PatchLiveStream(ctx context.Context, streamID uuid.UUID, patch *models.LiveStreamPatch) (*models.LiveStream, error)
	DeleteLiveStream(ctx context.Context, streamID uuid.UUID) error
}

type Handler struct {
	content  Service
	verifier middleware.TokenVerifier
	logger   *slog.Logger
}

func New(content Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{content: content, verifier: verifier, logger: logger}
}

// Register mounts the content routes. Reads and event registration are
// public; everything else is admin-only.
func (h *Handler) Register(r chi.Router) {
	r.Get("/events", h.handleListEvents)
	r.Get("/events/{eventID}", h.handleGetEvent)
	r.Post("/events/{eventID}/register", h.handleRegisterAttendee)
	r.Get("/announcements", h.handleListAnnouncements)
	r.Get("/announcements/{announcementID}", h.handleGetAnnouncement)
	r.Get("/ministries", h.handleListMinistries)
	r.Get("/ministries/{ministryID}", h.handleGetMinistry)
	r.Get("/blogs", h.handleListBlogs)
	r.Get("/blogs/{blogID}", h.handleGetBlog)
	r.Get("/gallery", h.handleListGalleryImages)
	r.Get("/countdowns", h.handleListCountdowns)
	r.Get("/livestreams", h.handleListLiveStreams)

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth(h.verifier, h.logger))
		ar.Use(middleware.RequireAdmin(h.logger))
		ar.Post("/events", h.handleCreateEvent)
		ar.Patch("/events/{eventID}", h.handlePatchEvent)
		ar.Delete("/events/{eventID}", h.handleDeleteEvent)
		ar.Get("/events/{eventID}/attendees", h.handleListAttendees)
		ar.Patch("/attendees/{attendeeID}", h.handlePatchAttendee)

		ar.Post("/announcements", h.handleCreateAnnouncement)
		ar.Patch("/announcements/{announcementID}", h.handlePatchAnnouncement)
		ar.Delete("/announcements/{announcementID}", h.handleDeleteAnnouncement)

		ar.Post("/ministries", h.handleCreateMinistry)
		ar.Patch("/ministries/{ministryID}", h.handlePatchMinistry)
		ar.Delete("/ministries/{ministryID}", h.handleDeleteMinistry)

		ar.Post("/blogs", h.handleCreateBlog)
		ar.Patch("/blogs/{blogID}", h.handlePatchBlog)
		ar.Delete("/blogs/{blogID}", h.handleDeleteBlog)

		ar.Post("/gallery", h.handleCreateGalleryImage)
		ar.Patch("/gallery/{imageID}", h.handlePatchGalleryImage)
		ar.Delete("/gallery/{imageID}", h.handleDeleteGalleryImage)

		ar.Post("/countdowns", h.handleCreateCountdown)
		ar.Patch("/countdowns/{countdownID}", h.handlePatchCountdown)
		ar.Delete("/countdowns/{countdownID}", h.handleDeleteCountdown)

		ar.Post("/livestreams", h.handleCreateLiveStream)
		ar.Patch("/livestreams/{streamID}", h.handlePatchLiveStream)
		ar.Delete("/livestreams/{streamID}", h.handleDeleteLiveStream)
	})
}

// brandFilter resolves the brand scope for a public list: the brand_id query
// parameter. Anonymous catalog browsing always names the brand it wants.
func brandFilter(r *http.Request) (id.BrandID, error) {
	return id.ParseBrandID(r.URL.Query().Get("brand_id"))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(r.Context(), action,
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

// --- events ---

type eventRequest struct {
	Title                string          `json:"title"`
	Description          string          `json:"description"`
	Date                 string          `json:"date"`
	Time                 string          `json:"time"`
	Location             string          `json:"location"`
	ImageURL             string          `json:"image_url"`
	IsFree               bool            `json:"is_free"`
	AcceptsDonations     bool            `json:"accepts_donations"`
	RegistrationEnabled  bool            `json:"registration_enabled"`
	RegistrationFields   map[string]bool `json:"registration_fields"`
	CategoryOptions      []string        `json:"category_options"`
	RegistrationDeadline *time.Time      `json:"registration_deadline"`
}

func (h *Handler) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[eventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	event, err := h.content.CreateEvent(ctx, service.CreateEventParams{
		Title:                req.Title,
		Description:          req.Description,
		Date:                 req.Date,
		Time:                 req.Time,
		Location:             req.Location,
		ImageURL:             req.ImageURL,
		IsFree:               req.IsFree,
		AcceptsDonations:     req.AcceptsDonations,
		RegistrationEnabled:  req.RegistrationEnabled,
		RegistrationFields:   req.RegistrationFields,
		CategoryOptions:      req.CategoryOptions,
		RegistrationDeadline: req.RegistrationDeadline,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create event")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.content.ListEvents(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list events")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	event, err := h.content.GetEvent(r.Context(), eventID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get event")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, event)
}

func (h *Handler) handlePatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.EventPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	event, err := h.content.PatchEvent(ctx, eventID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch event")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, event)
}

func (h *Handler) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	if err := h.content.DeleteEvent(r.Context(), eventID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type registerAttendeeRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Place        string `json:"place"`
	Category     string `json:"category"`
	Guests       int    `json:"guests"`
}

func (h *Handler) handleRegisterAttendee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[registerAttendeeRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	attendee, err := h.content.RegisterAttendee(ctx, eventID, service.RegisterAttendeeParams{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Place:        req.Place,
		Category:     req.Category,
		Guests:       req.Guests,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to register attendee")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, attendee)
}

func (h *Handler) handleListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	attendees, err := h.content.ListAttendees(r.Context(), eventID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list attendees")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, attendees)
}

func (h *Handler) handlePatchAttendee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	attendeeID, err := id.ParseAttendeeID(chi.URLParam(r, "attendeeID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "attendee not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.AttendeePatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	attendee, err := h.content.PatchAttendee(ctx, attendeeID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch attendee")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, attendee)
}

// --- announcements ---

type announcementRequest struct {
	Title                string      `json:"title"`
	Content              string      `json:"content"`
	ImageURL             string      `json:"image_url"`
	IsUrgent             bool        `json:"is_urgent"`
	EventID              *id.EventID `json:"event_id"`
	Location             string      `json:"location"`
	EventTime            string      `json:"event_time"`
	RequiresRegistration bool        `json:"requires_registration"`
	ScheduledStart       *time.Time  `json:"scheduled_start"`
	ScheduledEnd         *time.Time  `json:"scheduled_end"`
}

func (h *Handler) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[announcementRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	a, err := h.content.CreateAnnouncement(ctx, service.CreateAnnouncementParams{
		Title:                req.Title,
		Content:              req.Content,
		ImageURL:             req.ImageURL,
		IsUrgent:             req.IsUrgent,
		EventID:              req.EventID,
		Location:             req.Location,
		EventTime:            req.EventTime,
		RequiresRegistration: req.RequiresRegistration,
		ScheduledStart:       req.ScheduledStart,
		ScheduledEnd:         req.ScheduledEnd,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create announcement")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	urgentOnly := r.URL.Query().Get("urgent") == "true"

	items, err := h.content.ListAnnouncements(r.Context(), brandID, urgentOnly)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list announcements")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcementID, err := id.ParseAnnouncementID(chi.URLParam(r, "announcementID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "announcement not found"))
		return
	}
	a, err := h.content.GetAnnouncement(r.Context(), announcementID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get announcement")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handlePatchAnnouncement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	announcementID, err := id.ParseAnnouncementID(chi.URLParam(r, "announcementID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "announcement not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.AnnouncementPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	a, err := h.content.PatchAnnouncement(ctx, announcementID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch announcement")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcementID, err := id.ParseAnnouncementID(chi.URLParam(r, "announcementID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "announcement not found"))
		return
	}
	if err := h.content.DeleteAnnouncement(r.Context(), announcementID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete announcement")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- ministries ---

type ministryRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Leader          string `json:"leader"`
	ImageURL        string `json:"image_url"`
	MeetingSchedule string `json:"meeting_schedule"`
}

func (h *Handler) handleCreateMinistry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ministryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	m, err := h.content.CreateMinistry(ctx, service.CreateMinistryParams{
		Title:           req.Title,
		Description:     req.Description,
		Leader:          req.Leader,
		ImageURL:        req.ImageURL,
		MeetingSchedule: req.MeetingSchedule,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create ministry")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleListMinistries(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.content.ListMinistries(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list ministries")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetMinistry(w http.ResponseWriter, r *http.Request) {
	ministryID, err := id.ParseMinistryID(chi.URLParam(r, "ministryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "ministry not found"))
		return
	}
	m, err := h.content.GetMinistry(r.Context(), ministryID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get ministry")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handlePatchMinistry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ministryID, err := id.ParseMinistryID(chi.URLParam(r, "ministryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "ministry not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.MinistryPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	m, err := h.content.PatchMinistry(ctx, ministryID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch ministry")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleDeleteMinistry(w http.ResponseWriter, r *http.Request) {
	ministryID, err := id.ParseMinistryID(chi.URLParam(r, "ministryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "ministry not found"))
		return
	}
	if err := h.content.DeleteMinistry(r.Context(), ministryID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete ministry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- blogs ---

type blogRequest struct {
	Title         string                `json:"title"`
	Content       string                `json:"content"`
	ContentBlocks []models.ContentBlock `json:"content_blocks"`
	Excerpt       string                `json:"excerpt"`
	Author        string                `json:"author"`
	ImageURL      string                `json:"image_url"`
	Published     bool                  `json:"published"`
}

func (h *Handler) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[blogRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	b, err := h.content.CreateBlog(ctx, service.CreateBlogParams{
		Title:         req.Title,
		Content:       req.Content,
		ContentBlocks: req.ContentBlocks,
		Excerpt:       req.Excerpt,
		Author:        req.Author,
		ImageURL:      req.ImageURL,
		Published:     req.Published,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create blog")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleListBlogs(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.content.ListBlogs(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list blogs")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func blogIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "blogID"))
}

func (h *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := blogIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "blog not found"))
		return
	}
	b, err := h.content.GetBlog(r.Context(), blogID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get blog")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handlePatchBlog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	blogID, err := blogIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "blog not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.BlogPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	b, err := h.content.PatchBlog(ctx, blogID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch blog")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleDeleteBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := blogIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "blog not found"))
		return
	}
	if err := h.content.DeleteBlog(r.Context(), blogID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete blog")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- gallery ---

type galleryImageRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
	Caption  string `json:"caption"`
}

func (h *Handler) handleCreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[galleryImageRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	g, err := h.content.CreateGalleryImage(ctx, service.CreateGalleryImageParams{
		URL:      req.URL,
		Category: req.Category,
		Caption:  req.Caption,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create gallery image")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) handleListGalleryImages(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.content.ListGalleryImages(r.Context(), brandID, r.URL.Query().Get("category"))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list gallery images")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func galleryImageIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "imageID"))
}

func (h *Handler) handlePatchGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	imageID, err := galleryImageIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "gallery image not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.GalleryImagePatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	g, err := h.content.PatchGalleryImage(ctx, imageID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch gallery image")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) handleDeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := galleryImageIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "gallery image not found"))
		return
	}
	if err := h.content.DeleteGalleryImage(r.Context(), imageID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete gallery image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- countdowns ---

type countdownRequest struct {
	Title          string    `json:"title"`
	EventDate      time.Time `json:"event_date"`
	BannerImageURL string    `json:"banner_image_url"`
	IsActive       bool      `json:"is_active"`
	Priority       int       `json:"priority"`
}

func (h *Handler) handleCreateCountdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[countdownRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	c, err := h.content.CreateCountdown(ctx, service.CreateCountdownParams{
		Title:          req.Title,
		EventDate:      req.EventDate,
		BannerImageURL: req.BannerImageURL,
		IsActive:       req.IsActive,
		Priority:       req.Priority,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create countdown")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCountdowns(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.content.ListCountdowns(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list countdowns")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func countdownIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "countdownID"))
}

func (h *Handler) handlePatchCountdown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	countdownID, err := countdownIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "countdown not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.CountdownPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.content.PatchCountdown(ctx, countdownID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch countdown")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCountdown(w http.ResponseWriter, r *http.Request) {
	countdownID, err := countdownIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "countdown not found"))
		return
	}
	if err := h.content.DeleteCountdown(r.Context(), countdownID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete countdown")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- live streams ---

type liveStreamRequest struct {
	Title          string     `json:"title"`
	StreamURL      string     `json:"stream_url"`
	IsLive         bool       `json:"is_live"`
	ScheduledStart *time.Time `json:"scheduled_start"`
}

func (h *Handler) handleCreateLiveStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[liveStreamRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	l, err := h.content.CreateLiveStream(ctx, service.CreateLiveStreamParams{
		Title:          req.Title,
		StreamURL:      req.StreamURL,
		IsLive:         req.IsLive,
		ScheduledStart: req.ScheduledStart,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create live stream")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) handleListLiveStreams(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.content.ListLiveStreams(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list live streams")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func streamIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "streamID"))
}

func (h *Handler) handlePatchLiveStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	streamID, err := streamIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "live stream not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.LiveStreamPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	l, err := h.content.PatchLiveStream(ctx, streamID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch live stream")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleDeleteLiveStream(w http.ResponseWriter, r *http.Request) {
	streamID, err := streamIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "live stream not found"))
		return
	}
	if err := h.content.DeleteLiveStream(r.Context(), streamID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete live stream")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
