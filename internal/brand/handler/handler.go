package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandgate/internal/brand/models"
	"brandgate/internal/brand/service"
	"brandgate/internal/platform/middleware"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/httputil"
	"brandgate/pkg/requestcontext"
)

// Service defines the brand operations the handler depends on.
type Service interface {
	List(ctx context.Context) ([]*models.Brand, error)
	Get(ctx context.Context, brandID id.BrandID) (*models.Brand, error)
	Create(ctx context.Context, p service.CreateParams) (*models.Brand, error)
	Patch(ctx context.Context, brandID id.BrandID, patch *models.Patch) (*models.Brand, error)
}

type Handler struct {
	brands   Service
	verifier middleware.TokenVerifier
	logger   *slog.Logger
}

func New(brands Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{brands: brands, verifier: verifier, logger: logger}
}

// Register mounts the brand routes. Reads are public, writes are admin-only.
func (h *Handler) Register(r chi.Router) {
	r.Get("/brands", h.handleList)
	r.Get("/brands/{brandID}", h.handleGet)

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth(h.verifier, h.logger))
		ar.Use(middleware.RequireAdmin(h.logger))
		ar.Post("/brands", h.handleCreate)
		ar.Patch("/brands/{brandID}", h.handlePatch)
	})
}

func (h *Handler) brandIDFromPath(r *http.Request) (id.BrandID, error) {
	return id.ParseBrandID(chi.URLParam(r, "brandID"))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list brands", "error", err.Error())
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, brands)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	brandID, err := h.brandIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "brand not found"))
		return
	}

	brand, err := h.brands.Get(r.Context(), brandID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, brand)
}

type createBrandRequest struct {
	Name           string `json:"name"`
	Domain         string `json:"domain"`
	Tagline        string `json:"tagline"`
	LogoURL        string `json:"logo_url"`
	HeroImageURL   string `json:"hero_image_url"`
	HeroVideoURL   string `json:"hero_video_url"`
	Location       string `json:"location"`
	ServiceTimes   string `json:"service_times"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	WhatsappNumber string `json:"whatsapp_number"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[createBrandRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	brand, err := h.brands.Create(ctx, service.CreateParams{
		Name:           req.Name,
		Domain:         req.Domain,
		Tagline:        req.Tagline,
		LogoURL:        req.LogoURL,
		HeroImageURL:   req.HeroImageURL,
		HeroVideoURL:   req.HeroVideoURL,
		Location:       req.Location,
		ServiceTimes:   req.ServiceTimes,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
		WhatsappNumber: req.WhatsappNumber,
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to create brand",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, brand)
}

func (h *Handler) handlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	brandID, err := h.brandIDFromPath(r)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "brand not found"))
		return
	}

	patch, ok := httputil.DecodeAndPrepare[models.Patch](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	brand, err := h.brands.Patch(ctx, brandID, &patch)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to patch brand",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, brand)
}
