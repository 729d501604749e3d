package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandgate/internal/giving/models"
	"brandgate/internal/giving/service"
	"brandgate/internal/platform/middleware"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/httputil"
	"brandgate/pkg/requestcontext"
)

// Service defines the giving operations the handler depends on.
type Service interface {
	CreateFoundation(ctx context.Context, p service.CreateFoundationParams) (*models.Foundation, error)
	ListFoundations(ctx context.Context, brandID id.BrandID) ([]*models.Foundation, error)
	GetFoundation(ctx context.Context, foundationID id.FoundationID) (*models.Foundation, error)
	PatchFoundation(ctx context.Context, foundationID id.FoundationID, patch *models.FoundationPatch) (*models.Foundation, error)
	DeleteFoundation(ctx context.Context, foundationID id.FoundationID) error
	Donate(ctx context.Context, p service.DonateParams) (*models.Donation, error)
	ListDonations(ctx context.Context, foundationID *id.FoundationID) ([]*models.Donation, error)

	CreateCategory(ctx context.Context, p service.CreateCategoryParams) (*models.GivingCategory, error)
	ListCategories(ctx context.Context, brandID id.BrandID) ([]*models.GivingCategory, error)
	PatchCategory(ctx context.Context, categoryID id.CategoryID, patch *models.GivingCategoryPatch) (*models.GivingCategory, error)
	DeleteCategory(ctx context.Context, categoryID id.CategoryID) error
}

type Handler struct {
	giving   Service
	verifier middleware.TokenVerifier
	logger   *slog.Logger
}

func New(giving Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{giving: giving, verifier: verifier, logger: logger}
}

// Register mounts the giving routes. Campaign reads and donating are public;
// campaign management and the ledger are admin-only.
func (h *Handler) Register(r chi.Router) {
	r.Get("/foundations", h.handleListFoundations)
	r.Get("/foundations/{foundationID}", h.handleGetFoundation)
	r.Post("/foundations/{foundationID}/donate", h.handleDonate)
	r.Get("/giving-categories", h.handleListCategories)

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth(h.verifier, h.logger))
		ar.Use(middleware.RequireAdmin(h.logger))
		ar.Post("/foundations", h.handleCreateFoundation)
		ar.Patch("/foundations/{foundationID}", h.handlePatchFoundation)
		ar.Delete("/foundations/{foundationID}", h.handleDeleteFoundation)
		ar.Get("/donations", h.handleListDonations)

		ar.Post("/giving-categories", h.handleCreateCategory)
		ar.Patch("/giving-categories/{categoryID}", h.handlePatchCategory)
		ar.Delete("/giving-categories/{categoryID}", h.handleDeleteCategory)
	})
}

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

// --- foundations ---

type foundationRequest struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	ImageURL      string       `json:"image_url"`
	GalleryImages []string     `json:"gallery_images"`
	GoalAmount    money.Amount `json:"goal_amount"`
	IsActive      bool         `json:"is_active"`
}

func (h *Handler) handleCreateFoundation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[foundationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	f, err := h.giving.CreateFoundation(ctx, service.CreateFoundationParams{
		Title:         req.Title,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		GalleryImages: req.GalleryImages,
		GoalAmount:    req.GoalAmount,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create foundation")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, f)
}

func (h *Handler) handleListFoundations(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.giving.ListFoundations(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list foundations")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleGetFoundation(w http.ResponseWriter, r *http.Request) {
	foundationID, err := id.ParseFoundationID(chi.URLParam(r, "foundationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "foundation not found"))
		return
	}
	f, err := h.giving.GetFoundation(r.Context(), foundationID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to get foundation")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handlePatchFoundation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	foundationID, err := id.ParseFoundationID(chi.URLParam(r, "foundationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "foundation not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.FoundationPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	f, err := h.giving.PatchFoundation(ctx, foundationID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch foundation")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, f)
}

func (h *Handler) handleDeleteFoundation(w http.ResponseWriter, r *http.Request) {
	foundationID, err := id.ParseFoundationID(chi.URLParam(r, "foundationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "foundation not found"))
		return
	}
	if err := h.giving.DeleteFoundation(r.Context(), foundationID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete foundation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- donations ---

type donateRequest struct {
	DonorName  string       `json:"donor_name"`
	DonorEmail string       `json:"donor_email"`
	Amount     money.Amount `json:"amount"`
	Message    string       `json:"message"`
}

func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	foundationID, err := id.ParseFoundationID(chi.URLParam(r, "foundationID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "foundation not found"))
		return
	}
	req, ok := httputil.DecodeAndPrepare[donateRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	d, err := h.giving.Donate(ctx, service.DonateParams{
		FoundationID: foundationID,
		DonorName:    req.DonorName,
		DonorEmail:   req.DonorEmail,
		Amount:       req.Amount,
		Message:      req.Message,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to settle donation")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) handleListDonations(w http.ResponseWriter, r *http.Request) {
	var foundationID *id.FoundationID
	if raw := r.URL.Query().Get("foundation_id"); raw != "" {
		parsed, err := id.ParseFoundationID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		foundationID = &parsed
	}

	items, err := h.giving.ListDonations(r.Context(), foundationID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list donations")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

// --- categories ---

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[categoryRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	c, err := h.giving.CreateCategory(ctx, service.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create category")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	brandID, err := brandFilter(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	items, err := h.giving.ListCategories(r.Context(), brandID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list categories")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handlePatchCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID, err := id.ParseCategoryID(chi.URLParam(r, "categoryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "category not found"))
		return
	}
	patch, ok := httputil.DecodeAndPrepare[models.GivingCategoryPatch](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	c, err := h.giving.PatchCategory(ctx, categoryID, &patch)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to patch category")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := id.ParseCategoryID(chi.URLParam(r, "categoryID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "category not found"))
		return
	}
	if err := h.giving.DeleteCategory(r.Context(), categoryID); err != nil {
		h.writeServiceError(w, r, err, "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
