package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"brandgate/internal/payments/models"
	"brandgate/internal/payments/service"
	"brandgate/internal/platform/middleware"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/money"
	"brandgate/pkg/platform/httputil"
	"brandgate/pkg/requestcontext"
)

// Service defines the payment operations the handler depends on.
type Service interface {
	CreateCheckout(ctx context.Context, p service.CreateCheckoutParams) (*service.Checkout, error)
	GetStatus(ctx context.Context, sessionID string) (*models.Transaction, error)
	ListHistory(ctx context.Context) ([]*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
}

type Handler struct {
	payments Service
	verifier middleware.TokenVerifier
	logger   *slog.Logger
}

func New(payments Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{payments: payments, verifier: verifier, logger: logger}
}

// Register mounts the payment routes. Checkout and status polling are
// public; checkout additionally binds the member when a token is supplied so
// the gift shows up in their history.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.OptionalAuth(h.verifier, h.logger))
		pr.Post("/payments/create-checkout", h.handleCreateCheckout)
	})
	r.Get("/payments/status/{sessionID}", h.handleGetStatus)

	r.Group(func(mr chi.Router) {
		mr.Use(middleware.RequireAuth(h.verifier, h.logger))
		mr.Use(middleware.RequireMember(h.logger))
		mr.Get("/payments/history", h.handleListHistory)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth(h.verifier, h.logger))
		ar.Use(middleware.RequireAdmin(h.logger))
		ar.Get("/payments/transactions", h.handleListTransactions)
	})
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

type createCheckoutRequest struct {
	BrandID      string       `json:"brand_id"`
	FoundationID string       `json:"foundation_id"`
	Category     string       `json:"category"`
	DonorName    string       `json:"donor_name"`
	DonorEmail   string       `json:"donor_email"`
	Amount       money.Amount `json:"amount"`
	Message      string       `json:"message"`
	SuccessURL   string       `json:"success_url"`
	CancelURL    string       `json:"cancel_url"`
}

func (h *Handler) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[createCheckoutRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	params := service.CreateCheckoutParams{
		Category:   req.Category,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Amount:     req.Amount,
		Message:    req.Message,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	}
	if strings.TrimSpace(req.FoundationID) != "" {
		foundationID, err := id.ParseFoundationID(req.FoundationID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		params.FoundationID = &foundationID
	} else {
		brandID, err := id.ParseBrandID(req.BrandID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		params.BrandID = brandID
	}

	checkout, err := h.payments.CreateCheckout(ctx, params)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to create checkout")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, checkout)
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "transaction not found"))
		return
	}

	txn, err := h.payments.GetStatus(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to resolve checkout status")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, txn)
}

func (h *Handler) handleListHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.payments.ListHistory(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list payment history")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := h.payments.ListTransactions(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "failed to list transactions")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}
