package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"brandgate/internal/identity/models"
	"brandgate/internal/identity/service"
	"brandgate/internal/platform/middleware"
	id "brandgate/pkg/domain"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/httputil"
	"brandgate/pkg/requestcontext"
)

// Service defines the identity operations the handler depends on.
type Service interface {
	IssueAdminToken(ctx context.Context, email, password string) (string, *models.Admin, error)
	IssueMemberToken(ctx context.Context, brandID id.BrandID, email, password string) (string, *models.Member, error)
	RegisterMember(ctx context.Context, p service.RegisterMemberParams) (string, *models.Member, error)
	CurrentMember(ctx context.Context) (*models.Member, error)
	SetMemberStatus(ctx context.Context, memberID id.MemberID, active bool) (*models.Member, error)
}

// Handler exposes login and registration endpoints.
type Handler struct {
	identity Service
	verifier middleware.TokenVerifier
	logger   *slog.Logger
}

func New(identity Service, verifier middleware.TokenVerifier, logger *slog.Logger) *Handler {
	return &Handler{identity: identity, verifier: verifier, logger: logger}
}

// Register mounts the identity routes. Login and registration are public;
// /users/me requires a member token and the status toggle an admin token.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.handleAdminLogin)
	r.Post("/users/register", h.handleMemberRegister)
	r.Post("/users/login", h.handleMemberLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(h.verifier, h.logger))
		pr.Use(middleware.RequireMember(h.logger))
		pr.Get("/users/me", h.handleMe)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireAuth(h.verifier, h.logger))
		ar.Use(middleware.RequireAdmin(h.logger))
		ar.Put("/users/{userID}/status", h.handleSetMemberStatus)
	})
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[adminLoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	token, admin, err := h.identity.IssueAdminToken(ctx, req.Email, req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "admin login failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, adminLoginResponse{Token: token, Admin: admin})
}

type memberRegisterRequest struct {
	BrandID  string `json:"brand_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type memberAuthResponse struct {
	Token string         `json:"token"`
	User  *models.Member `json:"user"`
}

func (h *Handler) handleMemberRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[memberRegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	brandID, err := id.ParseBrandID(req.BrandID)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "brand id is required"))
		return
	}

	token, member, err := h.identity.RegisterMember(ctx, service.RegisterMemberParams{
		BrandID:  brandID,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "member registration failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, memberAuthResponse{Token: token, User: member})
}

type memberLoginRequest struct {
	BrandID  string `json:"brand_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleMemberLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[memberLoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	brandID, err := id.ParseBrandID(req.BrandID)
	if err != nil {
		// Same envelope as bad credentials so the endpoint does not reveal
		// which part of the tuple was wrong.
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))
		return
	}

	token, member, err := h.identity.IssueMemberToken(ctx, brandID, req.Email, req.Password)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "member login failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, memberAuthResponse{Token: token, User: member})
}

type memberStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

func (h *Handler) handleSetMemberStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	memberID, err := id.ParseMemberID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "member not found"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[memberStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.IsActive == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "is_active is required"))
		return
	}

	member, err := h.identity.SetMemberStatus(ctx, memberID, *req.IsActive)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "member status update failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	member, err := h.identity.CurrentMember(ctx)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to resolve current member",
				"request_id", requestcontext.RequestID(ctx),
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, member)
}
