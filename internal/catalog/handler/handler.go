// Package handler exposes the public video catalog routes.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"brandgate/internal/catalog/models"
	dErrors "brandgate/pkg/domain-errors"
	"brandgate/pkg/platform/httputil"
	"brandgate/pkg/requestcontext"
)

// Service defines the catalog operations the handler depends on.
type Service interface {
	GetChannel(ctx context.Context, handle string) (*models.ChannelVideos, error)
	GetChannels(ctx context.Context, handles []string) ([]*models.ChannelVideos, error)
}

type Handler struct {
	catalog Service
	logger  *slog.Logger
}

func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts the catalog routes. All reads are public.
func (h *Handler) Register(r chi.Router) {
	r.Get("/videos/channels", h.handleListChannels)
	r.Get("/videos/channels/{handle}", h.handleGetChannel)
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

func (h *Handler) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	channel, err := h.catalog.GetChannel(r.Context(), chi.URLParam(r, "handle"))
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch channel videos")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, channel)
}

func (h *Handler) handleListChannels(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("handles")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "handles query parameter is required"))
		return
	}

	handles := make([]string, 0, 4)
	for _, handle := range strings.Split(raw, ",") {
		if handle = strings.TrimSpace(handle); handle != "" {
			handles = append(handles, handle)
		}
	}

	channels, err := h.catalog.GetChannels(r.Context(), handles)
	if err != nil {
		h.writeServiceError(w, r, err, "failed to fetch channel videos")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, channels)
}
