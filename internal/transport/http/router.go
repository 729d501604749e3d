// Package httptransport assembles the HTTP surface: global middleware, the
// operational endpoints, and every feature handler mounted under /api.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brandgate/internal/platform/metrics"
	"brandgate/internal/platform/middleware"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router mounts. Handlers are optional so partial
// wiring in tests stays cheap.
type Deps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	Identity Registrar
	Brands   Registrar
	Content  Registrar
	Giving   Registrar
	Payments Registrar
	Catalog  Registrar
}

// NewRouter wires the middleware chain and mounts all feature routes.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Metadata)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.LatencyMiddleware(d.Metrics))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		for _, h := range []Registrar{
			d.Identity, d.Brands, d.Content, d.Giving, d.Payments, d.Catalog,
		} {
			if h != nil {
				h.Register(api)
			}
		}
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
