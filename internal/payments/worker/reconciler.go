// Package worker re-polls pending checkout sessions in the background.
// Clients normally drive settlement by polling the status endpoint, but a
// donor who closes the tab after paying would leave a paid session pending
// forever; the reconciler sweeps those up.
package worker

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"brandgate/internal/payments/models"
	"brandgate/internal/payments/store"
)

// StatusResolver is the settlement entry point the reconciler drives. It is
// the same path the status endpoint uses, so a sweep and a client poll
// racing on one session still settle it exactly once.
type StatusResolver interface {
	GetStatus(ctx context.Context, sessionID string) (*models.Transaction, error)
}

// Config tunes the reconciler sweep.
type Config struct {
	// Interval between sweeps.
	Interval time.Duration

	// MinAge keeps freshly created sessions out of the sweep; the donor is
	// usually still on the payment page.
	MinAge time.Duration

	// BatchSize caps sessions per sweep.
	BatchSize int

	// Concurrency caps parallel provider polls per sweep.
	Concurrency int
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.MinAge <= 0 {
		c.MinAge = 2 * time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
}

// Reconciler periodically resolves pending sessions against the provider.
type Reconciler struct {
	transactions store.TransactionStore
	resolver     StatusResolver
	logger       *slog.Logger
	cfg          Config
}

func NewReconciler(transactions store.TransactionStore, resolver StatusResolver, logger *slog.Logger, cfg Config) *Reconciler {
	cfg.applyDefaults()
	return &Reconciler{
		transactions: transactions,
		resolver:     resolver,
		logger:       logger,
		cfg:          cfg,
	}
}

// Run sweeps until the context is cancelled. It always returns nil on
// shutdown; sweep errors are logged, not fatal.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	r.logger.InfoContext(ctx, "payment reconciler started",
		slog.Duration("interval", r.cfg.Interval),
	)
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "payment reconciler stopped")
			return nil
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.cfg.MinAge)
	sessions, err := r.transactions.ListPendingSessions(ctx, cutoff, r.cfg.BatchSize)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to list pending sessions", "error", err.Error())
		return
	}
	if len(sessions) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for _, sessionID := range sessions {
		g.Go(func() error {
			if _, err := r.resolver.GetStatus(gctx, sessionID); err != nil {
				r.logger.WarnContext(gctx, "failed to reconcile session",
					"session_id", sessionID,
					"error", err.Error(),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	r.logger.InfoContext(ctx, "reconciler sweep complete",
		slog.Int("sessions", len(sessions)),
	)
}
