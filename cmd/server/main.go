package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"brandgate/internal/audit"
	brandhandler "brandgate/internal/brand/handler"
	brandservice "brandgate/internal/brand/service"
	brandstore "brandgate/internal/brand/store"
	catalogcache "brandgate/internal/catalog/cache"
	cataloghandler "brandgate/internal/catalog/handler"
	catalogmetrics "brandgate/internal/catalog/metrics"
	catalogservice "brandgate/internal/catalog/service"
	catalogsource "brandgate/internal/catalog/source"
	contenthandler "brandgate/internal/content/handler"
	contentservice "brandgate/internal/content/service"
	givinghandler "brandgate/internal/giving/handler"
	givingmetrics "brandgate/internal/giving/metrics"
	givingservice "brandgate/internal/giving/service"
	givingstore "brandgate/internal/giving/store"
	identityhandler "brandgate/internal/identity/handler"
	identitymetrics "brandgate/internal/identity/metrics"
	identityservice "brandgate/internal/identity/service"
	adminstore "brandgate/internal/identity/store/admin"
	memberstore "brandgate/internal/identity/store/member"
	"brandgate/internal/jwttoken"
	paymentshandler "brandgate/internal/payments/handler"
	paymentsmetrics "brandgate/internal/payments/metrics"
	"brandgate/internal/payments/processor"
	paymentsservice "brandgate/internal/payments/service"
	paymentsstore "brandgate/internal/payments/store"
	"brandgate/internal/payments/worker"
	"brandgate/internal/platform/config"
	"brandgate/internal/platform/httpserver"
	"brandgate/internal/platform/logger"
	"brandgate/internal/platform/metrics"
	"brandgate/internal/platform/postgres"
	platformredis "brandgate/internal/platform/redis"
	"brandgate/internal/seed"
	httptransport "brandgate/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("postgres unavailable", "error", err.Error())
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	tokens := jwttoken.New(cfg.JWTSigningKey, "brandgate", cfg.TokenTTL)
	httpMetrics := metrics.New()
	auditor := audit.NewPublisher(audit.NewInMemoryStore())

	brandSvc := brandservice.New(brandstore.NewInMemory(), log)
	identitySvc := identityservice.New(
		adminstore.NewInMemory(), memberstore.NewInMemory(), brandSvc,
		tokens, log, identitymetrics.New(), auditor,
	)
	contentSvc := contentservice.New(log)

	var foundations givingstore.FoundationStore
	var transactions paymentsstore.TransactionStore
	if db != nil {
		givingPg := givingstore.NewPostgres(db)
		paymentsPg := paymentsstore.NewPostgres(db)
		if err := givingPg.Migrate(ctx); err != nil {
			log.Error("giving migration failed", "error", err.Error())
			os.Exit(1)
		}
		if err := paymentsPg.Migrate(ctx); err != nil {
			log.Error("payments migration failed", "error", err.Error())
			os.Exit(1)
		}
		foundations, transactions = givingPg, paymentsPg
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
		foundations, transactions = givingstore.NewInMemory(), paymentsstore.NewInMemory()
	}

	givingSvc := givingservice.New(foundations, log, givingmetrics.New(), auditor)

	provider := processor.NewHTTPClient(cfg.Payment.BaseURL, cfg.Payment.APIKey, cfg.Payment.Timeout, log)
	paymentsSvc := paymentsservice.New(transactions, provider, givingSvc, log, paymentsmetrics.New())

	var channelCache catalogcache.Cache = catalogcache.NewMemory()
	if redisClient != nil {
		channelCache = catalogcache.NewRedis(redisClient)
	}
	videoSource := catalogsource.NewHTTPClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, log)
	catalogSvc := catalogservice.New(videoSource, channelCache, cfg.Catalog.CacheTTL, log, catalogmetrics.New())

	if cfg.SeedDemoData {
		if err := seed.Run(ctx, seed.Services{
			Brands:   brandSvc,
			Identity: identitySvc,
			Content:  contentSvc,
			Giving:   givingSvc,
			Logger:   log,
		}); err != nil {
			log.Error("seeding demo data failed", "error", err.Error())
			os.Exit(1)
		}
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  httpMetrics,
		Identity: identityhandler.New(identitySvc, tokens, log),
		Brands:   brandhandler.New(brandSvc, tokens, log),
		Content:  contenthandler.New(contentSvc, tokens, log),
		Giving:   givinghandler.New(givingSvc, tokens, log),
		Payments: paymentshandler.New(paymentsSvc, tokens, log),
		Catalog:  cataloghandler.New(catalogSvc, log),
	})

	srv := httpserver.New(cfg.Addr, router)

	if cfg.ReconcileInterval > 0 {
		reconciler := worker.NewReconciler(transactions, paymentsSvc, log, worker.Config{
			Interval: cfg.ReconcileInterval,
		})
		go func() {
			if err := reconciler.Run(ctx); err != nil {
				log.Error("reconciler stopped", "error", err.Error())
			}
		}()
	}

	go func() {
		log.Info("starting brandgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	if err := httpserver.Shutdown(srv); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
