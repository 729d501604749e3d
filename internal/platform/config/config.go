package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. It is built once at startup
// and shared read-only across handlers; nothing re-reads the environment per
// request.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration

	PostgresURL string
	Redis       RedisConfig

	Payment PaymentConfig
	Catalog CatalogConfig

	// ReconcileInterval drives the background poll of still-pending checkout
	// sessions. Zero disables the reconciler.
	ReconcileInterval time.Duration

	// SeedDemoData loads the demo brands at startup. Development only.
	SeedDemoData bool
}

// RedisConfig holds connection settings for the optional Redis cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PaymentConfig points at the external checkout processor.
type PaymentConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CatalogConfig points at the read-only video catalog service.
type CatalogConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("BRANDGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      durationEnv("JWT_TTL", 24*time.Hour),
		PostgresURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Payment: PaymentConfig{
			BaseURL: os.Getenv("PAYMENT_API_URL"),
			APIKey:  os.Getenv("PAYMENT_API_KEY"),
			Timeout: durationEnv("PAYMENT_TIMEOUT", 10*time.Second),
		},
		Catalog: CatalogConfig{
			BaseURL:  os.Getenv("CATALOG_API_URL"),
			APIKey:   os.Getenv("CATALOG_API_KEY"),
			Timeout:  durationEnv("CATALOG_TIMEOUT", 5*time.Second),
			CacheTTL: durationEnv("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		ReconcileInterval: durationEnv("RECONCILE_INTERVAL", 0),
		SeedDemoData:      boolEnv("SEED_DEMO_DATA", false),
	}
}

func boolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
