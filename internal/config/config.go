// Package config builds per-service configuration value objects from the
// environment. Each object is constructed once in main and passed into
// constructors; nothing reads the environment after startup.
package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultUpstreamTimeout bounds every call to a dependency service.
	DefaultUpstreamTimeout = 5 * time.Second

	defaultRateLimit  = 100
	defaultRateWindow = 15 * time.Minute
)

// Gateway configures the edge router.
type Gateway struct {
	Port           string
	AccountsURL    string
	CatalogURL     string
	OrdersURL      string
	RedisAddr      string
	RateLimit      int
	RateWindow     time.Duration
	ForwardTimeout time.Duration
}

// Accounts configures the account directory service.
type Accounts struct {
	Port string
	DSN  string
}

// Catalog configures the catalog store service.
type Catalog struct {
	Port string
	DSN  string
}

// Orders configures the order service, including the addresses of the two
// dependencies the orchestrator calls.
type Orders struct {
	Port            string
	DSN             string
	AccountsURL     string
	CatalogURL      string
	UpstreamTimeout time.Duration
}

func LoadGateway() Gateway {
	return Gateway{
		Port:           envOr("PORT", "3000"),
		AccountsURL:    envOr("ACCOUNT_SERVICE_URL", "http://localhost:3001"),
		CatalogURL:     envOr("CATALOG_SERVICE_URL", "http://localhost:3002"),
		OrdersURL:      envOr("ORDER_SERVICE_URL", "http://localhost:3003"),
		RedisAddr:      envOr("REDIS_ADDR", "localhost:6379"),
		RateLimit:      envIntOr("RATE_LIMIT", defaultRateLimit),
		RateWindow:     envDurationOr("RATE_WINDOW", defaultRateWindow),
		ForwardTimeout: envDurationOr("FORWARD_TIMEOUT", DefaultUpstreamTimeout),
	}
}

func LoadAccounts() Accounts {
	return Accounts{
		Port: envOr("PORT", "3001"),
		DSN:  envOr("DATABASE_DSN", "accounts:accounts@tcp(localhost:3306)/accountdb?parseTime=true"),
	}
}

func LoadCatalog() Catalog {
	return Catalog{
		Port: envOr("PORT", "3002"),
		DSN:  envOr("DATABASE_DSN", "catalog:catalog@tcp(localhost:3306)/catalogdb?parseTime=true"),
	}
}

func LoadOrders() Orders {
	return Orders{
		Port:            envOr("PORT", "3003"),
		DSN:             envOr("DATABASE_DSN", "orders:orders@tcp(localhost:3306)/orderdb?parseTime=true"),
		AccountsURL:     envOr("ACCOUNT_SERVICE_URL", "http://localhost:3001"),
		CatalogURL:      envOr("CATALOG_SERVICE_URL", "http://localhost:3002"),
		UpstreamTimeout: envDurationOr("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
