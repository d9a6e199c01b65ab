// Package config resolves runtime configuration for the storefront.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Cart store backends.
const (
	CartBackendSQLite = "sqlite"
	CartBackendRedis  = "redis"
	CartBackendMemory = "memory"
)

// Config is the resolved runtime configuration. It merges file defaults
// and environment overrides to support both local and deployed runs.
type Config struct {
	HTTPPort int

	DatabaseURL string

	CartBackend string
	SQLitePath  string
	RedisURL    string
	CartTTL     time.Duration

	CurrencyCode               string
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64

	PaymentBaseURL     string
	PaymentAPIKey      string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	JWTSecret         string
	TokenTTL          time.Duration
	AdminPasswordHash string
}

// configFile mirrors the YAML schema used by configs/default.yaml.
type configFile struct {
	Service struct {
		HTTPPort int `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Cart struct {
		Backend    string `yaml:"backend"`
		SQLitePath string `yaml:"sqlite_path"`
		TTLHours   int    `yaml:"ttl_hours"`
	} `yaml:"cart"`
	Pricing struct {
		Currency                   string `yaml:"currency"`
		FreeShippingThresholdCents int64  `yaml:"free_shipping_threshold_cents"`
		FlatShippingFeeCents       int64  `yaml:"flat_shipping_fee_cents"`
	} `yaml:"pricing"`
	Payment struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		SuccessURL string `yaml:"success_url"`
		CancelURL  string `yaml:"cancel_url"`
	} `yaml:"payment"`
	Auth struct {
		JWTSecret         string `yaml:"jwt_secret"`
		TokenTTLHours     int    `yaml:"token_ttl_hours"`
		AdminPasswordHash string `yaml:"admin_password_hash"`
	} `yaml:"auth"`
}

// Load resolves configuration in priority order: defaults -> file -> env.
func Load(path string) (Config, error) {
	cfg := Config{
		HTTPPort:                   8080,
		CartBackend:                CartBackendSQLite,
		SQLitePath:                 "storefront-carts.db",
		CartTTL:                    30 * 24 * time.Hour,
		CurrencyCode:               "usd",
		FreeShippingThresholdCents: 100_00,
		FlatShippingFeeCents:       10_00,
		TokenTTL:                   24 * time.Hour,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Cart.Backend != "" {
			cfg.CartBackend = f.Cart.Backend
		}
		if f.Cart.SQLitePath != "" {
			cfg.SQLitePath = f.Cart.SQLitePath
		}
		if f.Cart.TTLHours > 0 {
			cfg.CartTTL = time.Duration(f.Cart.TTLHours) * time.Hour
		}
		if f.Pricing.Currency != "" {
			cfg.CurrencyCode = f.Pricing.Currency
		}
		if f.Pricing.FreeShippingThresholdCents > 0 {
			cfg.FreeShippingThresholdCents = f.Pricing.FreeShippingThresholdCents
		}
		if f.Pricing.FlatShippingFeeCents > 0 {
			cfg.FlatShippingFeeCents = f.Pricing.FlatShippingFeeCents
		}
		if f.Payment.BaseURL != "" {
			cfg.PaymentBaseURL = f.Payment.BaseURL
		}
		if f.Payment.APIKey != "" {
			cfg.PaymentAPIKey = f.Payment.APIKey
		}
		if f.Payment.SuccessURL != "" {
			cfg.CheckoutSuccessURL = f.Payment.SuccessURL
		}
		if f.Payment.CancelURL != "" {
			cfg.CheckoutCancelURL = f.Payment.CancelURL
		}
		if f.Auth.JWTSecret != "" {
			cfg.JWTSecret = f.Auth.JWTSecret
		}
		if f.Auth.TokenTTLHours > 0 {
			cfg.TokenTTL = time.Duration(f.Auth.TokenTTLHours) * time.Hour
		}
		if f.Auth.AdminPasswordHash != "" {
			cfg.AdminPasswordHash = f.Auth.AdminPasswordHash
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.CartBackend = envOrDefault("CART_BACKEND", cfg.CartBackend)
	cfg.SQLitePath = envOrDefault("CART_SQLITE_PATH", cfg.SQLitePath)
	cfg.CartTTL = time.Duration(envInt("CART_TTL_HOURS", int(cfg.CartTTL.Hours()))) * time.Hour
	cfg.CurrencyCode = envOrDefault("CURRENCY", cfg.CurrencyCode)
	cfg.FreeShippingThresholdCents = envInt64("FREE_SHIPPING_THRESHOLD_CENTS", cfg.FreeShippingThresholdCents)
	cfg.FlatShippingFeeCents = envInt64("FLAT_SHIPPING_FEE_CENTS", cfg.FlatShippingFeeCents)
	cfg.PaymentBaseURL = envOrDefault("PAYMENT_BASE_URL", cfg.PaymentBaseURL)
	cfg.PaymentAPIKey = envOrDefault("PAYMENT_API_KEY", cfg.PaymentAPIKey)
	cfg.CheckoutSuccessURL = envOrDefault("CHECKOUT_SUCCESS_URL", cfg.CheckoutSuccessURL)
	cfg.CheckoutCancelURL = envOrDefault("CHECKOUT_CANCEL_URL", cfg.CheckoutCancelURL)
	cfg.JWTSecret = envOrDefault("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = time.Duration(envInt("TOKEN_TTL_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.AdminPasswordHash = envOrDefault("ADMIN_PASSWORD_HASH", cfg.AdminPasswordHash)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	switch cfg.CartBackend {
	case CartBackendSQLite, CartBackendMemory:
	case CartBackendRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("cart backend is redis but REDIS_URL is missing")
		}
	default:
		return Config{}, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("missing JWT_SECRET")
	}
	if cfg.PaymentBaseURL == "" {
		return Config{}, fmt.Errorf("missing PAYMENT_BASE_URL")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envInt64(name string, fallback int64) int64 {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
