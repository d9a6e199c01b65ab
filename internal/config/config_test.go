package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolayk812/storefront/internal/config"
)

const minimalYAML = `
dependencies:
  postgres_url: postgres://localhost:5432/storefront
payment:
  base_url: https://payments.example.com
auth:
  jwt_secret: test-secret
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, config.CartBackendSQLite, cfg.CartBackend)
	assert.Equal(t, "usd", cfg.CurrencyCode)
	assert.Equal(t, int64(100_00), cfg.FreeShippingThresholdCents)
	assert.Equal(t, int64(10_00), cfg.FlatShippingFeeCents)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadFileOverrides(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `
service:
  http_port: 9000
dependencies:
  postgres_url: postgres://localhost:5432/storefront
cart:
  backend: memory
pricing:
  currency: eur
  free_shipping_threshold_cents: 5000
  flat_shipping_fee_cents: 500
payment:
  base_url: https://payments.example.com
auth:
  jwt_secret: test-secret
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, config.CartBackendMemory, cfg.CartBackend)
	assert.Equal(t, "eur", cfg.CurrencyCode)
	assert.Equal(t, int64(5000), cfg.FreeShippingThresholdCents)
	assert.Equal(t, int64(500), cfg.FlatShippingFeeCents)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("HTTP_PORT", "7777")
	t.Setenv("CURRENCY", "gbp")
	t.Setenv("FREE_SHIPPING_THRESHOLD_CENTS", "20000")

	cfg, err := config.Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.HTTPPort)
	assert.Equal(t, "gbp", cfg.CurrencyCode)
	assert.Equal(t, int64(20000), cfg.FreeShippingThresholdCents)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantError string
	}{
		{
			name: "missing database url",
			yaml: `
payment:
  base_url: https://payments.example.com
auth:
  jwt_secret: s
`,
			wantError: "missing DB_URL/POSTGRES_URL",
		},
		{
			name: "missing jwt secret",
			yaml: `
dependencies:
  postgres_url: postgres://localhost/db
payment:
  base_url: https://payments.example.com
`,
			wantError: "missing JWT_SECRET",
		},
		{
			name: "missing payment base url",
			yaml: `
dependencies:
  postgres_url: postgres://localhost/db
auth:
  jwt_secret: s
`,
			wantError: "missing PAYMENT_BASE_URL",
		},
		{
			name: "redis backend without url",
			yaml: minimalYAML + `
cart:
  backend: redis
`,
			wantError: "cart backend is redis but REDIS_URL is missing",
		},
		{
			name: "unknown backend",
			yaml: minimalYAML + `
cart:
  backend: magnetic-tape
`,
			wantError: `unknown cart backend "magnetic-tape"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.yaml))
			require.EqualError(t, err, tt.wantError)
		})
	}
}
