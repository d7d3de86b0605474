package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "data/snapshots", cfg.Storage.Dir)
	assert.Equal(t, 0.07, cfg.Pricing.TaxRate)
	assert.Equal(t, "USD", cfg.Pricing.Currency)
	assert.Equal(t, 4, cfg.Promo.MinLength)
	assert.Equal(t, 16, cfg.Promo.MaxLength)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, 10, cfg.Remote.TimeoutSeconds)
	assert.Empty(t, cfg.Auth.APIKey)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SHOPFRONT_SERVER_PORT", "9090")
	t.Setenv("SHOPFRONT_LOGGER_LEVEL", "debug")
	t.Setenv("SHOPFRONT_STORAGE_DIR", "/tmp/snapshots")
	t.Setenv("SHOPFRONT_PRICING_CURRENCY", "EUR")
	t.Setenv("SHOPFRONT_AUTH_API_KEY", "secret-key")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "/tmp/snapshots", cfg.Storage.Dir)
	assert.Equal(t, "EUR", cfg.Pricing.Currency)
	assert.Equal(t, "secret-key", cfg.Auth.APIKey)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
server:
  port: 9999
pricing:
  tax_rate: 0.2
  currency: GBP
remote:
  base_url: http://carts.internal
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	t.Chdir(dir)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 0.2, cfg.Pricing.TaxRate)
	assert.Equal(t, "GBP", cfg.Pricing.Currency)
	assert.Equal(t, "http://carts.internal", cfg.Remote.BaseURL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvironmentWinsOverConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9999\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("SHOPFRONT_SERVER_PORT", "7070")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		value  string
	}{
		{
			name:   "Port out of range",
			envKey: "SHOPFRONT_SERVER_PORT",
			value:  "70000",
		},
		{
			name:   "Invalid log level",
			envKey: "SHOPFRONT_LOGGER_LEVEL",
			value:  "verbose",
		},
		{
			name:   "Invalid log format",
			envKey: "SHOPFRONT_LOGGER_FORMAT",
			value:  "xml",
		},
		{
			name:   "Tax rate at or above one",
			envKey: "SHOPFRONT_PRICING_TAX_RATE",
			value:  "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.envKey, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
			Logger:  LoggerConfig{Level: "info", Format: "json"},
			Storage: StorageConfig{Dir: "data/snapshots"},
			Pricing: PricingConfig{TaxRate: 0.07, Currency: "USD"},
			Promo:   PromoConfig{MinLength: 4, MaxLength: 16},
			Remote:  RemoteConfig{TimeoutSeconds: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid configuration",
			mutate: func(*Config) {},
		},
		{
			name:    "Missing storage dir",
			mutate:  func(c *Config) { c.Storage.Dir = "" },
			wantErr: "storage directory is required",
		},
		{
			name:    "Negative tax rate",
			mutate:  func(c *Config) { c.Pricing.TaxRate = -0.1 },
			wantErr: "invalid tax rate",
		},
		{
			name:    "Missing currency",
			mutate:  func(c *Config) { c.Pricing.Currency = "" },
			wantErr: "currency is required",
		},
		{
			name:    "Promo min length below one",
			mutate:  func(c *Config) { c.Promo.MinLength = 0 },
			wantErr: "promo min length",
		},
		{
			name:    "Promo max length below min",
			mutate:  func(c *Config) { c.Promo.MaxLength = 2 },
			wantErr: "promo max length",
		},
		{
			name:    "S3 enabled without bucket",
			mutate:  func(c *Config) { c.S3.Enabled = true; c.S3.Region = "us-east-1" },
			wantErr: "S3 bucket is required",
		},
		{
			name:    "Remote timeout below one second",
			mutate:  func(c *Config) { c.Remote.TimeoutSeconds = 0 },
			wantErr: "remote timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 9090}

	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
}
