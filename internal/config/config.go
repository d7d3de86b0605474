package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Storage StorageConfig `mapstructure:"storage"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Promo   PromoConfig   `mapstructure:"promo"`
	S3      S3Config      `mapstructure:"s3"`
	Remote  RemoteConfig  `mapstructure:"remote"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// StorageConfig holds snapshot store configuration.
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// PricingConfig holds totals-derivation configuration.
type PricingConfig struct {
	TaxRate  float64 `mapstructure:"tax_rate"`
	Currency string  `mapstructure:"currency"`
}

// PromoConfig holds promo code validation configuration.
type PromoConfig struct {
	RulesPath string   `mapstructure:"rules_path"`
	FilePaths []string `mapstructure:"file_paths"`
	MinLength int      `mapstructure:"min_length"`
	MaxLength int      `mapstructure:"max_length"`
}

// S3Config holds AWS S3 configuration for bulk promo code files.
type S3Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
	Prefix  string `mapstructure:"prefix"` // Path prefix within bucket (e.g., "promos/")
}

// RemoteConfig holds the server-cart collaborator configuration.
type RemoteConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AuthConfig holds API authentication configuration.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load reads configuration from an optional config.yaml in the working
// directory, overridden by SHOPFRONT_-prefixed environment variables
// (SHOPFRONT_SERVER_PORT, SHOPFRONT_STORAGE_DIR, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("storage.dir", "data/snapshots")
	v.SetDefault("pricing.tax_rate", 0.07)
	v.SetDefault("pricing.currency", "USD")
	v.SetDefault("promo.rules_path", "")
	v.SetDefault("promo.file_paths", []string{})
	v.SetDefault("promo.min_length", 4)
	v.SetDefault("promo.max_length", 16)
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "promos/")
	v.SetDefault("remote.base_url", "")
	v.SetDefault("remote.timeout_seconds", 10)
	v.SetDefault("auth.api_key", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("SHOPFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.Dir == "" {
		return fmt.Errorf("storage directory is required")
	}

	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate >= 1 {
		return fmt.Errorf("invalid tax rate: %g", c.Pricing.TaxRate)
	}

	if c.Pricing.Currency == "" {
		return fmt.Errorf("currency is required")
	}

	if c.Promo.MinLength < 1 {
		return fmt.Errorf("promo min length must be at least 1")
	}

	if c.Promo.MaxLength < c.Promo.MinLength {
		return fmt.Errorf("promo max length cannot be below min length")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Remote.TimeoutSeconds < 1 {
		return fmt.Errorf("remote timeout must be at least 1 second")
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
