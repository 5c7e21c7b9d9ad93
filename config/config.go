package config

import (
	"errors"
	"fmt"
	"go-zel-rate-proxy/coinbase"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned by Load when a setting fails validation
var ErrInvalidConfig = errors.New("invalid config")

const (
	defaultRefreshInterval = time.Minute
	defaultTimeout         = 5 * time.Second
)

// Config holds the proxy configuration.
type Config struct {
	Port int `validate:"min=1,max=65535"`

	// RatesURL base url of the coinbase-compatible rates API
	RatesURL string `validate:"required,url"`

	// BaseCurrency the code the rates API lists ZEL under
	BaseCurrency string `validate:"required,alphanum"`

	RefreshInterval time.Duration
	Timeout         time.Duration

	// LogLevel one of debug, info, warn, error
	LogLevel string `validate:"oneof=debug info warn error"`
}

// Load reads configuration from a .env file, if present, and the environment.
// Invalid durations fall back to their defaults with a warning on logger; any other
// invalid setting fails with ErrInvalidConfig.
func Load(logger log.Logger) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", 8080)
	v.SetDefault("RATES_URL", coinbase.ApiUrlBase)
	v.SetDefault("BASE_CURRENCY", "ZEL")
	v.SetDefault("RATES_REFRESH_INTERVAL", defaultRefreshInterval.String())
	v.SetDefault("RATES_TIMEOUT", defaultTimeout.String())
	v.SetDefault("LOG_LEVEL", "info")
	v.AutomaticEnv()

	cfg := &Config{
		// GetInt reads a non-numeric PORT as 0, which validation rejects
		Port:         v.GetInt("PORT"),
		RatesURL:     strings.TrimSpace(v.GetString("RATES_URL")),
		BaseCurrency: strings.TrimSpace(v.GetString("BASE_CURRENCY")),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
	}
	cfg.RefreshInterval = duration(v, logger, "RATES_REFRESH_INTERVAL", defaultRefreshInterval)
	cfg.Timeout = duration(v, logger, "RATES_TIMEOUT", defaultTimeout)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func duration(v *viper.Viper, logger log.Logger, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logger.Log("msg", "invalid duration, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}
