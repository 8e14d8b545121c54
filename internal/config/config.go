package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // auction timezone must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

const (
	EnvLocal      = "local"
	EnvProduction = "production"
)

// Config holds every runtime setting of the service
type Config struct {
	Port                string        `mapstructure:"PORT"`
	AppEnv              string        `mapstructure:"APP_ENV"`
	BaseURLLocal        string        `mapstructure:"DOWNSTREAM_BASE_URL_LOCAL"`
	BaseURLProduction   string        `mapstructure:"DOWNSTREAM_BASE_URL_PRODUCTION"`
	DownstreamTimeout   time.Duration `mapstructure:"DOWNSTREAM_TIMEOUT"`
	AuctionTimezone     string        `mapstructure:"AUCTION_TIMEZONE"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	CORSAllowedOrigins  string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	CurrencyPath        string        `mapstructure:"CURRENCY_PATH"`
	UserPath            string        `mapstructure:"USER_PATH"`
	AuctionDetailsPath  string        `mapstructure:"AUCTION_DETAILS_PATH"`
	PrepopulateAuctions bool          `mapstructure:"PREPOPULATE_AUCTIONS"`
}

var defaults = map[string]any{
	"PORT":                           "8080",
	"APP_ENV":                        EnvLocal,
	"DOWNSTREAM_BASE_URL_LOCAL":      "http://localhost:8080",
	"DOWNSTREAM_BASE_URL_PRODUCTION": "",
	"DOWNSTREAM_TIMEOUT":             "5s",
	"AUCTION_TIMEZONE":               "Asia/Singapore",
	"LOG_LEVEL":                      "info",
	"CORS_ALLOWED_ORIGINS":           "*",
	"CURRENCY_PATH":                  "/api/currency/{id}",
	"USER_PATH":                      "",
	"AUCTION_DETAILS_PATH":           "/api/auctiondetails/owner/{id}",
	"PREPOPULATE_AUCTIONS":           false,
}

// Load reads config.yaml from the working directory when present and lets the environment override it
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise only fail at request time
func (c *Config) Validate() error {
	switch c.AppEnv {
	case EnvLocal, EnvProduction:
	default:
		return fmt.Errorf("config: APP_ENV must be %q or %q, got %q", EnvLocal, EnvProduction, c.AppEnv)
	}
	if c.DownstreamBaseURL() == "" {
		return fmt.Errorf("config: no downstream base url for environment %q", c.AppEnv)
	}
	if c.DownstreamTimeout <= 0 {
		return fmt.Errorf("config: DOWNSTREAM_TIMEOUT must be positive, got %s", c.DownstreamTimeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// DownstreamBaseURL selects the base url for the running environment
func (c *Config) DownstreamBaseURL() string {
	if c.AppEnv == EnvProduction {
		return strings.TrimSpace(c.BaseURLProduction)
	}
	return strings.TrimSpace(c.BaseURLLocal)
}

// Location resolves the reference timezone for auction schedules
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.AuctionTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: AUCTION_TIMEZONE %q: %w", c.AuctionTimezone, err)
	}
	return loc, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
