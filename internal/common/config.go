// Package common provides shared utilities for Feescope
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Feescope
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Clients     ClientsConfig   `toml:"clients"`
	RateLimit   RateLimitConfig `toml:"rate_limit"`
	Report      ReportConfig    `toml:"report"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RateLimitConfig holds the per-client limiter settings for the lookup endpoints.
type RateLimitConfig struct {
	MaxRequests int    `toml:"max_requests"`
	Window      string `toml:"window"`
}

// GetWindow parses and returns the window duration
func (c *RateLimitConfig) GetWindow() time.Duration {
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return time.Minute
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD     EODHDConfig     `toml:"eodhd"`
	Firecrawl FirecrawlConfig `toml:"firecrawl"`
	Gemini    GeminiConfig    `toml:"gemini"`
	Resend    ResendConfig    `toml:"resend"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 8 * time.Second
	}
	return d
}

// FirecrawlConfig holds Firecrawl search API configuration
type FirecrawlConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FirecrawlConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// ResendConfig holds Resend email configuration
type ResendConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ResendConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// ReportConfig holds fee-report settings.
type ReportConfig struct {
	// CTAThreshold is the annual fee level (CAD) above which the report
	// includes the consultation call-to-action block.
	CTAThreshold float64 `toml:"cta_threshold"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		RateLimit: RateLimitConfig{
			MaxRequests: 100,
			Window:      "60s",
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "8s",
			},
			Firecrawl: FirecrawlConfig{
				BaseURL: "https://api.firecrawl.dev/v1",
				Timeout: "15s",
			},
			Gemini: GeminiConfig{
				Model: "gemini-2.0-flash",
			},
			Resend: ResendConfig{
				BaseURL:   "https://api.resend.com",
				FromEmail: "reports@wealthpeek.ca",
				Timeout:   "10s",
			},
		},
		Report: ReportConfig{
			CTAThreshold: 3500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FEESCOPE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FEESCOPE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FEESCOPE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FEESCOPE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("FEESCOPE_RATE_LIMIT_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.RateLimit.MaxRequests = n
		}
	}

	if v := os.Getenv("FEESCOPE_FROM_EMAIL"); v != "" {
		config.Clients.Resend.FromEmail = v
	}
}

// ResolveAPIKey resolves an API key from environment variables or the config
// fallback. Returns an error when the key is nowhere configured.
func ResolveAPIKey(name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"eodhd_api_key":     {"EODHD_API_KEY", "FEESCOPE_EODHD_API_KEY"},
		"firecrawl_api_key": {"FIRECRAWL_API_KEY", "FEESCOPE_FIRECRAWL_API_KEY"},
		"gemini_api_key":    {"GEMINI_API_KEY", "FEESCOPE_GEMINI_API_KEY", "GOOGLE_API_KEY"},
		"resend_api_key":    {"RESEND_API_KEY", "FEESCOPE_RESEND_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or config", name)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
