// Package app wires configuration, clients, and services into the shared
// core used by cmd/feescope-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wealthpeek/feescope/internal/clients/eodhd"
	"github.com/wealthpeek/feescope/internal/clients/firecrawl"
	"github.com/wealthpeek/feescope/internal/clients/gemini"
	"github.com/wealthpeek/feescope/internal/clients/resend"
	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/ratelimit"
	"github.com/wealthpeek/feescope/internal/services/fundsearch"
	"github.com/wealthpeek/feescope/internal/services/lookup"
	"github.com/wealthpeek/feescope/internal/services/report"
)

// App holds all initialized clients and services.
type App struct {
	Config *common.Config
	Logger *common.Logger

	EODHDClient     interfaces.EODHDClient
	FirecrawlClient interfaces.FirecrawlClient
	GeminiClient    interfaces.GeminiClient
	Mailer          interfaces.Mailer

	LookupService     interfaces.LookupService
	FundSearchService interfaces.FundSearchService
	ReportService     interfaces.ReportService
	RateLimiter       interfaces.RateLimiter

	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes clients and services. configPath may be empty, in which
// case FEESCOPE_CONFIG, then feescope.toml beside the binary, then
// config/feescope.toml are tried in order. Missing optional provider keys
// degrade the corresponding stages rather than failing startup.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FEESCOPE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "feescope.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/feescope.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	eodhdKey, err := common.ResolveAPIKey("eodhd_api_key", config.Clients.EODHD.APIKey)
	if err != nil {
		logger.Warn().Msg("EODHD API key not configured - fund lookups will fail")
	}

	firecrawlKey, err := common.ResolveAPIKey("firecrawl_api_key", config.Clients.Firecrawl.APIKey)
	if err != nil {
		logger.Warn().Msg("Firecrawl API key not configured - web search fallback disabled")
	}

	geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey)
	if err != nil {
		logger.Warn().Msg("Gemini API key not configured - AI extraction disabled")
	}

	resendKey, err := common.ResolveAPIKey("resend_api_key", config.Clients.Resend.APIKey)
	if err != nil {
		logger.Warn().Msg("Resend API key not configured - report emails disabled")
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: startupStart,
	}

	if eodhdKey != "" {
		a.EODHDClient = eodhd.NewClient(eodhdKey,
			eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
			eodhd.WithLogger(logger),
			eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
			eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		)
	}

	if firecrawlKey != "" {
		a.FirecrawlClient = firecrawl.NewClient(firecrawlKey,
			firecrawl.WithBaseURL(config.Clients.Firecrawl.BaseURL),
			firecrawl.WithLogger(logger),
			firecrawl.WithTimeout(config.Clients.Firecrawl.GetTimeout()),
		)
	}

	if geminiKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), geminiKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			a.GeminiClient = geminiClient
		}
	}

	if resendKey != "" {
		a.Mailer = resend.NewClient(resendKey, config.Clients.Resend.FromEmail,
			resend.WithBaseURL(config.Clients.Resend.BaseURL),
			resend.WithLogger(logger),
			resend.WithTimeout(config.Clients.Resend.GetTimeout()),
		)
	}

	a.LookupService = lookup.NewService(a.EODHDClient, a.FirecrawlClient, a.GeminiClient, logger)
	a.FundSearchService = fundsearch.NewService(a.FirecrawlClient, logger)
	a.ReportService = report.NewService(a.Mailer, config.Report.CTAThreshold, logger)
	a.RateLimiter = ratelimit.New(config.RateLimit.MaxRequests, config.RateLimit.GetWindow())

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
