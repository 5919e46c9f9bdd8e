package app

import (
	"os"
	"path/filepath"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EODHD_API_KEY", "FEESCOPE_EODHD_API_KEY",
		"FIRECRAWL_API_KEY", "FEESCOPE_FIRECRAWL_API_KEY",
		"GEMINI_API_KEY", "FEESCOPE_GEMINI_API_KEY", "GOOGLE_API_KEY",
		"RESEND_API_KEY", "FEESCOPE_RESEND_API_KEY",
		"FEESCOPE_CONFIG", "FEESCOPE_PORT", "FEESCOPE_HOST", "FEESCOPE_RATE_LIMIT_MAX",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewAppDefaults(t *testing.T) {
	clearProviderEnv(t)

	a, err := NewApp(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("NewApp returned error: %v", err)
	}

	if a.Config.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", a.Config.Server.Port)
	}
	if a.LookupService == nil || a.FundSearchService == nil || a.ReportService == nil {
		t.Error("services not initialized")
	}
	if a.RateLimiter == nil {
		t.Error("rate limiter not initialized")
	}

	// No provider keys: clients stay nil and the dependent stages degrade.
	if a.EODHDClient != nil || a.FirecrawlClient != nil || a.Mailer != nil {
		t.Error("clients initialized without API keys")
	}
}

func TestNewAppConfigFile(t *testing.T) {
	clearProviderEnv(t)

	path := filepath.Join(t.TempDir(), "feescope.toml")
	content := `
environment = "production"

[server]
port = 9090

[rate_limit]
max_requests = 5
window = "30s"

[clients.eodhd]
api_key = "test-key"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := NewApp(path)
	if err != nil {
		t.Fatalf("NewApp returned error: %v", err)
	}

	if !a.Config.IsProduction() {
		t.Error("environment override not applied")
	}
	if a.Config.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", a.Config.Server.Port)
	}
	if a.Config.RateLimit.MaxRequests != 5 {
		t.Errorf("rate limit max = %d, want 5", a.Config.RateLimit.MaxRequests)
	}
	if a.EODHDClient == nil {
		t.Error("EODHD client not initialized from config key")
	}
}
