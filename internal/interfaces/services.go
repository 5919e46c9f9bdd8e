package interfaces

import (
	"context"
	"time"

	"github.com/wealthpeek/feescope/internal/models"
)

// LookupService resolves a raw fund code to a fund name and MER.
type LookupService interface {
	// Lookup runs the candidate cascade for a raw fund code.
	// A "not found" outcome is a success=false response with a nil error;
	// validation and configuration failures are returned as typed errors.
	Lookup(ctx context.Context, rawFundCode string) (*models.FundLookupResponse, error)
}

// FundSearchService discovers fund codes from public web content.
type FundSearchService interface {
	Search(ctx context.Context, query string) (*models.FundSearchResponse, error)
}

// ReportService renders and dispatches the fee-report email.
type ReportService interface {
	SendReport(ctx context.Context, req *models.ReportEmailRequest) (*models.ReportEmailResponse, error)
}

// RateLimitResult describes the outcome of a limiter check.
type RateLimitResult struct {
	Limited   bool
	Remaining int
	ResetIn   time.Duration
}

// RateLimiter guards an endpoint with a per-client request budget. The
// in-process implementation is not shared across instances; swapping in a
// distributed counter only requires satisfying this interface.
type RateLimiter interface {
	Check(clientKey string) RateLimitResult
}
