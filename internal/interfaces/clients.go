// Package interfaces defines client and service contracts for Feescope
package interfaces

import (
	"context"

	"github.com/wealthpeek/feescope/internal/models"
)

// EODHDClient provides access to the EODHD financial data API.
type EODHDClient interface {
	// GetFundamentals retrieves fundamental data for an exchange-qualified
	// ticker. A 404 or non-object payload returns (nil, nil): no data for
	// this ticker, not a hard error.
	GetFundamentals(ctx context.Context, ticker string) (*models.Fundamentals, error)

	// SearchTickers queries the EODHD search endpoint for tickers matching
	// a raw fund code or name fragment.
	SearchTickers(ctx context.Context, query string, limit int) ([]models.TickerSearchResult, error)
}

// FirecrawlClient provides web search with scraped markdown content.
type FirecrawlClient interface {
	// Search runs a web search and returns scraped results. Errors from the
	// upstream are returned as-is; callers in the lookup cascade treat them
	// as "no candidates".
	Search(ctx context.Context, query string, limit int) ([]models.WebSearchResult, error)
}

// GeminiClient extracts structured fund data from scraped text.
type GeminiClient interface {
	// ExtractMER asks the model for {fundName, mer, source, confidence}
	// from a block of scraped text. Low confidence or a non-positive MER
	// yields (nil, nil).
	ExtractMER(ctx context.Context, fundCode string, text string) (*models.FundRecord, error)
}

// Mailer sends transactional email.
type Mailer interface {
	// Send delivers an HTML email and returns the provider message ID.
	Send(ctx context.Context, to string, subject string, html string) (string, error)
}
