// Package lookup resolves fund codes to names and expense ratios by
// cascading across EODHD fundamentals, EODHD ticker search, and a web
// search fallback.
package lookup

import (
	"context"
	"regexp"
	"strings"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/models"
)

const (
	minFundCodeLen = 2
	maxFundCodeLen = 20

	notFoundMessage = "Could not find MER for this fund code. Please verify the code is correct or enter the MER manually."
)

var fundCodePattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// Service implements LookupService
type Service struct {
	eodhd     interfaces.EODHDClient
	firecrawl interfaces.FirecrawlClient
	gemini    interfaces.GeminiClient
	logger    *common.Logger
}

// NewService creates a new lookup service. firecrawl and gemini may be nil;
// the corresponding fallback stages are then skipped.
func NewService(
	eodhd interfaces.EODHDClient,
	firecrawl interfaces.FirecrawlClient,
	gemini interfaces.GeminiClient,
	logger *common.Logger,
) *Service {
	return &Service{
		eodhd:     eodhd,
		firecrawl: firecrawl,
		gemini:    gemini,
		logger:    logger,
	}
}

// ValidateFundCode normalizes raw input and checks the length and charset
// bounds. Returns the cleaned code or a ValidationError. No network calls
// happen before this passes.
func ValidateFundCode(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))

	if cleaned == "" {
		return "", &ValidationError{FundCode: cleaned, Reason: "Fund code is required"}
	}
	if len(cleaned) < minFundCodeLen || len(cleaned) > maxFundCodeLen {
		return cleaned, &ValidationError{FundCode: cleaned, Reason: "Invalid fund code length"}
	}
	if !fundCodePattern.MatchString(cleaned) {
		return cleaned, &ValidationError{FundCode: cleaned, Reason: "Fund code must contain only letters, numbers, dots, and hyphens"}
	}
	return cleaned, nil
}

// Lookup runs the resolution cascade for a raw fund code: validation,
// suffix-formed direct lookups, search-assisted lookups, then the web
// fallback. Each candidate is tried once; the first success wins. A fully
// exhausted cascade is a business-level failure (success=false, nil error),
// inviting the user to enter the MER manually.
func (s *Service) Lookup(ctx context.Context, rawFundCode string) (*models.FundLookupResponse, error) {
	fundCode, err := ValidateFundCode(rawFundCode)
	if err != nil {
		return nil, err
	}

	if s.eodhd == nil {
		return nil, &ConfigurationError{Key: "eodhd_api_key"}
	}

	s.logger.Info().Str("fund_code", fundCode).Msg("Looking up fund")

	// Direct phase: fixed exchange suffixes, no network needed to form them.
	if record := s.tryCandidates(ctx, suffixCandidates(fundCode)); record != nil {
		return successResponse(fundCode, record), nil
	}

	// Search-assisted phase.
	if record := s.tryCandidates(ctx, s.searchCandidates(ctx, fundCode)); record != nil {
		return successResponse(fundCode, record), nil
	}

	// Web fallback. Skipped silently when no search credential is configured.
	if s.firecrawl != nil {
		if record := s.webSearchMER(ctx, fundCode); record != nil {
			return successResponse(fundCode, record), nil
		}
	} else {
		s.logger.Debug().Msg("Web search fallback not configured, skipping")
	}

	s.logger.Info().Str("fund_code", fundCode).Msg("Could not find MER for fund")

	return &models.FundLookupResponse{
		Success:  false,
		FundCode: fundCode,
		Error:    notFoundMessage,
	}, nil
}

// tryCandidates fetches fundamentals for each candidate in order and stops
// at the first one yielding a usable MER. Failed candidates are abandoned,
// never retried.
func (s *Service) tryCandidates(ctx context.Context, candidates []string) *models.FundRecord {
	for _, ticker := range candidates {
		data, err := s.eodhd.GetFundamentals(ctx, ticker)
		if err != nil {
			s.logger.Debug().Str("ticker", ticker).Err(err).Msg("Fundamentals fetch failed")
			continue
		}
		if data == nil {
			continue
		}

		if record := fundamentalsRecord(ticker, data); record != nil {
			s.logger.Info().
				Str("ticker", ticker).
				Str("fund_name", record.Name).
				Float64("mer", record.MER).
				Msg("MER found")
			return record
		}
	}
	return nil
}

func successResponse(fundCode string, record *models.FundRecord) *models.FundLookupResponse {
	return &models.FundLookupResponse{
		Success:  true,
		FundCode: fundCode,
		FundName: record.Name,
		MER:      record.MER,
		Source:   record.Source,
	}
}

// Ensure Service implements LookupService
var _ interfaces.LookupService = (*Service)(nil)
