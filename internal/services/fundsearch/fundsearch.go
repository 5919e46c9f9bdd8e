// Package fundsearch discovers Canadian fund codes from public web content
// for users who know a fund's name but not its code.
package fundsearch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/models"
)

const (
	minQueryLen    = 2
	maxResults     = 10
	minCodeLen     = 5
	maxCodeLen     = 10
	searchPageSize = 10
)

// Fund codes show up in fund facts documents and dealer pages in a handful
// of shapes: a bare alphanumeric code like RBF1018 or CIG2111, or labelled
// as "Fund Code: ABC123".
var fundCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z]{2,4}\d{3,5})\b`),
	regexp.MustCompile(`(?i)Fund Code[:\s]+([A-Z0-9]+)`),
	regexp.MustCompile(`(?i)Code[:\s]+([A-Z]{2,4}\d{3,5})`),
}

// Service implements fund-code discovery over a web search provider.
type Service struct {
	firecrawl interfaces.FirecrawlClient
	logger    *common.Logger
}

// NewService builds the discovery service. The search client may be nil
// when no API key is configured; Search then reports the service as
// unavailable instead of failing at startup.
func NewService(firecrawl interfaces.FirecrawlClient, logger *common.Logger) *Service {
	return &Service{
		firecrawl: firecrawl,
		logger:    logger,
	}
}

// Search looks up fund codes matching the free-text query. Malformed
// queries and a missing search provider come back as success=false
// responses rather than errors so the HTTP layer can pass them straight
// through.
func (s *Service) Search(ctx context.Context, query string) (*models.FundSearchResponse, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLen {
		return &models.FundSearchResponse{
			Success: false,
			Error:   "Query must be at least 2 characters",
		}, nil
	}

	if s.firecrawl == nil {
		return &models.FundSearchResponse{
			Success: false,
			Error:   "Search service not configured",
		}, nil
	}

	searchQuery := fmt.Sprintf("%q fund code Canada mutual fund OR seg fund", query)
	s.logger.Debug().Str("query", query).Msg("searching for fund codes")

	results, err := s.firecrawl.Search(ctx, searchQuery, searchPageSize)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("fund code search failed")
		return &models.FundSearchResponse{
			Success: false,
			Error:   "Search failed",
		}, nil
	}

	matches := collectMatches(results)
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	return &models.FundSearchResponse{
		Success: true,
		Query:   query,
		Results: matches,
	}, nil
}

// collectMatches mines fund codes out of each search result, deduplicating
// across the whole result set while preserving discovery order.
func collectMatches(results []models.WebSearchResult) []models.FundCodeMatch {
	matches := make([]models.FundCodeMatch, 0, maxResults)
	seen := make(map[string]bool)

	for _, result := range results {
		name := resultFundName(result)
		for _, code := range mineCodes(result.Markdown) {
			if seen[code] {
				continue
			}
			seen[code] = true
			fundName := name
			if fundName == "" {
				fundName = "Fund " + code
			}
			matches = append(matches, models.FundCodeMatch{
				FundCode: code,
				FundName: fundName,
				Source:   result.URL,
			})
		}
	}

	return matches
}

// mineCodes returns the candidate fund codes found in a page, in pattern
// then document order, without duplicates.
func mineCodes(content string) []string {
	var codes []string
	seen := make(map[string]bool)

	for _, pattern := range fundCodePatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			code := strings.ToUpper(match[1])
			if len(code) < minCodeLen || len(code) > maxCodeLen || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}

	return codes
}

// resultFundName prefers the page title, falling back to the first
// substantial content line.
func resultFundName(result models.WebSearchResult) string {
	if result.Title != "" {
		return result.Title
	}
	for _, line := range strings.Split(result.Markdown, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 {
			if len(line) > 100 {
				line = line[:100]
			}
			return line
		}
	}
	return ""
}

var _ interfaces.FundSearchService = (*Service)(nil)
