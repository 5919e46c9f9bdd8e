package lookup

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wealthpeek/feescope/internal/models"
)

// merPatterns match common phrasings of an MER disclosure followed by a
// percentage. Ordered: plain-language forms first, the pipe-delimited
// table-row form last. New phrasings get appended here without touching the
// cascade.
var merPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)MER[:\s]+(\d+\.?\d*)%`),
	regexp.MustCompile(`(?i)Management\s+Expense\s+Ratio[:\s]+(\d+\.?\d*)%`),
	regexp.MustCompile(`(?i)Expense\s+Ratio[:\s]+(\d+\.?\d*)%`),
	regexp.MustCompile(`(?i)Net\s+Expense[:\s]+(\d+\.?\d*)%`),
	regexp.MustCompile(`(?i)Management\s+fee[:\s]+(\d+\.?\d*)%`),
	regexp.MustCompile(`(?i)Total\s+Expense[:\s]+(\d+\.?\d*)%`),
	regexp.MustCompile(`(?i)\|\s*MER\s*\|\s*(\d+\.?\d*)%`),
}

// titleNoise strips site-name suffixes and a trailing parenthetical from a
// search-result title when deriving a fund name.
var (
	titleSuffixPattern = regexp.MustCompile(`(?i)\s*-\s*(Morningstar|Globe|Fund Facts).*$`)
	titleParenPattern  = regexp.MustCompile(`\s*\(.*\)$`)
)

const (
	// Plausible MER bounds; captures outside this range are pattern
	// false-positives (page footers, performance figures).
	minPlausibleMER = 0.01
	maxPlausibleMER = 10
)

// webSearchQueries builds the fixed query set for a fund code.
func webSearchQueries(fundCode string) []string {
	return []string{
		fmt.Sprintf(`"%s" MER fund fact sheet Canada`, fundCode),
		fmt.Sprintf(`"%s" management expense ratio mutual fund`, fundCode),
		fmt.Sprintf(`site:morningstar.ca "%s"`, fundCode),
		fmt.Sprintf(`site:globeandmail.com "%s" fund`, fundCode),
	}
}

// webSearchMER is the last cascade stage: issue the fixed queries, mine each
// scraped result for an MER disclosure, and stop at the first validated hit.
// Exhausting every query/result pair returns nil. When a Gemini client is
// configured, results that defeat the regex patterns get one structured
// extraction attempt before moving on.
func (s *Service) webSearchMER(ctx context.Context, fundCode string) *models.FundRecord {
	for _, query := range webSearchQueries(fundCode) {
		s.logger.Debug().Str("query", query).Msg("Web search for MER")

		results, err := s.firecrawl.Search(ctx, query, 5)
		if err != nil {
			s.logger.Debug().Str("query", query).Err(err).Msg("Web search failed")
			continue
		}

		for _, result := range results {
			if mer, ok := mineMER(result.Markdown); ok {
				s.logger.Info().
					Str("fund_code", fundCode).
					Float64("mer", mer).
					Str("url", result.URL).
					Msg("MER found via web search")
				return &models.FundRecord{
					Name:   fundNameFromTitle(result.Title, fundCode),
					MER:    mer,
					Source: classifySource(result.URL),
				}
			}

			if s.gemini != nil && result.Markdown != "" {
				record, err := s.gemini.ExtractMER(ctx, fundCode, result.Markdown)
				if err != nil {
					s.logger.Debug().Str("url", result.URL).Err(err).Msg("AI extraction failed")
					continue
				}
				if record != nil && record.MER >= minPlausibleMER && record.MER <= maxPlausibleMER {
					return record
				}
			}
		}
	}
	return nil
}

// mineMER applies the MER patterns in order; the first capture inside the
// plausible range wins.
func mineMER(markdown string) (float64, bool) {
	for _, pattern := range merPatterns {
		match := pattern.FindStringSubmatch(markdown)
		if len(match) < 2 {
			continue
		}
		mer, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if mer >= minPlausibleMER && mer <= maxPlausibleMER {
			return round2(mer), true
		}
	}
	return 0, false
}

// fundNameFromTitle derives a readable fund name from a result title,
// synthesizing a placeholder when the cleaned title is too short.
func fundNameFromTitle(title, fundCode string) string {
	name := titleSuffixPattern.ReplaceAllString(title, "")
	name = titleParenPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	if len(name) < 3 {
		return "Fund " + fundCode
	}
	return name
}

// classifySource maps a result URL to a coarse publisher label.
func classifySource(url string) string {
	switch {
	case strings.Contains(url, "morningstar"):
		return "Morningstar Canada"
	case strings.Contains(url, "globeandmail"):
		return "Globe and Mail"
	case strings.Contains(url, "cifinancial") || strings.Contains(url, "ci.com"):
		return "CI Financial"
	default:
		return "Fund Data Search"
	}
}
