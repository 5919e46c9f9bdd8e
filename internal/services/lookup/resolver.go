package lookup

import (
	"context"
	"sort"
	"strings"
)

// exchangeSuffixes are tried in order for the direct-lookup phase. The bare
// code comes first, then US, then the Canadian venues where retail mutual
// funds (.CF) and TSX-listed ETFs (.TO) live.
var exchangeSuffixes = []string{"", ".US", ".TO", ".CF", ".CA", ".V", ".CN", ".NEO"}

// maxSearchCandidates bounds the search-assisted phase.
const maxSearchCandidates = 5

// suffixCandidates pairs the fund code with each exchange suffix, in
// priority order, without any network call.
func suffixCandidates(fundCode string) []string {
	candidates := make([]string, 0, len(exchangeSuffixes))
	for _, suffix := range exchangeSuffixes {
		candidates = append(candidates, fundCode+suffix)
	}
	return candidates
}

// searchCandidates asks the search API for tickers matching the fund code.
// Results whose code or name contain the query are preferred; when nothing
// matches textually all results are kept. Canadian-exchange tickers sort
// first and the list is truncated to maxSearchCandidates. Any upstream or
// parse failure yields an empty list: no more candidates to try, not an
// error.
func (s *Service) searchCandidates(ctx context.Context, fundCode string) []string {
	results, err := s.eodhd.SearchTickers(ctx, fundCode, 10)
	if err != nil {
		s.logger.Debug().Str("fund_code", fundCode).Err(err).Msg("Ticker search failed")
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	var tickers []string
	for _, result := range results {
		if result.Code == "" || result.Exchange == "" {
			continue
		}
		fullTicker := result.Code + "." + result.Exchange
		if strings.Contains(result.Code, fundCode) ||
			strings.Contains(strings.ToLower(result.Name), strings.ToLower(fundCode)) {
			tickers = append(tickers, fullTicker)
			s.logger.Debug().Str("ticker", fullTicker).Str("name", result.Name).Msg("Search match")
		}
	}

	// No textual matches: fall back to everything the search returned.
	if len(tickers) == 0 {
		for _, result := range results {
			if result.Code == "" || result.Exchange == "" {
				continue
			}
			tickers = append(tickers, result.Code+"."+result.Exchange)
		}
	}

	sort.SliceStable(tickers, func(i, j int) bool {
		return isCanadianTicker(tickers[i]) && !isCanadianTicker(tickers[j])
	})

	if len(tickers) > maxSearchCandidates {
		tickers = tickers[:maxSearchCandidates]
	}
	return tickers
}

func isCanadianTicker(ticker string) bool {
	return strings.HasSuffix(ticker, ".TO") ||
		strings.HasSuffix(ticker, ".V") ||
		strings.HasSuffix(ticker, ".CA")
}
