package lookup

import (
	"context"
	"reflect"
	"testing"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/models"
)

func TestSuffixCandidates_Order(t *testing.T) {
	got := suffixCandidates("RBF1018")
	want := []string{
		"RBF1018", "RBF1018.US", "RBF1018.TO", "RBF1018.CF",
		"RBF1018.CA", "RBF1018.V", "RBF1018.CN", "RBF1018.NEO",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func searchService(results []models.TickerSearchResult, err error) (*Service, *mockEODHDClient) {
	eodhd := &mockEODHDClient{
		searchFn: func(_ context.Context, _ string, _ int) ([]models.TickerSearchResult, error) {
			return results, err
		},
	}
	return NewService(eodhd, nil, nil, common.NewSilentLogger()), eodhd
}

func TestSearchCandidates_FiltersByCodeOrName(t *testing.T) {
	svc, _ := searchService([]models.TickerSearchResult{
		{Code: "VAB", Exchange: "TO", Name: "Vanguard Canadian Aggregate Bond"},
		{Code: "ZZZ", Exchange: "US", Name: "Unrelated Fund"},
		{Code: "VAB2", Exchange: "US", Name: "Another VAB fund"},
	}, nil)

	got := svc.searchCandidates(context.Background(), "VAB")
	want := []string{"VAB.TO", "VAB2.US"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSearchCandidates_NoTextualMatchKeepsAll(t *testing.T) {
	svc, _ := searchService([]models.TickerSearchResult{
		{Code: "AAA", Exchange: "US", Name: "First"},
		{Code: "BBB", Exchange: "TO", Name: "Second"},
	}, nil)

	got := svc.searchCandidates(context.Background(), "XYZ9999")
	// Everything kept, Canadian entries sorted first.
	want := []string{"BBB.TO", "AAA.US"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSearchCandidates_CanadianSortIsStable(t *testing.T) {
	svc, _ := searchService([]models.TickerSearchResult{
		{Code: "FND", Exchange: "US", Name: "FND US"},
		{Code: "FND", Exchange: "TO", Name: "FND Toronto"},
		{Code: "FND", Exchange: "V", Name: "FND Venture"},
		{Code: "FND", Exchange: "LSE", Name: "FND London"},
	}, nil)

	got := svc.searchCandidates(context.Background(), "FND")
	want := []string{"FND.TO", "FND.V", "FND.US", "FND.LSE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSearchCandidates_TruncatesToTopFive(t *testing.T) {
	results := []models.TickerSearchResult{
		{Code: "FND1", Exchange: "US", Name: "FND one"},
		{Code: "FND2", Exchange: "US", Name: "FND two"},
		{Code: "FND3", Exchange: "US", Name: "FND three"},
		{Code: "FND4", Exchange: "US", Name: "FND four"},
		{Code: "FND5", Exchange: "US", Name: "FND five"},
		{Code: "FND6", Exchange: "US", Name: "FND six"},
		{Code: "FND7", Exchange: "US", Name: "FND seven"},
	}
	svc, _ := searchService(results, nil)

	got := svc.searchCandidates(context.Background(), "FND")
	if len(got) != maxSearchCandidates {
		t.Errorf("got %d candidates, want %d", len(got), maxSearchCandidates)
	}
}

func TestSearchCandidates_SkipsMalformedEntries(t *testing.T) {
	svc, _ := searchService([]models.TickerSearchResult{
		{Code: "", Exchange: "TO", Name: "Missing code"},
		{Code: "FND", Exchange: "", Name: "Missing exchange"},
		{Code: "FND", Exchange: "TO", Name: "FND fund"},
	}, nil)

	got := svc.searchCandidates(context.Background(), "FND")
	want := []string{"FND.TO"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSearchCandidates_EmptyOnNoResults(t *testing.T) {
	svc, _ := searchService(nil, nil)

	if got := svc.searchCandidates(context.Background(), "FND"); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}
