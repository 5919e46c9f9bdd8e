package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/models"
)

func TestMineMER_Patterns(t *testing.T) {
	cases := []struct {
		name     string
		markdown string
		want     float64
		ok       bool
	}{
		{"plain MER", "Fund facts\nMER: 2.35%\n", 2.35, true},
		{"long form", "Management Expense Ratio: 1.98% as of December", 1.98, true},
		{"expense ratio", "Expense Ratio 0.22%", 0.22, true},
		{"net expense", "Net Expense: 1.10%", 1.1, true},
		{"management fee", "Management fee: 0.75%", 0.75, true},
		{"total expense", "Total Expense: 2.05%", 2.05, true},
		{"table row", "| Fund | ABC |\n| MER | 2.12% |", 2.12, true},
		{"case insensitive", "mer: 1.50%", 1.5, true},
		{"no percent sign", "MER: 2.35 basis", 0, false},
		{"no match", "This page discusses performance only.", 0, false},
		{"out of range high", "MER: 45%", 0, false},
		{"out of range low", "MER: 0.001%", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := mineMER(tc.markdown)
			if ok != tc.ok {
				t.Fatalf("ok: got %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("mer: got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMineMER_FalsePositiveContinuesToNothing(t *testing.T) {
	// A capture outside the plausible bound is discarded; there is no
	// second pattern match here, so the whole document yields nothing.
	if _, ok := mineMER("MER: 99%"); ok {
		t.Error("implausible capture must be rejected")
	}
}

func TestFundNameFromTitle(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"morningstar suffix", "RBC Select Balanced Portfolio - Morningstar Report", "RBC Select Balanced Portfolio"},
		{"globe suffix", "CI Select Fund - Globe Investor", "CI Select Fund"},
		{"fund facts suffix", "TD Dividend Growth - Fund Facts 2024", "TD Dividend Growth"},
		{"trailing parenthetical", "Mackenzie Growth Fund (Series A)", "Mackenzie Growth Fund"},
		{"clean title", "Fidelity True North Fund", "Fidelity True North Fund"},
		{"too short", "AB", "Fund XYZ123"},
		{"empty", "", "Fund XYZ123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fundNameFromTitle(tc.title, "XYZ123")
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifySource(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.morningstar.ca/ca/report/x", "Morningstar Canada"},
		{"https://www.theglobeandmail.com/investing/funds/x", "Globe and Mail"},
		{"https://funds.cifinancial.com/en/funds/x", "CI Financial"},
		{"https://www.ci.com/x", "CI Financial"},
		{"https://example.com/fund-page", "Fund Data Search"},
	}

	for _, tc := range cases {
		if got := classifySource(tc.url); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.url, got, tc.want)
		}
	}
}

func TestWebSearchMER_StopsAtFirstValidatedHit(t *testing.T) {
	var scraped []string
	firecrawl := &mockFirecrawlClient{
		searchFn: func(_ context.Context, query string, _ int) ([]models.WebSearchResult, error) {
			scraped = append(scraped, query)
			return []models.WebSearchResult{
				{Title: "No fees here", URL: "https://example.com/a", Markdown: "performance only"},
				{Title: "TD Fund - Fund Facts", URL: "https://example.com/b", Markdown: "MER: 1.76%"},
				{Title: "Should never be read", URL: "https://example.com/c", Markdown: "MER: 9.99%"},
			}, nil
		},
	}
	svc := NewService(&mockEODHDClient{}, firecrawl, nil, common.NewSilentLogger())

	record := svc.webSearchMER(context.Background(), "TDB900")
	if record == nil {
		t.Fatal("expected record")
	}
	if record.MER != 1.76 {
		t.Errorf("mer: got %v, want first validated hit 1.76", record.MER)
	}
	if record.Name != "TD Fund" {
		t.Errorf("name: got %q", record.Name)
	}
	if len(scraped) != 1 {
		t.Errorf("expected a single query before stopping, got %d", len(scraped))
	}
}

func TestWebSearchMER_QueryErrorsContinue(t *testing.T) {
	calls := 0
	firecrawl := &mockFirecrawlClient{
		searchFn: func(_ context.Context, _ string, _ int) ([]models.WebSearchResult, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("search unavailable")
			}
			return []models.WebSearchResult{
				{Title: "Fund Page", URL: "https://x.ca", Markdown: "MER: 2.00%"},
			}, nil
		},
	}
	svc := NewService(&mockEODHDClient{}, firecrawl, nil, common.NewSilentLogger())

	record := svc.webSearchMER(context.Background(), "ABC1234")
	if record == nil {
		t.Fatal("expected record from third query")
	}
	if calls != 3 {
		t.Errorf("expected 3 queries, got %d", calls)
	}
}
