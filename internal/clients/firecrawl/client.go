// Package firecrawl provides a client for the Firecrawl search API
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/models"
)

const (
	DefaultBaseURL = "https://api.firecrawl.dev/v1"
	DefaultTimeout = 15 * time.Second
)

// Client implements the FirecrawlClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Firecrawl client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Firecrawl API error: %s (status: %d)", e.Message, e.StatusCode)
}

type searchRequest struct {
	Query         string        `json:"query"`
	Limit         int           `json:"limit"`
	Lang          string        `json:"lang,omitempty"`
	ScrapeOptions scrapeOptions `json:"scrapeOptions"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

type searchResponse struct {
	Success bool                     `json:"success"`
	Data    []models.WebSearchResult `json:"data"`
}

// Search runs a web search and scrapes each result to markdown.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.WebSearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	body, err := json.Marshal(searchRequest{
		Query:         query,
		Limit:         limit,
		Lang:          "en",
		ScrapeOptions: scrapeOptions{Formats: []string{"markdown"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("query", query).Msg("Firecrawl search request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(msg),
		}
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !searchResp.Success {
		return nil, nil
	}

	c.logger.Debug().Str("query", query).Int("results", len(searchResp.Data)).Msg("Firecrawl search returned results")

	return searchResp.Data, nil
}

// Ensure Client implements FirecrawlClient
var _ interfaces.FirecrawlClient = (*Client)(nil)
