// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/wealthpeek/feescope/internal/common"
	"github.com/wealthpeek/feescope/internal/interfaces"
	"github.com/wealthpeek/feescope/internal/models"
)

const (
	DefaultModel = "gemini-2.0-flash"

	// minConfidence is the floor below which an extraction is discarded.
	minConfidence = 0.5

	// maxPromptText bounds how much scraped text is sent per extraction.
	maxPromptText = 16 * 1024
)

// Client implements the GeminiClient interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: genaiClient,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// merExtraction is the constrained output schema for an extraction call.
type merExtraction struct {
	FundName   string  `json:"fund_name"`
	MER        float64 `json:"mer"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// ExtractMER submits scraped text to the model with a structured-output
// schema and returns a fund record when the model is confident. A reported
// error, low confidence, or a non-positive MER yields (nil, nil) so the
// cascade treats it as "no data".
func (c *Client) ExtractMER(ctx context.Context, fundCode string, text string) (*models.FundRecord, error) {
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	prompt := buildExtractionPrompt(fundCode, text)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"fund_name":  {Type: genai.TypeString},
				"mer":        {Type: genai.TypeNumber},
				"source":     {Type: genai.TypeString},
				"confidence": {Type: genai.TypeNumber},
				"error":      {Type: genai.TypeString},
			},
			Required: []string{"fund_name", "mer", "confidence"},
		},
	}

	c.logger.Debug().Str("model", c.model).Str("fund_code", fundCode).Msg("Gemini MER extraction")

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	var extraction merExtraction
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return nil, fmt.Errorf("failed to decode extraction: %w", err)
	}

	if extraction.Error != "" || extraction.Confidence < minConfidence || extraction.MER <= 0 {
		c.logger.Debug().
			Str("fund_code", fundCode).
			Float64("confidence", extraction.Confidence).
			Msg("Gemini extraction rejected")
		return nil, nil
	}

	name := strings.TrimSpace(extraction.FundName)
	if name == "" {
		name = "Fund " + fundCode
	}
	source := strings.TrimSpace(extraction.Source)
	if source == "" {
		source = "AI Extraction"
	}

	return &models.FundRecord{
		Name:   name,
		MER:    extraction.MER,
		Source: source,
	}, nil
}

func buildExtractionPrompt(fundCode, text string) string {
	return fmt.Sprintf(`You are extracting fee data for the Canadian fund with code %s.

From the text below, find the fund's management expense ratio (MER) and its
full fund name. Report the MER as a percentage number (2.35 means 2.35%%),
never as a decimal fraction. If the text does not state an MER for this
specific fund, set confidence to 0 and explain in the error field. Set
source to the publisher of the data if identifiable.

Text:
%s`, fundCode, text)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
