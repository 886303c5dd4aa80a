package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/domain"
)

var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

// AnthropicService LLMService over the Anthropic Messages REST API.
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService builds the adapter.
// With an empty apiKey every call fails with domain.ErrAIUnavailable.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicDefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

// WithBaseURL points the adapter at another endpoint (tests, proxies).
func (s *AnthropicService) WithBaseURL(u string) *AnthropicService {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

// Name provider label.
func (s *AnthropicService) Name() string { return "anthropic" }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// StockInsights sends the reorder candidates to Claude and returns the text blocks joined.
func (s *AnthropicService) StockInsights(ctx context.Context, products []dto.ReplenishmentSuggestion) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", domain.ErrAIUnavailable)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    stockSystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: buildStockPrompt(products)}},
	})
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("ai: anthropic call cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("ai: anthropic call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := readBody(resp)
	if err != nil {
		return "", fmt.Errorf("ai: read response: %w", err)
	}

	var anthResp anthropicResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(raw, &anthResp) == nil && anthResp.Error != nil {
			return "", fmt.Errorf("ai: anthropic error (%s): %s", anthResp.Error.Type, anthResp.Error.Message)
		}
		return "", fmt.Errorf("ai: anthropic HTTP %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &anthResp); err != nil {
		return "", fmt.Errorf("ai: decode anthropic response: %w", err)
	}

	var out []string
	for _, block := range anthResp.Content {
		if block.Type == "text" && block.Text != "" {
			out = append(out, block.Text)
		}
	}
	if len(out) == 0 {
		return "", fmt.Errorf("ai: anthropic returned no text")
	}
	return strings.TrimSpace(strings.Join(out, "\n")), nil
}
