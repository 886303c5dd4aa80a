package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

var lowStock = []dto.ReplenishmentSuggestion{
	{Name: "Quantum Display", SKU: "QD-55", Category: "Displays", Status: "Low Stock", Stock: 12, MinStock: 15, SuggestedQty: 11},
}

func TestGemini_StockInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "k", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Contents[0].Parts[0].Text, "QD-55")

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Reorder 11 x QD-55 "}]}}]}`))
	}))
	defer srv.Close()

	out, err := NewGeminiService("k", "gemini-2.5-flash").WithBaseURL(srv.URL).StockInsights(context.Background(), lowStock)
	require.NoError(t, err)
	assert.Equal(t, "Reorder 11 x QD-55", out)
}

func TestGemini_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiService("k", "m").WithBaseURL(srv.URL).StockInsights(context.Background(), lowStock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestAnthropic_StockInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Order QD-55 now."}]}`))
	}))
	defer srv.Close()

	out, err := NewAnthropicService("k", "claude").WithBaseURL(srv.URL).StockInsights(context.Background(), lowStock)
	require.NoError(t, err)
	assert.Equal(t, "Order QD-55 now.", out)
}

func TestMissingKey_IsUnavailable(t *testing.T) {
	_, err := NewGeminiService("", "m").StockInsights(context.Background(), lowStock)
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	_, err = NewAnthropicService("", "m").StockInsights(context.Background(), lowStock)
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
}

func TestNewFromConfig(t *testing.T) {
	assert.Equal(t, "gemini", NewFromConfig(config.AIConfig{}).Name())
	assert.Equal(t, "gemini", NewFromConfig(config.AIConfig{Provider: "other"}).Name())
	assert.Equal(t, "anthropic", NewFromConfig(config.AIConfig{Provider: ProviderAnthropic}).Name())
}
