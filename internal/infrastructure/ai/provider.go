package ai

import (
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/pkg/config"
)

// Supported AI_PROVIDER values.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// NewFromConfig returns the adapter selected by AI_PROVIDER (gemini when unset or unknown).
// A missing key is not an error here; the adapter reports ErrAIUnavailable on use.
func NewFromConfig(cfg config.AIConfig) ports.LLMService {
	if cfg.Provider == ProviderAnthropic {
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
}
