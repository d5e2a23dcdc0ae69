package ai

import (
	"context"
	"fmt"

	"fundraise-backend/pkg/gemini"

	"go.uber.org/zap"
)

// placeholderKey is the value shipped in sample env files.
const placeholderKey = "your-gemini-api-key-here"

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	GeminiAPIKey string
	GeminiModel  string

	// Ollama settings can change at runtime, so they are read through getters.
	OllamaBaseURL func() string
	OllamaModel   func() string
}

func (c Config) hasGeminiKey() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != placeholderKey
}

// NewCompletionService creates a CompletionService based on the config.
// It returns ErrNotConfigured when the selected provider has no credentials.
func NewCompletionService(ctx context.Context, cfg Config, logger *zap.Logger) (CompletionService, error) {
	switch cfg.Provider {
	case ProviderNone:
		return nil, ErrNotConfigured

	case ProviderGemini, "":
		if !cfg.hasGeminiKey() {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider: %w", ErrNotConfigured)
		}
		g, err := gemini.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return g, nil

	case ProviderOllama:
		return NewOllamaServiceWithGetters(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	case ProviderAuto:
		ollama := NewOllamaServiceWithGetters(cfg.OllamaBaseURL, cfg.OllamaModel)
		if !cfg.hasGeminiKey() {
			return ollama, nil
		}
		g, err := gemini.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return NewFallbackService(g, ollama, logger), nil

	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", cfg.Provider)
	}
}
