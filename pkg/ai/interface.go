package ai

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the factory when no provider can be built.
var ErrNotConfigured = errors.New("no AI provider configured")

// CompletionService turns a prompt into generated text.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
	ProviderNone   ProviderType = "none"
)
