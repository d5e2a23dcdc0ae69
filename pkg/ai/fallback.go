package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.uber.org/zap"
)

// FallbackService routes completions to Gemini first (better quality) and
// falls back to Ollama when Gemini fails.
type FallbackService struct {
	gemini CompletionService
	ollama CompletionService
	logger *zap.Logger
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini, ollama CompletionService, logger *zap.Logger) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
		logger: logger.Named("ai"),
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return containsAny(err.Error(), "connection refused", "no such host", "network is unreachable", "connection reset", "timeout", "dial tcp", "eof")
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(), "429", "quota", "rate limit", "too many requests", "resource exhausted", "resource_exhausted")
}

func containsAny(s string, indicators ...string) bool {
	s = strings.ToLower(s)
	for _, indicator := range indicators {
		if strings.Contains(s, indicator) {
			return true
		}
	}
	return false
}

// Complete tries Gemini, then Ollama. A connection failure on Ollama after a
// transient Gemini error gets one more Gemini attempt.
func (f *FallbackService) Complete(ctx context.Context, prompt string) (string, error) {
	var geminiErr error
	if f.gemini != nil {
		result, err := f.gemini.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		geminiErr = err
		if isQuotaError(err) {
			f.logger.Warn("gemini quota exhausted, falling back to ollama", zap.Error(err))
		} else {
			f.logger.Warn("gemini error, falling back to ollama", zap.Error(err))
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}
		if isConnectionError(err) && f.gemini != nil && !isQuotaError(geminiErr) && ctx.Err() == nil {
			f.logger.Warn("ollama unreachable, retrying gemini", zap.Error(err))
			return f.gemini.Complete(ctx, prompt)
		}
		return "", fmt.Errorf("ollama completion failed: %w", err)
	}

	if geminiErr != nil {
		return "", fmt.Errorf("gemini completion failed: %w", geminiErr)
	}
	return "", ErrNotConfigured
}
