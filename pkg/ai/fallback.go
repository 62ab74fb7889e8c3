package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackGenerator tries the primary provider first (Gemini, better quality)
// and falls back to the secondary one (Ollama, local) on failure
type FallbackGenerator struct {
	primary   Generator
	secondary Generator
}

// NewFallbackGenerator creates a new fallback generator with both providers
func NewFallbackGenerator(primary, secondary Generator) *FallbackGenerator {
	return &FallbackGenerator{
		primary:   primary,
		secondary: secondary,
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

	return containsAny(err.Error(), []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"EOF",
	})
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	return containsAny(err.Error(), []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"RESOURCE_EXHAUSTED",
	})
}

func containsAny(s string, indicators []string) bool {
	lower := strings.ToLower(s)
	for _, indicator := range indicators {
		if strings.Contains(lower, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}

func (f *FallbackGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	var primaryErr error
	if f.primary != nil {
		result, err := f.primary.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		primaryErr = err

		switch {
		case isQuotaError(err):
			log.Printf("[AI] Primary quota exhausted for %s: %v, falling back", req.Operation, err)
		case errors.Is(err, ErrCircuitOpen):
			log.Printf("[AI] Primary circuit open for %s, falling back", req.Operation)
		default:
			log.Printf("[AI] Primary error for %s: %v, falling back", req.Operation, err)
		}
	}

	if f.secondary != nil {
		result, err := f.secondary.Generate(ctx, req)
		if err == nil {
			return result, nil
		}
		if isConnectionError(err) {
			log.Printf("[AI] Secondary connection failed for %s: %v", req.Operation, err)
		}
		if primaryErr != nil {
			return "", fmt.Errorf("all providers failed for %s: %v; %w", req.Operation, primaryErr, err)
		}
		return "", fmt.Errorf("secondary provider failed for %s: %w", req.Operation, err)
	}

	if primaryErr != nil {
		return "", primaryErr
	}
	return "", fmt.Errorf("no AI provider available for %s", req.Operation)
}
