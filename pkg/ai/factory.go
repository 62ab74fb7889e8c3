package ai

import (
	"context"
	"fmt"
	"time"

	"thoughtfolio-backend/pkg/gemini"
)

// DynamicConfig holds AI provider configuration; Ollama settings are read through getters
// so they can be changed at runtime from the settings API
type DynamicConfig struct {
	Provider     ProviderType // "gemini", "ollama" or "auto"
	GeminiAPIKey string
	GeminiModel  string
	GeminiRPS    float64

	GetOllamaBaseURL func() string
	GetOllamaModel   func() string
}

// geminiGenerator adapts the Gemini REST client to Generator
type geminiGenerator struct {
	svc *gemini.GeminiService
}

// NewGeminiGenerator wraps a Gemini client
func NewGeminiGenerator(svc *gemini.GeminiService) Generator {
	return &geminiGenerator{svc: svc}
}

func (g *geminiGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	images := make([]gemini.InlineData, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, gemini.InlineData{MimeType: img.MimeType, Data: img.Data})
	}
	return g.svc.GenerateContent(ctx, gemini.Request{
		Prompt:      req.Prompt,
		Images:      images,
		JSON:        req.JSON,
		Grounded:    req.Grounded,
		Temperature: req.Temperature,
	})
}

// NewGeneratorWithDynamicConfig creates a Generator based on the config.
// Every provider is wrapped in a circuit breaker
func NewGeneratorWithDynamicConfig(cfg DynamicConfig) (Generator, error) {
	newGemini := func() Generator {
		return NewBreakerGenerator("gemini", NewGeminiGenerator(gemini.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiRPS)), DefaultBreakerConfig())
	}
	newOllama := func() Generator {
		return NewBreakerGenerator("ollama", NewOllamaServiceWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel), DefaultBreakerConfig())
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return newGemini(), nil

	case ProviderOllama:
		return newOllama(), nil

	case ProviderAuto:
		if cfg.GeminiAPIKey == "" {
			return newOllama(), nil
		}
		return NewFallbackGenerator(newGemini(), newOllama()), nil

	default:
		// Default to Gemini if API key is available, otherwise Ollama
		if cfg.GeminiAPIKey != "" {
			return newGemini(), nil
		}
		return newOllama(), nil
	}
}

// DefaultBreakerConfig trips after 3 consecutive failures and probes again after 30s
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures:          3,
		Timeout:              30 * time.Second,
		HalfOpenMaxSuccesses: 1,
	}
}
