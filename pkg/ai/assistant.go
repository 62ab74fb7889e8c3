package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"thoughtfolio-backend/pkg/metrics"
)

const (
	OpMatch     = "moment_match"
	OpCapture   = "capture_extract"
	OpDiscovery = "discovery"

	maxMatches      = 5
	minMatchScore   = 0.5
	maxDiscoveries  = 4
	maxCaptureItems = 20
)

// Assistant implements Service on top of any Generator
type Assistant struct {
	gen Generator
}

func NewAssistant(gen Generator) *Assistant {
	return &Assistant{gen: gen}
}

func (a *Assistant) generate(ctx context.Context, req GenerateRequest) (string, error) {
	start := time.Now()
	text, err := a.gen.Generate(ctx, req)
	metrics.Get().ObserveAI(req.Operation, start, err)
	return text, err
}

// MatchThoughts asks the model which candidates fit the moment.
// Unknown ids are dropped and results are sorted by score.
func (a *Assistant) MatchThoughts(ctx context.Context, description string, candidates []Candidate) ([]ThoughtMatch, error) {
	if len(candidates) == 0 {
		return []ThoughtMatch{}, nil
	}

	text, err := a.generate(ctx, GenerateRequest{
		Operation:   OpMatch,
		Prompt:      buildMatchPrompt(description, candidates),
		JSON:        true,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	raw, err := decodeList[ThoughtMatch](extractJSON(text), "matches")
	if err != nil {
		return nil, fmt.Errorf("failed to parse match JSON: %w", err)
	}

	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}

	seen := make(map[string]bool)
	matches := make([]ThoughtMatch, 0, len(raw))
	for _, m := range raw {
		if !known[m.GemID] || seen[m.GemID] {
			continue
		}
		m.RelevanceScore = clampScore(m.RelevanceScore)
		if m.RelevanceScore < minMatchScore {
			continue
		}
		seen[m.GemID] = true
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].RelevanceScore > matches[j].RelevanceScore
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches, nil
}

// ExtractCapture pulls insights out of pasted content and images
func (a *Assistant) ExtractCapture(ctx context.Context, in CaptureInput, contextSlugs []string) ([]CaptureItem, error) {
	text, err := a.generate(ctx, GenerateRequest{
		Operation:   OpCapture,
		Prompt:      buildCapturePrompt(in.Content, len(in.Images), contextSlugs),
		Images:      in.Images,
		JSON:        true,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[CaptureItem](extractJSON(text), "items")
	if err != nil {
		return nil, fmt.Errorf("failed to parse capture JSON: %w", err)
	}

	allowed := make(map[string]bool, len(contextSlugs))
	for _, s := range contextSlugs {
		allowed[s] = true
	}

	result := make([]CaptureItem, 0, len(items))
	for _, item := range items {
		item.Content = strings.TrimSpace(item.Content)
		if item.Content == "" {
			continue
		}
		switch item.Type {
		case "gem", "note", "source":
		default:
			item.Type = "gem"
		}
		if !allowed[item.ContextSlug] {
			item.ContextSlug = "other"
		}
		item.Confidence = clampScore(item.Confidence)
		result = append(result, item)
		if len(result) == maxCaptureItems {
			break
		}
	}
	return result, nil
}

// Discover suggests new thoughts for a topic. grounded enables web search.
func (a *Assistant) Discover(ctx context.Context, query, contextSlug string, grounded bool) ([]DiscoveryItem, error) {
	text, err := a.generate(ctx, GenerateRequest{
		Operation:   OpDiscovery,
		Prompt:      buildDiscoveryPrompt(query, contextSlug, grounded),
		JSON:        true,
		Grounded:    grounded,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	items, err := decodeList[DiscoveryItem](extractJSON(text), "items")
	if err != nil {
		return nil, fmt.Errorf("failed to parse discovery JSON: %w", err)
	}

	result := make([]DiscoveryItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Content) == "" {
			continue
		}
		if item.ContextSlug == "" {
			item.ContextSlug = contextSlug
		}
		result = append(result, item)
		if len(result) == maxDiscoveries {
			break
		}
	}
	return result, nil
}
