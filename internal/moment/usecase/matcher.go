package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"thoughtfolio-backend/internal/moment/domain"
	"thoughtfolio-backend/pkg/ai"
	"thoughtfolio-backend/pkg/metrics"
	"thoughtfolio-backend/pkg/ratelimit"
)

// MatchResult is the ranked output of one matcher call
type MatchResult struct {
	Matches          []ai.ThoughtMatch `json:"matches"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
}

// Matcher ranks candidate thoughts for a description with the AI service, under a
// per-user rate limit
type Matcher struct {
	assistant ai.Service
	limiter   ratelimit.Limiter
}

func NewMatcher(assistant ai.Service, limiter ratelimit.Limiter) *Matcher {
	return &Matcher{assistant: assistant, limiter: limiter}
}

// ValidCandidates drops candidates without an id or content
func ValidCandidates(candidates []ai.Candidate) []ai.Candidate {
	valid := make([]ai.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Content) == "" {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// Match returns an empty result without touching the quota or the model when there is
// nothing to rank. ErrRateLimited is returned once the user's window is exhausted.
func (m *Matcher) Match(ctx context.Context, userID, description string, candidates []ai.Candidate) (*MatchResult, error) {
	candidates = ValidCandidates(candidates)
	if len(candidates) == 0 {
		return &MatchResult{Matches: []ai.ThoughtMatch{}, ProcessingTimeMs: 0}, nil
	}
	if m.assistant == nil {
		return nil, domain.ErrAIUnavailable
	}

	if m.limiter != nil {
		res, err := m.limiter.Allow(ctx, userID)
		if err != nil {
			// fail open when the counter store is unreachable
			log.Printf("[Matcher] rate limiter error for user %s: %v", userID, err)
		} else if !res.Allowed {
			metrics.Get().RateLimitRejected.WithLabelValues("moment_match").Inc()
			return nil, domain.ErrRateLimited
		}
	}

	start := time.Now()
	matches, err := m.assistant.MatchThoughts(ctx, description, candidates)
	if err != nil {
		return nil, err
	}
	return &MatchResult{
		Matches:          matches,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}
