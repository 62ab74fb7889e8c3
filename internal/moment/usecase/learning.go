package usecase

import (
	"sort"
	"strings"
	"time"

	"thoughtfolio-backend/internal/moment/analysis"
	"thoughtfolio-backend/internal/moment/domain"
	"thoughtfolio-backend/internal/moment/repository"
)

const (
	DefaultMinHelpfulCount = 2
	DefaultMinConfidence   = 0.7

	maxKeywordPatterns = 5
)

// PatternSet is what a moment looks like to the learning store
type PatternSet struct {
	EventType   domain.EventType
	Keywords    []string
	RecurringID string
}

// Patterns flattens the set into (type, key) pairs
func (p PatternSet) Patterns() []domain.Pattern {
	var out []domain.Pattern
	if p.EventType != "" && p.EventType != domain.EventUnknown {
		out = append(out, domain.Pattern{Type: domain.PatternEventType, Key: string(p.EventType)})
	}
	for _, k := range p.Keywords {
		out = append(out, domain.Pattern{Type: domain.PatternKeyword, Key: k})
	}
	if p.RecurringID != "" {
		out = append(out, domain.Pattern{Type: domain.PatternRecurring, Key: p.RecurringID})
	}
	return out
}

// BaseEventID strips the instance suffix recurring calendar events carry after the first "_"
func BaseEventID(eventID string) string {
	if i := strings.Index(eventID, "_"); i >= 0 {
		return eventID[:i]
	}
	return eventID
}

// BuildPatterns derives at most one event-type, five keyword and one recurring pattern
func BuildPatterns(m *domain.Moment) PatternSet {
	keywords := analysis.ExtractKeywords(m.Description + " " + m.UserContext)
	if len(keywords) > maxKeywordPatterns {
		keywords = keywords[:maxKeywordPatterns]
	}
	return PatternSet{
		EventType:   m.DetectedEventType,
		Keywords:    keywords,
		RecurringID: BaseEventID(m.EventID()),
	}
}

// LearnedThought is a thought the user found helpful for similar moments
type LearnedThought struct {
	GemID           string               `json:"gem_id"`
	Confidence      float64              `json:"confidence"`
	HelpfulCount    int                  `json:"helpful_count"`
	NotHelpfulCount int                  `json:"not_helpful_count"`
	PatternSources  []domain.PatternType `json:"pattern_sources"`
}

type LearningConfig struct {
	MinHelpfulCount int
	MinConfidence   float64
}

type LearningService struct {
	repo repository.LearningRepository
	cfg  LearningConfig
	now  func() time.Time
}

func NewLearningService(repo repository.LearningRepository, cfg LearningConfig) *LearningService {
	if cfg.MinHelpfulCount <= 0 {
		cfg.MinHelpfulCount = DefaultMinHelpfulCount
	}
	if cfg.MinConfidence <= 0 || cfg.MinConfidence > 1 {
		cfg.MinConfidence = DefaultMinConfidence
	}
	return &LearningService{repo: repo, cfg: cfg, now: time.Now}
}

func (s *LearningService) RecordHelpful(userID string, m *domain.Moment, gemID string) error {
	return s.repo.IncrementHelpful(userID, gemID, BuildPatterns(m).Patterns(), s.now())
}

func (s *LearningService) RecordNotHelpful(userID, gemID string) error {
	_, err := s.repo.IncrementNotHelpful(userID, gemID)
	return err
}

// GetLearnedThoughts aggregates established patterns matching the set per thought and
// keeps those whose confidence reaches the threshold, best first.
func (s *LearningService) GetLearnedThoughts(userID string, set PatternSet) ([]LearnedThought, error) {
	wanted := make(map[domain.Pattern]bool)
	for _, p := range set.Patterns() {
		wanted[p] = true
	}
	if len(wanted) == 0 {
		return []LearnedThought{}, nil
	}

	rows, err := s.repo.FindEstablished(userID, s.cfg.MinHelpfulCount)
	if err != nil {
		return nil, err
	}

	byGem := make(map[string]*LearnedThought)
	var order []string
	for _, row := range rows {
		if !wanted[domain.Pattern{Type: row.PatternType, Key: row.PatternKey}] {
			continue
		}
		lt, ok := byGem[row.GemID]
		if !ok {
			lt = &LearnedThought{GemID: row.GemID}
			byGem[row.GemID] = lt
			order = append(order, row.GemID)
		}
		lt.HelpfulCount += row.HelpfulCount
		lt.NotHelpfulCount += row.NotHelpfulCount
		if !containsPattern(lt.PatternSources, row.PatternType) {
			lt.PatternSources = append(lt.PatternSources, row.PatternType)
		}
	}

	result := make([]LearnedThought, 0, len(byGem))
	for _, id := range order {
		lt := byGem[id]
		total := lt.HelpfulCount + lt.NotHelpfulCount
		if total == 0 {
			continue
		}
		lt.Confidence = float64(lt.HelpfulCount) / float64(total)
		if lt.Confidence >= s.cfg.MinConfidence {
			result = append(result, *lt)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Confidence != result[j].Confidence {
			return result[i].Confidence > result[j].Confidence
		}
		return result[i].HelpfulCount > result[j].HelpfulCount
	})
	return result, nil
}

func containsPattern(list []domain.PatternType, t domain.PatternType) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}
