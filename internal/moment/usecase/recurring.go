package usecase

import (
	"strings"

	"thoughtfolio-backend/internal/moment/domain"
	"thoughtfolio-backend/internal/moment/repository"
)

const recentMomentScan = 50

type RecurringMatcher struct {
	repo repository.MomentRepository
}

func NewRecurringMatcher(repo repository.MomentRepository) *RecurringMatcher {
	return &RecurringMatcher{repo: repo}
}

// CheckRecurring tries the calendar base id first, then the title
func (r *RecurringMatcher) CheckRecurring(userID string, m *domain.Moment) (*domain.RecurringResult, error) {
	previous, matchType, err := r.findPrevious(userID, m)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return &domain.RecurringResult{IsRecurring: false}, nil
	}

	helpful, err := r.repo.HelpfulGemIDs(previous.ID)
	if err != nil {
		return nil, err
	}
	return &domain.RecurringResult{
		IsRecurring:      true,
		MatchType:        matchType,
		PreviousMomentID: previous.ID,
		HelpfulGemIDs:    helpful,
	}, nil
}

func (r *RecurringMatcher) findPrevious(userID string, m *domain.Moment) (*domain.Moment, string, error) {
	if eventID := m.EventID(); eventID != "" {
		prev, err := r.repo.FindByEventIDPrefix(userID, BaseEventID(eventID), eventID, m.ID)
		if err != nil {
			return nil, "", err
		}
		if prev != nil {
			return prev, domain.MatchTypeExactEventID, nil
		}
	}

	title := normalizeTitle(m.Title())
	if title == "" {
		return nil, "", nil
	}
	recent, err := r.repo.RecentTitled(userID, m.ID, recentMomentScan)
	if err != nil {
		return nil, "", err
	}
	for i := range recent {
		other := normalizeTitle(recent[i].Title())
		if other == "" {
			continue
		}
		if other == title || strings.Contains(other, title) || strings.Contains(title, other) {
			return &recent[i], domain.MatchTypeFuzzyTitle, nil
		}
	}
	return nil, "", nil
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
