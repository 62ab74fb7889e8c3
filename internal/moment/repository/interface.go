package repository

import (
	"time"

	"thoughtfolio-backend/internal/moment/domain"
)

type MomentRepository interface {
	Create(moment *domain.Moment) error
	FindByID(userID, id string) (*domain.Moment, error)
	List(userID string, status domain.MomentStatus, limit, offset int) ([]domain.Moment, int64, error)
	Update(moment *domain.Moment) error

	// FindByEventIDPrefix returns the most recent moment whose calendar event id starts
	// with baseID, excluding the given event id and moment id
	FindByEventIDPrefix(userID, baseID, excludeEventID, excludeMomentID string) (*domain.Moment, error)
	// RecentTitled returns up to limit of the user's newest moments that have a calendar title
	RecentTitled(userID, excludeMomentID string, limit int) ([]domain.Moment, error)
	ExistsForEvent(userID, eventID string) (bool, error)

	SaveMatches(matches []domain.MomentGem) error
	ListMatches(momentID string) ([]domain.MomentGem, error)
	FindMatch(momentID, gemID string) (*domain.MomentGem, error)
	// MarkFeedback stores the answer only when it differs from the current one and
	// reports whether a row changed.
	MarkFeedback(matchID string, helpful bool) (bool, error)
	DeleteUnreviewedMatches(momentID string) error
	HelpfulGemIDs(momentID string) ([]string, error)
}

type LearningRepository interface {
	// IncrementHelpful atomically inserts or bumps one row per pattern
	IncrementHelpful(userID, gemID string, patterns []domain.Pattern, at time.Time) error
	IncrementNotHelpful(userID, gemID string) (int64, error)
	FindEstablished(userID string, minHelpful int) ([]domain.MomentLearning, error)
}
