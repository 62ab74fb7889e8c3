package domain

import "time"

type PatternType string

const (
	PatternEventType PatternType = "event_type"
	PatternKeyword   PatternType = "keyword"
	PatternRecurring PatternType = "recurring"
	PatternAttendee  PatternType = "attendee"
)

// MomentLearning counts how often a thought helped for a pattern.
// One row per (user, pattern type, pattern key, thought).
type MomentLearning struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	UserID          string      `json:"user_id" gorm:"uniqueIndex:idx_learning_pattern;not null"`
	PatternType     PatternType `json:"pattern_type" gorm:"uniqueIndex:idx_learning_pattern;not null"`
	PatternKey      string      `json:"pattern_key" gorm:"uniqueIndex:idx_learning_pattern;not null"`
	GemID           string      `json:"gem_id" gorm:"uniqueIndex:idx_learning_pattern;index;not null"`
	HelpfulCount    int         `json:"helpful_count"`
	NotHelpfulCount int         `json:"not_helpful_count"`
	LastHelpfulAt   *time.Time  `json:"last_helpful_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Pattern is one (type, key) pair derived from a moment
type Pattern struct {
	Type PatternType
	Key  string
}
