package dto

import (
	"time"

	"thoughtfolio-backend/internal/moment/analysis"
	"thoughtfolio-backend/internal/moment/domain"
)

// MatchCandidate is a thought sent by the client for ranking
type MatchCandidate struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	ContextTag string `json:"context_tag"`
}

type CreateMomentRequest struct {
	Description              string     `json:"description"`
	UserContext              string     `json:"user_context"`
	CalendarEventID          string     `json:"calendar_event_id"`
	CalendarEventTitle       string     `json:"calendar_event_title"`
	CalendarEventDescription string     `json:"calendar_event_description,omitempty"`
	CalendarEventStart       *time.Time `json:"calendar_event_start"`
	Source                   string     `json:"source"`
}

type UpdateContextRequest struct {
	UserContext string `json:"user_context" binding:"required"`
}

type FeedbackRequest struct {
	GemID      string `json:"gem_id" binding:"required"`
	WasHelpful *bool  `json:"was_helpful" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AnalyzeTitleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// MatchedGem is a matched thought with its content for display
type MatchedGem struct {
	GemID           string             `json:"gem_id"`
	Content         string             `json:"content"`
	Source          string             `json:"source,omitempty"`
	RelevanceScore  float64            `json:"relevance_score"`
	RelevanceReason string             `json:"relevance_reason"`
	MatchSource     domain.MatchSource `json:"match_source"`
	WasHelpful      *bool              `json:"was_helpful,omitempty"`
	WasReviewed     bool               `json:"was_reviewed"`
}

type MomentResponse struct {
	Moment    *domain.Moment          `json:"moment"`
	Matches   []MatchedGem            `json:"matches"`
	Analysis  *analysis.TitleAnalysis `json:"analysis,omitempty"`
	Recurring *domain.RecurringResult `json:"recurring,omitempty"`
}

type MomentsResponse struct {
	Moments []domain.Moment `json:"moments"`
	Total   int64           `json:"total"`
}
