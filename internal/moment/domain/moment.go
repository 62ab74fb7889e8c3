package domain

import "time"

type MomentSource string

const (
	MomentSourceManual   MomentSource = "manual"
	MomentSourceCalendar MomentSource = "calendar"
)

type MomentStatus string

const (
	MomentStatusActive    MomentStatus = "active"
	MomentStatusCompleted MomentStatus = "completed"
	MomentStatusDismissed MomentStatus = "dismissed"
)

// Moment is a situation for which relevant thoughts are surfaced
type Moment struct {
	ID                 string       `json:"id" gorm:"primaryKey"`
	UserID             string       `json:"user_id" gorm:"index;not null"`
	Description        string       `json:"description" gorm:"type:text;not null"`
	Source             MomentSource `json:"source" gorm:"default:manual"`
	CalendarEventID    *string      `json:"calendar_event_id,omitempty" gorm:"index"`
	CalendarEventTitle *string      `json:"calendar_event_title,omitempty"`
	CalendarEventStart *time.Time   `json:"calendar_event_start,omitempty"`
	DetectedEventType  EventType    `json:"detected_event_type,omitempty"`
	UserContext        string       `json:"user_context,omitempty" gorm:"type:text"`
	GemsMatchedCount   int          `json:"gems_matched_count"`
	AIProcessingMs     int64        `json:"ai_processing_ms"`
	Status             MomentStatus `json:"status" gorm:"index;default:active"`
	CreatedAt          time.Time    `json:"created_at" gorm:"index"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Title returns the calendar title, or "" for manual moments
func (m *Moment) Title() string {
	if m.CalendarEventTitle == nil {
		return ""
	}
	return *m.CalendarEventTitle
}

// EventID returns the calendar event id, or "" for manual moments
func (m *Moment) EventID() string {
	if m.CalendarEventID == nil {
		return ""
	}
	return *m.CalendarEventID
}

type MatchSource string

const (
	MatchSourceAI        MatchSource = "ai"
	MatchSourceLearned   MatchSource = "learned"
	MatchSourceRecurring MatchSource = "recurring"
)

// MomentGem is a thought matched to a moment plus the user's feedback on it
type MomentGem struct {
	ID              string      `json:"id" gorm:"primaryKey"`
	MomentID        string      `json:"moment_id" gorm:"uniqueIndex:idx_moment_gem;not null"`
	GemID           string      `json:"gem_id" gorm:"uniqueIndex:idx_moment_gem;index;not null"`
	UserID          string      `json:"user_id" gorm:"index;not null"`
	RelevanceScore  float64     `json:"relevance_score"`
	RelevanceReason string      `json:"relevance_reason" gorm:"type:text"`
	MatchSource     MatchSource `json:"match_source"`
	WasHelpful      *bool       `json:"was_helpful,omitempty"`
	WasReviewed     bool        `json:"was_reviewed"`
	CreatedAt       time.Time   `json:"created_at"`
}
