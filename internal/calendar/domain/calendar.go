package domain

import (
	"strings"
	"time"

	"thoughtfolio-backend/pkg/database"
)

const (
	ProviderGoogle = "google"

	DefaultLeadTimeMinutes = 15
	MinLeadTimeMinutes     = 1
	MaxLeadTimeMinutes     = 120
)

type EventFilter string

const (
	FilterAll      EventFilter = "all"
	FilterMeetings EventFilter = "meetings"
	FilterKeywords EventFilter = "keywords"
)

func (f EventFilter) Valid() bool {
	switch f {
	case FilterAll, FilterMeetings, FilterKeywords:
		return true
	}
	return false
}

// CalendarConnection is a user's link to an external calendar
type CalendarConnection struct {
	ID              string               `json:"id" gorm:"primaryKey"`
	UserID          string               `json:"user_id" gorm:"uniqueIndex;not null"`
	Provider        string               `json:"provider" gorm:"default:google"`
	AccessToken     string               `json:"-" gorm:"type:text"`
	RefreshToken    string               `json:"-" gorm:"type:text"`
	TokenExpiry     time.Time            `json:"-"`
	Email           string               `json:"email"`
	IsActive        bool                 `json:"is_active" gorm:"index"`
	LeadTimeMinutes int                  `json:"lead_time_minutes" gorm:"default:15"`
	EventFilter     EventFilter          `json:"event_filter" gorm:"default:all"`
	CustomKeywords  database.StringArray `json:"custom_keywords" gorm:"type:text"`
	LastSyncAt      *time.Time           `json:"last_sync_at,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// LeadTime returns the configured lead time, falling back to the default
func (c *CalendarConnection) LeadTime() time.Duration {
	minutes := c.LeadTimeMinutes
	if minutes < MinLeadTimeMinutes {
		minutes = DefaultLeadTimeMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// Accepts reports whether the connection's filter lets the event become a moment.
// "meetings" requires at least two attendees; "keywords" needs one of the custom
// keywords in the title or description.
func (c *CalendarConnection) Accepts(ev *CalendarEvent) bool {
	switch c.EventFilter {
	case FilterMeetings:
		return ev.AttendeeCount >= 2
	case FilterKeywords:
		text := strings.ToLower(ev.Title + " " + ev.Description)
		for _, k := range c.CustomKeywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" && strings.Contains(text, k) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// CalendarEvent is a cached upcoming event
type CalendarEvent struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	ConnectionID    string    `json:"connection_id" gorm:"uniqueIndex:idx_calendar_event;not null"`
	UserID          string    `json:"user_id" gorm:"index;not null"`
	ExternalEventID string    `json:"external_event_id" gorm:"uniqueIndex:idx_calendar_event;not null"`
	Title           string    `json:"title"`
	Description     string    `json:"description" gorm:"type:text"`
	StartTime       time.Time `json:"start_time" gorm:"index"`
	EndTime         time.Time `json:"end_time"`
	AttendeeCount   int       `json:"attendee_count"`
	IsRecurring     bool      `json:"is_recurring"`
	MomentCreated   bool      `json:"moment_created"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events_cache"
}
