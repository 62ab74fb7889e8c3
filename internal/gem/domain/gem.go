package domain

import "time"

type GemStatus string

const (
	GemStatusActive    GemStatus = "active"
	GemStatusPassive   GemStatus = "passive"
	GemStatusRetired   GemStatus = "retired"
	GemStatusGraduated GemStatus = "graduated"
)

// GraduationThreshold is the number of applications after which a thought graduates
const GraduationThreshold = 5

func (s GemStatus) Valid() bool {
	switch s {
	case GemStatusActive, GemStatusPassive, GemStatusRetired, GemStatusGraduated:
		return true
	}
	return false
}

// Gem is a captured thought
type Gem struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"index;not null"`
	ContextID        string     `json:"context_id" gorm:"index"`
	Content          string     `json:"content" gorm:"type:text;not null"`
	Source           string     `json:"source,omitempty"`
	SourceURL        string     `json:"source_url,omitempty"`
	SourceID         *string    `json:"source_id,omitempty" gorm:"index"`
	Status           GemStatus  `json:"status" gorm:"index;default:active"`
	ApplicationCount int        `json:"application_count" gorm:"default:0"`
	SkipCount        int        `json:"skip_count" gorm:"default:0"`
	LastSurfacedAt   *time.Time `json:"last_surfaced_at,omitempty"`
	LastAppliedAt    *time.Time `json:"last_applied_at,omitempty"`
	RetiredAt        *time.Time `json:"retired_at,omitempty"`
	GraduatedAt      *time.Time `json:"graduated_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CheckIn records whether a thought was applied since it was last surfaced
type CheckIn struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	GemID      string    `json:"gem_id" gorm:"index;not null"`
	Outcome    string    `json:"outcome"` // applied or skipped
	Reflection string    `json:"reflection,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	CheckInApplied = "applied"
	CheckInSkipped = "skipped"
)
