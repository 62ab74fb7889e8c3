package domain

import "time"

// AIUsage counts a user's AI extractions for one calendar day (UTC, "2006-01-02")
type AIUsage struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	UserID          string    `json:"user_id" gorm:"uniqueIndex:idx_ai_usage_day;not null"`
	Date            string    `json:"date" gorm:"uniqueIndex:idx_ai_usage_day;size:10;not null"`
	ExtractionCount int       `json:"extraction_count"`
	TokensEstimate  int       `json:"tokens_estimate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (AIUsage) TableName() string {
	return "ai_usage"
}

const (
	InputText  = "text"
	InputImage = "image"
	InputURL   = "url"
	InputMixed = "mixed"
)

// AIExtraction is the audit row written for every analyze request
type AIExtraction struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	InputType    string    `json:"input_type"`
	ImageCount   int       `json:"image_count"`
	ItemCount    int       `json:"item_count"`
	ProcessingMs int64     `json:"processing_ms"`
	FallbackUsed bool      `json:"fallback_used"`
	Error        string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
}
