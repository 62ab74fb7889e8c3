package domain

import (
	"errors"
	"time"
)

type DiscoveryStatus string

const (
	StatusNew     DiscoveryStatus = "new"
	StatusSaved   DiscoveryStatus = "saved"
	StatusSkipped DiscoveryStatus = "skipped"
)

// Discovery is an AI suggested thought waiting for the user to keep or skip it
type Discovery struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"index;not null"`
	Query       string          `json:"query"`
	Content     string          `json:"content" gorm:"type:text;not null"`
	SourceTitle string          `json:"source_title"`
	SourceURL   string          `json:"source_url,omitempty"`
	ContextSlug string          `json:"context_slug"`
	Grounded    bool            `json:"grounded"`
	Status      DiscoveryStatus `json:"status" gorm:"index;default:new"`
	GemID       *string         `json:"gem_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

var (
	ErrQueryRequired     = errors.New("query or context_slug is required")
	ErrDiscoveryNotFound = errors.New("Discovery not found")
	ErrAlreadyHandled    = errors.New("Discovery was already saved or skipped")
	ErrAIUnavailable     = errors.New("Discovery is temporarily unavailable")
	ErrRateLimited       = errors.New("Rate limit exceeded. Please try again later.")
)
