package dto

import gemdomain "thoughtfolio-backend/internal/gem/domain"

type CreateGemRequest struct {
	Content     string  `json:"content" binding:"required"`
	ContextID   string  `json:"context_id"`
	ContextSlug string  `json:"context_slug"`
	Source      string  `json:"source"`
	SourceURL   string  `json:"source_url"`
	SourceID    *string `json:"source_id"`
	Status      string  `json:"status"` // defaults to active
}

type UpdateGemRequest struct {
	Content   *string `json:"content"`
	ContextID *string `json:"context_id"`
	Source    *string `json:"source"`
	SourceURL *string `json:"source_url"`
	Status    *string `json:"status"`
}

type CheckInRequest struct {
	Outcome    string `json:"outcome" binding:"required"`
	Reflection string `json:"reflection"`
}

// GemFilter narrows list queries; zero values mean no filter
type GemFilter struct {
	Status    string
	ContextID string
	Limit     int
	Offset    int
}

type GemsResponse struct {
	Gems   []gemdomain.Gem `json:"gems"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type CheckInResponse struct {
	Gem       *gemdomain.Gem `json:"gem"`
	Graduated bool           `json:"graduated"`
}

type CreateContextRequest struct {
	Name         string `json:"name" binding:"required"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	ThoughtLimit *int   `json:"thought_limit"`
}

type UpdateContextRequest struct {
	Name         *string `json:"name"`
	Color        *string `json:"color"`
	Icon         *string `json:"icon"`
	ThoughtLimit *int    `json:"thought_limit"`
	SortOrder    *int    `json:"sort_order"`
}

// ContextResponse is a context with its usage counts
type ContextResponse struct {
	gemdomain.Context
	ActiveCount int64 `json:"active_count"`
	TotalCount  int64 `json:"total_count"`
}

type SourceRequest struct {
	Name   string `json:"name" binding:"required"`
	Author string `json:"author"`
	Type   string `json:"type"`
	URL    string `json:"url"`
}
