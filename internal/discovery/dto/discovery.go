package dto

import "thoughtfolio-backend/internal/discovery/domain"

type DiscoverRequest struct {
	Query       string `json:"query"`
	ContextSlug string `json:"context_slug"`
}

type SaveRequest struct {
	ContextSlug string `json:"context_slug"`
}

type DiscoverResponse struct {
	Discoveries []domain.Discovery `json:"discoveries"`
	Grounded    bool               `json:"grounded"`
}
