package dto

import "thoughtfolio-backend/internal/calendar/domain"

type CallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

type SettingsRequest struct {
	LeadTimeMinutes *int      `json:"lead_time_minutes"`
	EventFilter     *string   `json:"event_filter"`
	CustomKeywords  *[]string `json:"custom_keywords"`
	IsActive        *bool     `json:"is_active"`
}

type ConnectResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type StatusResponse struct {
	Connected  bool                       `json:"connected"`
	Connection *domain.CalendarConnection `json:"connection,omitempty"`
}

type SyncResponse struct {
	Synced int                    `json:"synced"`
	Events []domain.CalendarEvent `json:"events"`
}
