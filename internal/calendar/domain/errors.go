package domain

import "errors"

var (
	ErrNotConnected     = errors.New("Calendar not connected")
	ErrNotConfigured    = errors.New("Calendar integration is not configured")
	ErrCodeRequired     = errors.New("Authorization code is required")
	ErrExchangeFailed   = errors.New("Failed to connect calendar")
	ErrInvalidLeadTime  = errors.New("lead_time_minutes must be between 1 and 120")
	ErrInvalidFilter    = errors.New("event_filter must be one of all, meetings, keywords")
	ErrKeywordsRequired = errors.New("custom_keywords are required for the keywords filter")
)
