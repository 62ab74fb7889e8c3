package dto

import "thoughtfolio-backend/pkg/ai"

type ImageInput struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

type AnalyzeRequest struct {
	Content string       `json:"content"`
	Images  []ImageInput `json:"images"`
	URL     string       `json:"url"`
}

type AnalyzeResponse struct {
	Items            []ai.CaptureItem `json:"items"`
	FallbackUsed     bool             `json:"fallback_used"`
	ProcessingTimeMs int64            `json:"processing_time_ms"`
	RemainingToday   int              `json:"remaining_today"`
	SourceTitle      string           `json:"source_title,omitempty"`
	SourceURL        string           `json:"source_url,omitempty"`
}

type UsageResponse struct {
	Date      string `json:"date"`
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}
