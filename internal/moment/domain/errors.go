package domain

import "errors"

var (
	ErrMomentNotFound      = errors.New("Moment not found")
	ErrMatchNotFound       = errors.New("Thought is not matched to this moment")
	ErrDescriptionRequired = errors.New("Description is required")
	ErrInvalidGems         = errors.New("gems must be an array")
	ErrInvalidStatus       = errors.New("Invalid status")
	ErrRateLimited         = errors.New("Rate limit exceeded. Please try again later.")
	ErrAIUnavailable       = errors.New("AI service unavailable")
)
