package domain

import "errors"

var (
	ErrGemNotFound         = errors.New("Thought not found")
	ErrContextNotFound     = errors.New("Context not found")
	ErrSourceNotFound      = errors.New("Source not found")
	ErrContextFull         = errors.New("Context is full")
	ErrInvalidThoughtLimit = errors.New("thought_limit must be between 1 and 100")
	ErrDefaultContext      = errors.New("Default contexts cannot be deleted")
	ErrContentRequired     = errors.New("Content is required")
	ErrInvalidStatus       = errors.New("Invalid status")
	ErrInvalidTransition   = errors.New("Invalid status transition")
	ErrInvalidCheckIn      = errors.New("outcome must be applied or skipped")
	ErrInvalidSourceType   = errors.New("Invalid source type")
	ErrDuplicateSlug       = errors.New("A context with this name already exists")
)
