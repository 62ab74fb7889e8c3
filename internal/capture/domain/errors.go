package domain

import "errors"

var (
	ErrNothingToAnalyze = errors.New("Provide content, images or a URL to analyze")
	ErrTooManyImages    = errors.New("A maximum of 4 images is allowed")
	ErrImageTooLarge    = errors.New("Each image must be 5MB or smaller")
	ErrInvalidImage     = errors.New("Images must be base64 encoded JPEG, PNG, GIF or WebP")
	ErrFetchFailed      = errors.New("Could not fetch the URL")
	ErrDailyLimit       = errors.New("Daily AI extraction limit reached. Please try again tomorrow.")
)
