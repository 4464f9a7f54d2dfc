package ai

import "errors"

var (
	ErrNotConfigured = errors.New("ai is not configured on the server")
	ErrEmptyPrompt   = errors.New("prompt is required")
	ErrInvalidImage  = errors.New("only image files are allowed")
	ErrImageTooLarge = errors.New("image is larger than 5MB")
)
