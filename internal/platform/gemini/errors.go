package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrInvalidConfig is returned when the model configuration is invalid.
	ErrInvalidConfig = errors.New("invalid gemini configuration")

	// ErrEmptyPrompt is returned when a prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrInvalidResponse is returned when the API response carries no usable text.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the API blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)
