package gemini

import "errors"

// Errors specific to the gemini package
var (
	// ErrEmptyPrompt is returned when a prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrEmptyEmbeddingInput is returned when the text to embed is empty.
	ErrEmptyEmbeddingInput = errors.New("text to embed cannot be empty")
)
