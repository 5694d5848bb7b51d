package generation

import "context"

// TextGenerator defines the boundary for narrative text generation.
// Retries and provider-level timeouts are the implementation's concern,
// bounded overall by the caller's context deadline.
type TextGenerator interface {
	// GenerateText produces text for the given prompt.
	// Returns an error from errors.go if generation fails.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Embedder defines the boundary for semantic embedding computation.
type Embedder interface {
	// Embed computes an embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}
