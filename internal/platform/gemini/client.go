package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/stridehq/stride-api/internal/config"
	"github.com/stridehq/stride-api/internal/generation"
)

// Client implements generation.TextGenerator and generation.Embedder
// using Google's Gemini API.
type Client struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
}

// NewClient creates a Gemini-backed generation client.
// Returns generation.ErrInvalidConfig if required settings are missing.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.EmbeddingModel == "" {
		return nil, fmt.Errorf("%w: embedding model cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Client{
		logger: logger.With("component", "gemini_client"),
		config: cfg,
		client: client,
	}, nil
}

// GenerateText implements generation.TextGenerator.
// Transient API errors are retried with exponential backoff and jitter
// up to the configured maximum; permanent errors (blocked content,
// malformed responses) are returned immediately.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	var text string
	err := c.withRetry(ctx, "generate_text", func() (bool, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.config.ModelName, genai.Text(prompt), nil)
		if err != nil {
			// Assume API errors are transient unless proven otherwise.
			return true, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
		if resp == nil || len(resp.Candidates) == 0 {
			return false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
		}
		if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
			return false, fmt.Errorf("%w: generation stopped by safety filters", generation.ErrContentBlocked)
		}

		text = strings.TrimSpace(resp.Text())
		if text == "" {
			return false, fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
		}
		return false, nil
	})
	if err != nil {
		return "", err
	}

	return text, nil
}

// Embed implements generation.Embedder.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyEmbeddingInput
	}

	var vector []float32
	err := c.withRetry(ctx, "embed", func() (bool, error) {
		resp, err := c.client.Models.EmbedContent(ctx, c.config.EmbeddingModel, genai.Text(text), nil)
		if err != nil {
			return true, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
		if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return false, fmt.Errorf("%w: no embedding in response", generation.ErrInvalidResponse)
		}

		vector = resp.Embeddings[0].Values
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return vector, nil
}

// withRetry runs call with exponential backoff and jitter for transient
// errors. call reports whether its error is worth retrying.
func (c *Client) withRetry(ctx context.Context, op string, call func() (transient bool, err error)) error {
	maxRetries := c.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelaySeconds := c.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 1
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		transient, err := call()
		if err == nil {
			return nil
		}

		if !transient || attempt >= maxRetries {
			c.logger.WarnContext(ctx, "gemini call failed",
				"op", op,
				"attempt", attempt+1,
				"transient", transient,
				"error", err)
			return err
		}

		// delay = base * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoff * jitter * float64(time.Second))

		c.logger.DebugContext(ctx, "retrying gemini call",
			"op", op,
			"attempt", attempt+1,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%w: canceled during retry delay: %v",
				generation.ErrTransientFailure, ctx.Err())
		}
	}
}

var (
	_ generation.TextGenerator = (*Client)(nil)
	_ generation.Embedder      = (*Client)(nil)
)
