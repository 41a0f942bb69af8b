package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, log *zap.SugaredLogger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order: caller, retry, logging, base.
	logged := WithLogging(base, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewEmbedder creates an Embedder from configuration. Embeddings are
// served by the OpenAI API regardless of the generation provider; the
// mock provider gets a mock embedder so the index pipeline stays
// testable offline.
func NewEmbedder(cfg Config) (Embedder, error) {
	if cfg.Provider == "mock" {
		return NewMockEmbedder(1536), nil
	}
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("QUANTSLEARN_OPENAI_API_KEY is required for embeddings")
	}
	return NewOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.EmbeddingModel)
}
