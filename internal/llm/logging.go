package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider is a decorator that logs every generation request,
// its latency, and token usage.
type LoggingProvider struct {
	inner Provider
	log   *zap.SugaredLogger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log *zap.SugaredLogger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		l.log.Warnw("model request failed",
			"model", l.inner.ModelID(),
			"elapsed", elapsed,
			"error", err,
		)
		return nil, err
	}

	l.log.Infow("model request completed",
		"model", resp.Model,
		"elapsed", elapsed,
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason,
	)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
