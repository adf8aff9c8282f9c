package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/findable"
)

// Ensure LoggingGenerator implements findable.Generator.
var _ findable.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging. Prompts are not logged.
type LoggingGenerator struct {
	next   findable.Generator
	model  string
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator. model is only used
// as a log attribute.
func NewLoggingGenerator(next findable.Generator, model string, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, model: model, logger: logger}
}

// Generate delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Generate(ctx context.Context, req findable.GenerateRequest) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"model", g.model,
			"prompt_chars", len(req.Prompt),
			"max_tokens", req.MaxTokens,
			"reply_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, req)
}
