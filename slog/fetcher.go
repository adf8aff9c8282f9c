// Package slog provides logging decorators for findable interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/findable"
)

// maxLoggedURL is how much of a URL is kept in log lines.
const maxLoggedURL = 50

// Ensure LoggingFetcher implements findable.Fetcher.
var _ findable.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Successful fetches log at
// debug level; failures log at warn level with the error code and the
// user-facing message only.
type LoggingFetcher struct {
	next   findable.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next findable.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("website fetch failed",
				"url", shortURL(url),
				"code", findable.ErrorCode(err),
				"message", findable.ErrorMessage(err),
				"duration", time.Since(begin),
			)
			return
		}
		f.logger.Debug("website fetched",
			"url", shortURL(url),
			"bytes", len(html),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// shortURL truncates long URLs so query strings stay out of logs.
func shortURL(url string) string {
	if len(url) > maxLoggedURL {
		return url[:maxLoggedURL] + "..."
	}
	return url
}
