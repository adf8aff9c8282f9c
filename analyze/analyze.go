// Package analyze provides the findability pipeline: reading a website,
// extracting its features, generating AI-discoverability pages and
// producing a findability report. Each stage talks to a language model
// through findable.Generator and validates the reply before returning it.
package analyze

import (
	"log/slog"
	"strings"
)

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// bulletList renders items as "- item" lines.
func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// shorten keeps log lines short.
func shorten(url string) string {
	if len(url) > 50 {
		return url[:50] + "..."
	}
	return url
}
