package analyze

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/findable"
)

// Site is the readable content of a fetched website.
type Site struct {
	URL  string
	Text string
	Meta findable.SiteMeta
}

// SiteReader validates a URL, fetches it and extracts prompt-sized text.
type SiteReader struct {
	Fetcher   findable.Fetcher
	Extractor findable.TextExtractor

	// Meta is optional.
	Meta findable.MetaReader

	Logger *slog.Logger
}

// Read returns the site's text, bounded to findable.PromptTextLimit.
// Returns EEXTRACT when the page yields less than
// findable.MinSiteTextLength characters.
func (r *SiteReader) Read(ctx context.Context, rawURL string) (*Site, error) {
	logger := loggerOrDiscard(r.Logger)

	rawURL = strings.TrimSpace(rawURL)
	if err := findable.ValidateURL(rawURL); err != nil {
		logger.Warn("url validation failed", "url", shorten(rawURL), "reason", findable.ErrorMessage(err))
		return nil, err
	}

	html, err := r.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text := r.Extractor.ExtractText(html, findable.PromptTextLimit)
	if utf8.RuneCountInString(strings.TrimSpace(text)) < findable.MinSiteTextLength {
		logger.Warn("insufficient text extracted", "url", shorten(rawURL))
		return nil, findable.Errorf(findable.EEXTRACT, "Could not extract enough readable text from the website")
	}
	logger.Info("extracted site text", "url", shorten(rawURL), "chars", utf8.RuneCountInString(text))

	site := &Site{URL: rawURL, Text: text}
	if r.Meta != nil {
		site.Meta = r.Meta.ReadMeta(html)
	}
	return site, nil
}
