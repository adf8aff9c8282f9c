// Package http provides an HTTP-based implementation of findable.Fetcher
// with a bounded, timeout-protected GET.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/findable"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps how much of a response body is read.
const DefaultMaxBytes = 500_000

// DefaultUserAgent identifies the fetcher to websites.
const DefaultUserAgent = "Mozilla/5.0 (compatible; WebsiteFeatureFinder/1.0)"

// chunkSize is the read size used while streaming the body.
const chunkSize = 8192

// Ensure Fetcher implements findable.Fetcher at compile time.
var _ findable.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int
	userAgent string
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets how many body bytes are read before stopping.
// Defaults to DefaultMaxBytes.
func WithMaxBytes(n int) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLogger sets the logger used for size-cap warnings and failure causes.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
//
// Reading stops once the size cap is reached and the partial body is
// returned. Invalid UTF-8 sequences are dropped.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", findable.Errorf(findable.EINVALID, "Invalid URL format. Please include http:// or https://")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", f.transportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn("fetch failed", "url", shorten(url), "status", resp.StatusCode)
		return "", findable.Errorf(findable.ETRANSPORT, "Failed to fetch website (HTTP %d)", resp.StatusCode)
	}

	if resp.ContentLength > int64(f.maxBytes) {
		f.logger.Warn("website large, reading partial content",
			"url", shorten(url),
			"content_length", resp.ContentLength,
		)
	}

	body, capped, err := readCapped(resp.Body, f.maxBytes)
	if err != nil {
		return "", f.transportError(url, err)
	}
	if capped {
		f.logger.Warn("content size limit reached", "url", shorten(url), "bytes", len(body))
	}

	return strings.ToValidUTF8(string(body), ""), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// readCapped reads r in chunks until EOF or until limit bytes were read.
func readCapped(r io.Reader, limit int) ([]byte, bool, error) {
	var body []byte
	buf := make([]byte, chunkSize)
	for {
		n, err := r.Read(buf)
		body = append(body, buf[:n]...)
		if len(body) >= limit {
			return body[:limit], true, nil
		}
		if err == io.EOF {
			return body, false, nil
		}
		if err != nil {
			return nil, false, err
		}
	}
}

// transportError logs the cause and returns a message safe to show users.
func (f *Fetcher) transportError(url string, err error) error {
	f.logger.Warn("fetch failed", "url", shorten(url), "err_type", fmt.Sprintf("%T", err))
	if isTimeout(err) {
		return findable.Errorf(findable.ETRANSPORT, "Request timed out. The website may be slow or unreachable.")
	}
	return findable.Errorf(findable.ETRANSPORT, "Failed to fetch website. Please check the URL and try again.")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// shorten keeps log lines short and avoids logging long query strings.
func shorten(url string) string {
	if len(url) > 50 {
		return url[:50] + "..."
	}
	return url
}
