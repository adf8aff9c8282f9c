// Package rod provides a findable.Fetcher that renders pages in headless
// Chrome, for sites whose text only appears after JavaScript runs.
package rod

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/findable"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderTimeout bounds navigation plus page load.
const DefaultRenderTimeout = 30 * time.Second

// DefaultMaxBytes caps how much rendered HTML is returned.
const DefaultMaxBytes = 500_000

// Ensure Fetcher implements findable.Fetcher at compile time.
var _ findable.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	timeout   time.Duration
	maxBytes  int
	userAgent string
	logger    *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page render timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithMaxBytes sets how much rendered HTML is kept.
func WithMaxBytes(n int) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithLogger sets the logger used for failure causes.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultRenderTimeout,
		maxBytes: DefaultMaxBytes,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML, capped at the
// configured size with invalid UTF-8 dropped.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", findable.Errorf(findable.ETRANSPORT, "Failed to fetch website. Please check the URL and try again.")
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", f.renderError(url, err)
	}
	defer page.Close()

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", f.renderError(url, err)
		}
	}

	renderCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(renderCtx)

	if err := page.Navigate(url); err != nil {
		return "", f.renderError(url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", f.renderError(url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", f.renderError(url, err)
	}

	if len(html) > f.maxBytes {
		f.logger.Warn("content size limit reached", "url", url, "bytes", len(html))
		html = html[:f.maxBytes]
	}
	return strings.ToValidUTF8(html, ""), nil
}

// Close releases browser resources and stops the launched Chrome process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// renderError logs the cause and returns a message safe to show users.
func (f *Fetcher) renderError(url string, err error) error {
	f.logger.Warn("render failed", "url", url, "err_type", fmt.Sprintf("%T", err))
	if errors.Is(err, context.DeadlineExceeded) {
		return findable.Errorf(findable.ETRANSPORT, "Request timed out. The website may be slow or unreachable.")
	}
	return findable.Errorf(findable.ETRANSPORT, "Failed to fetch website. Please check the URL and try again.")
}
