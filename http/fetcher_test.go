package http_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/findable"
	findablehttp "github.com/fwojciec/findable/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := findablehttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
	})

	t.Run("sends descriptive user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.UserAgent()
		}))
		defer server.Close()

		_, err := findablehttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, findablehttp.DefaultUserAgent, gotUA)
	})

	t.Run("stops reading at size cap and returns partial content", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 100_000)))
		}))
		defer server.Close()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetcher := findablehttp.NewFetcher(findablehttp.WithMaxBytes(20_000), findablehttp.WithLogger(logger))

		html, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Len(t, html, 20_000)
		assert.Contains(t, buf.String(), "content size limit reached")
	})

	t.Run("drops invalid UTF-8 sequences", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("caf\xc3\xa9 \xff\xfeok"))
		}))
		defer server.Close()

		html, err := findablehttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "café ok", html)
	})

	t.Run("returns generic timeout message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := findablehttp.NewFetcher(findablehttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, findable.ETRANSPORT, findable.ErrorCode(err))
		assert.Contains(t, findable.ErrorMessage(err), "timed out")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := findablehttp.NewFetcher().Fetch(ctx, server.URL)

		require.Error(t, err)
		assert.Equal(t, findable.ETRANSPORT, findable.ErrorCode(err))
	})

	t.Run("does not leak transport detail for unknown host", func(t *testing.T) {
		t.Parallel()

		fetcher := findablehttp.NewFetcher(findablehttp.WithTimeout(500 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")

		require.Error(t, err)
		assert.Equal(t, findable.ETRANSPORT, findable.ErrorCode(err))
		assert.NotContains(t, findable.ErrorMessage(err), "non-existent-host")
	})

	t.Run("returns error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		_, err := findablehttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, findable.ETRANSPORT, findable.ErrorCode(err))
		assert.Contains(t, findable.ErrorMessage(err), "404")
	})
}

// Compile-time verification that Fetcher implements findable.Fetcher
var _ findable.Fetcher = (*findablehttp.Fetcher)(nil)
