package gin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/fwojciec/findable"
	findablegin "github.com/fwojciec/findable/gin"
	"github.com/fwojciec/findable/mock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func sessionsWith(sess *findable.Session) *mock.SessionService {
	return &mock.SessionService{
		FindSessionByTokenFn: func(_ context.Context, token string) (*findable.Session, error) {
			if token != sess.Token {
				return nil, findable.Errorf(findable.ENOTFOUND, "session not found")
			}
			return sess, nil
		},
	}
}

var served = &findable.Session{
	Token:      "tok",
	WebsiteURL: "https://acme.dev",
	Pages: []*findable.Page{
		{Slug: "single-sign-on", Title: "Single Sign-On", Content: "<h1>SSO</h1><p>SAML &amp; OIDC</p>"},
		{Slug: "pricing", Title: "Pricing", Content: "<h1>Pricing</h1>"},
	},
}

func get(t *testing.T, h http.Handler, path, userAgent string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, path, nil)
	require.NoError(t, err)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Page(t *testing.T) {
	t.Parallel()

	t.Run("lets AI crawlers index pages", func(t *testing.T) {
		t.Parallel()

		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{Token: "tok"})

		w := get(t, srv.Handler(), "/ai/single-sign-on", "Mozilla/5.0 (compatible; GPTBot/1.0)")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, findablegin.RobotsIndex, w.Header().Get("X-Robots-Tag"))
		body := w.Body.String()
		assert.Contains(t, body, "<title>Single Sign-On</title>")
		assert.Contains(t, body, "<h1>SSO</h1><p>SAML &amp; OIDC</p>")
		assert.Contains(t, body, `<meta name="robots" content="index, follow">`)
		assert.Contains(t, body, `href="https://acme.dev"`)
	})

	t.Run("asks browsers not to index", func(t *testing.T) {
		t.Parallel()

		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{Token: "tok"})

		w := get(t, srv.Handler(), "/ai/pricing", "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) Safari/605.1.15")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, findablegin.RobotsNoIndex, w.Header().Get("X-Robots-Tag"))
	})

	t.Run("returns 404 for unknown slug", func(t *testing.T) {
		t.Parallel()

		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{Token: "tok"})

		w := get(t, srv.Handler(), "/ai/missing", "GPTBot")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 404 when the session is gone", func(t *testing.T) {
		t.Parallel()

		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{Token: "other"})

		w := get(t, srv.Handler(), "/ai/pricing", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("hides storage errors", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		sessions := &mock.SessionService{
			FindSessionByTokenFn: func(context.Context, string) (*findable.Session, error) {
				return nil, errors.New("database is locked")
			},
		}
		srv := findablegin.NewServer(sessions, findablegin.Config{
			Token:  "tok",
			Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		})

		w := get(t, srv.Handler(), "/ai/pricing", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "database is locked")
		assert.Contains(t, logs.String(), "database is locked")
	})
}

func TestServer_Sitemap(t *testing.T) {
	t.Parallel()

	t.Run("lists page urls", func(t *testing.T) {
		t.Parallel()

		var got []string
		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{
			Token:   "tok",
			BaseURL: "https://pages.acme.dev",
			Sitemap: &mock.SitemapBuilder{
				BuildSitemapFn: func(locs []string) ([]byte, error) {
					got = locs
					return []byte("<urlset/>"), nil
				},
			},
		})

		w := get(t, srv.Handler(), "/ai/sitemap.xml", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
		assert.Equal(t, "<urlset/>", w.Body.String())
		assert.Equal(t, []string{
			"https://pages.acme.dev/ai/single-sign-on",
			"https://pages.acme.dev/ai/pricing",
		}, got)
	})

	t.Run("returns 404 without sitemap builder", func(t *testing.T) {
		t.Parallel()

		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{Token: "tok"})

		w := get(t, srv.Handler(), "/ai/sitemap.xml", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	for _, hasKey := range []bool{true, false} {
		srv := findablegin.NewServer(sessionsWith(served), findablegin.Config{HasAPIKey: hasKey})

		w := get(t, srv.Handler(), "/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, hasKey, body["has_api_key"])
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	router := gin.New()
	router.Use(findablegin.RecoveryMiddleware(slog.New(slog.NewTextHandler(&logs, nil))))
	router.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := get(t, router, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, logs.String(), "panic recovered")
}
