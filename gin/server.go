// Package gin serves generated pages to crawlers over HTTP.
package gin

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/findable"
	"github.com/gin-gonic/gin"
)

// Robots directives sent with page responses.
const (
	RobotsIndex   = "index, follow"
	RobotsNoIndex = "noindex, nofollow"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="robots" content="{{.Robots}}">
<title>{{.Page.Title}}</title>
</head>
<body>
<article>
{{.Content}}
</article>
{{with .SiteURL}}<footer><a href="{{.}}">{{.}}</a></footer>{{end}}
</body>
</html>
`))

// Server serves the pages of a single session.
type Server struct {
	sessions  findable.SessionService
	token     string
	sitemap   findable.SitemapBuilder
	baseURL   string
	hasAPIKey bool
	logger    *slog.Logger

	router *gin.Engine
}

// Config configures a Server.
type Config struct {
	// Token selects the session whose pages are served.
	Token string

	// BaseURL is the public address of this server, used in sitemap.xml.
	BaseURL string

	// HasAPIKey is reported by the health endpoint.
	HasAPIKey bool

	// Sitemap is optional; without it /ai/sitemap.xml returns 404.
	Sitemap findable.SitemapBuilder

	Logger *slog.Logger
}

// NewServer creates a Server reading from sessions. Callers choose the gin
// mode with gin.SetMode before constructing it.
func NewServer(sessions findable.SessionService, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		sessions:  sessions,
		token:     cfg.Token,
		sitemap:   cfg.Sitemap,
		baseURL:   cfg.BaseURL,
		hasAPIKey: cfg.HasAPIKey,
		logger:    logger,
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/health", s.handleHealth)
	router.GET("/ai/:slug", s.handlePage)
	s.router = router

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting page server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down page server")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "has_api_key": s.hasAPIKey})
}

func (s *Server) handlePage(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "sitemap.xml" {
		s.handleSitemap(c)
		return
	}

	sess, ok := s.session(c)
	if !ok {
		return
	}
	page := findable.FindPage(sess.Pages, slug)
	if page == nil {
		c.String(http.StatusNotFound, "AI page not found")
		return
	}

	robots := RobotsNoIndex
	if findable.IsAICrawler(c.Request.UserAgent()) {
		robots = RobotsIndex
	}
	c.Header("X-Robots-Tag", robots)
	c.HTML(http.StatusOK, "page", gin.H{
		"Page":    page,
		"Robots":  robots,
		"Content": template.HTML(page.Content),
		"SiteURL": sess.WebsiteURL,
	})
}

func (s *Server) handleSitemap(c *gin.Context) {
	if s.sitemap == nil || s.baseURL == "" {
		c.String(http.StatusNotFound, "sitemap not configured")
		return
	}

	sess, ok := s.session(c)
	if !ok {
		return
	}
	locs := make([]string, len(sess.Pages))
	for i, p := range sess.Pages {
		locs[i] = findable.PageURL(s.baseURL, p.Slug)
	}
	xml, err := s.sitemap.BuildSitemap(locs)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal error.")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", xml)
}

// session loads the served session, writing an error response on failure.
func (s *Server) session(c *gin.Context) (*findable.Session, bool) {
	sess, err := s.sessions.FindSessionByToken(c.Request.Context(), s.token)
	if findable.ErrorCode(err) == findable.ENOTFOUND {
		c.String(http.StatusNotFound, "AI page not found")
		return nil, false
	}
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal error.")
		return nil, false
	}
	return sess, true
}
