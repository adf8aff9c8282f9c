package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/findable"
	"github.com/fwojciec/findable/etree"
	findablegin "github.com/fwojciec/findable/gin"
	"github.com/gin-gonic/gin"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	sess, err := deps.session()
	if err != nil {
		return deps.fail(err)
	}

	if deps.Logger.Enabled(deps.Ctx, slog.LevelDebug) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := findablegin.Config{
		Token:     sess.Token,
		BaseURL:   c.BaseURL,
		HasAPIKey: deps.HasAPIKey,
		Logger:    deps.Logger,
	}
	if c.BaseURL != "" {
		cfg.Sitemap = etree.NewSitemapBuilder(time.Now().UTC())
	}
	srv := findablegin.NewServer(deps.Sessions, cfg)

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(deps.Stdout, "Serving %d pages on %s (Ctrl+C to stop)\n", sess.PageCount(), c.Addr)
	if err := srv.Run(ctx, c.Addr); err != nil {
		return deps.fail(findable.Errorf(findable.EINTERNAL, "page server stopped: %v", err))
	}
	return nil
}
