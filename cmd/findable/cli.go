package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/findable"
	"github.com/fwojciec/findable/analyze"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Token     string
	HasAPIKey bool
	Sessions  findable.SessionService
	Analyzer  *analyze.Service

	// NewStore creates the export destination for a session's pages.
	NewStore func(siteURL string) findable.PageStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"FINDABLE_DB" help:"Database path (default ~/.findable/findable.db)"`
	Session string `short:"s" env:"FINDABLE_SESSION" help:"Session token (default: most recent session)"`
	APIKey  string `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	Model   string `env:"FINDABLE_MODEL" default:"gemini-2.5-flash" help:"Gemini model"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	MinInterval time.Duration `name:"min-interval" env:"FINDABLE_MIN_INTERVAL" default:"1s" help:"Minimum time between Gemini calls (0 disables)"`

	Analyze  AnalyzeCmd  `cmd:"" help:"Analyze a website and extract its features"`
	Features FeaturesCmd `cmd:"" help:"List or replace the extracted features"`
	Pages    PagesCmd    `cmd:"" help:"Generate, list or delete AI pages"`
	Report   ReportCmd   `cmd:"" help:"Run a findability analysis"`
	Show     ShowCmd     `cmd:"" help:"Show the selected session"`
	Sessions SessionsCmd `cmd:"" help:"List stored sessions"`
	Delete   DeleteCmd   `cmd:"" help:"Delete the selected session"`
	Export   ExportCmd   `cmd:"" help:"Export AI pages to a directory"`
	Serve    ServeCmd    `cmd:"" help:"Serve AI pages to crawlers"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL    string `arg:"" help:"Website URL"`
	Render bool   `help:"Render JavaScript with headless Chrome before extracting text"`
}

// FeaturesCmd groups the "features" subcommands.
type FeaturesCmd struct {
	List FeaturesListCmd `cmd:"" default:"1" help:"List features"`
	Set  FeaturesSetCmd  `cmd:"" help:"Replace the feature list"`
}

// FeaturesListCmd is the "features list" subcommand.
type FeaturesListCmd struct{}

// FeaturesSetCmd is the "features set" subcommand.
type FeaturesSetCmd struct {
	Features []string `arg:"" help:"Features, one per argument"`
}

// PagesCmd groups the "pages" subcommands.
type PagesCmd struct {
	Generate PagesGenerateCmd `cmd:"" help:"Generate AI pages from the features"`
	List     PagesListCmd     `cmd:"" default:"1" help:"List generated pages"`
	Show     PagesShowCmd     `cmd:"" help:"Print one page's HTML"`
	Delete   PagesDeleteCmd   `cmd:"" help:"Delete all generated pages"`
}

// PagesGenerateCmd is the "pages generate" subcommand.
type PagesGenerateCmd struct {
	Count string `short:"n" default:"10" help:"Number of pages (1-300)"`
}

// PagesListCmd is the "pages list" subcommand.
type PagesListCmd struct{}

// PagesShowCmd is the "pages show" subcommand.
type PagesShowCmd struct {
	Slug string `arg:"" help:"Page slug"`
}

// PagesDeleteCmd is the "pages delete" subcommand.
type PagesDeleteCmd struct{}

// ReportCmd is the "report" subcommand.
type ReportCmd struct {
	JSON bool `help:"Print the report as JSON"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	JSON bool `help:"Print the whole session as JSON"`
}

// SessionsCmd is the "sessions" subcommand.
type SessionsCmd struct {
	URL   string `help:"Only sessions whose URL contains this text"`
	Limit int    `default:"20" help:"Maximum number of sessions"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Force bool `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir      string `arg:"" optional:"" default:"." help:"Parent directory"`
	Name     string `default:"ai" help:"Output directory name"`
	BaseURL  string `name:"base-url" help:"Public URL the pages will be served from"`
	Markdown bool   `default:"true" negatable:"" help:"Also write Markdown copies"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":8080" help:"Listen address"`
	BaseURL string `name:"base-url" help:"Public URL of this server, enables /ai/sitemap.xml"`
}

// session returns the selected session, or the most recent one when no
// token was given.
func (d *Dependencies) session() (*findable.Session, error) {
	if d.Token != "" {
		sess, err := d.Sessions.FindSessionByToken(d.Ctx, d.Token)
		if findable.ErrorCode(err) == findable.ENOTFOUND {
			return nil, findable.Errorf(findable.ENOTFOUND, "session %q not found. Use 'findable sessions' to see stored sessions.", d.Token)
		}
		return sess, err
	}

	sessions, err := d.Sessions.FindSessions(d.Ctx, findable.SessionFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, findable.Errorf(findable.ENOTFOUND, "No sessions found. Use 'findable analyze <url>' to start one.")
	}
	return sessions[0], nil
}

// fail reports err on stderr and returns it.
func (d *Dependencies) fail(err error) error {
	fmt.Fprintf(d.Stderr, "error: %s\n", findable.ErrorMessage(err))
	return err
}
