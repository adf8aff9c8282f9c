package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/findable"
	"github.com/fwojciec/findable/analyze"
	"github.com/fwojciec/findable/etree"
	findablefs "github.com/fwojciec/findable/fs"
	"github.com/fwojciec/findable/gemini"
	"github.com/fwojciec/findable/goquery"
	findablehtml "github.com/fwojciec/findable/html"
	"github.com/fwojciec/findable/htmltomarkdown"
	findablehttp "github.com/fwojciec/findable/http"
	"github.com/fwojciec/findable/rod"
	findableslog "github.com/fwojciec/findable/slog"
	"github.com/fwojciec/findable/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		// Application errors were already reported by the command.
		var appErr *findable.Error
		if !errors.As(err, &appErr) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); FINDABLE_DB overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SessionService findable.SessionService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("findable"),
		kong.Description("Check how findable a website's features are to AI assistants."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'findable --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Command()

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger
	deps.Token = cli.Session
	deps.HasAPIKey = gemini.HasAPIKey(cli.APIKey)

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FINDABLE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.SessionService = sqlite.NewSessionService(m.DB)
	deps.Sessions = m.SessionService

	generator, err := gemini.NewGenerator(ctx, cli.APIKey,
		gemini.WithModel(cli.Model),
		gemini.WithMinInterval(cli.MinInterval),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	loggedGenerator := findableslog.NewLoggingGenerator(generator, cli.Model, logger)

	var fetcher findable.Fetcher = findablehttp.NewFetcher(findablehttp.WithLogger(logger))
	if strings.HasPrefix(command, "analyze") && cli.Analyze.Render {
		rendered, err := rod.NewFetcher(
			rod.WithUserAgent(findablehttp.DefaultUserAgent),
			rod.WithLogger(logger),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rendered
	}
	defer fetcher.Close()

	deps.Analyzer = &analyze.Service{
		Sessions: m.SessionService,
		Site: &analyze.SiteReader{
			Fetcher:   findableslog.NewLoggingFetcher(fetcher, logger),
			Extractor: findablehtml.NewTextExtractor(),
			Meta:      goquery.NewMetaReader(),
			Logger:    logger,
		},
		Features: &analyze.FeatureExtractor{Generator: loggedGenerator, Logger: logger},
		Pages:    &analyze.PageGenerator{Generator: loggedGenerator, Logger: logger},
		Reports:  &analyze.ReportBuilder{Generator: loggedGenerator, Logger: logger},
		Logger:   logger,
	}

	if strings.HasPrefix(command, "export") {
		export := cli.Export
		deps.NewStore = func(siteURL string) findable.PageStore {
			store := findablefs.NewFileStore(export.Dir, export.Name)
			store.SiteURL = siteURL
			store.BaseURL = export.BaseURL
			store.Sitemap = etree.NewSitemapBuilder(time.Now().UTC())
			if export.Markdown {
				store.Converter = htmltomarkdown.NewConverter()
			}
			return store
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "findable.db"
	}
	dir := filepath.Join(home, ".findable")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "findable.db")
}
