// Package fs exports generated pages to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/findable"
)

// Ensure FileStore implements findable.PageStore at compile time.
var _ findable.PageStore = (*FileStore)(nil)

// FileStore implements findable.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
//
// Each page is written as <slug>.html and, when Converter is set, as
// <slug>.md. Commit adds an llms.txt index and, when Sitemap and BaseURL are
// set, a sitemap.xml. A FileStore is not safe for concurrent use.
type FileStore struct {
	baseDir string
	name    string
	pages   []*findable.Page

	// BaseURL is where the pages will be served, e.g. https://acme.dev.
	BaseURL string

	// SiteURL is the analyzed website, used in the llms.txt header.
	SiteURL string

	Converter findable.Converter
	Sitemap   findable.SitemapBuilder

	// GeneratedAt stamps the exported files.
	GeneratedAt time.Time
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir:     baseDir,
		name:        name,
		GeneratedAt: time.Now().UTC(),
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes page into the temporary directory.
func (s *FileStore) Save(ctx context.Context, page *findable.Page) error {
	if page.Slug == "" || findable.NormalizeSlug(page.Slug) != page.Slug {
		return findable.Errorf(findable.EINVALID, "invalid page slug %q", page.Slug)
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if err := s.write(page.Slug+".html", FormatHTML(page, s.pageURL(page.Slug))); err != nil {
		return err
	}

	if s.Converter != nil {
		md, err := s.Converter.Convert(page.Content)
		if err != nil {
			return err
		}
		if err := s.write(page.Slug+".md", FormatMarkdown(page, s.pageURL(page.Slug), md, s.GeneratedAt)); err != nil {
			return err
		}
	}

	s.pages = append(s.pages, page)
	return nil
}

func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := s.write("llms.txt", FormatIndex(s.SiteURL, s.pages, s.Converter != nil)); err != nil {
		return err
	}

	if s.Sitemap != nil && s.BaseURL != "" {
		locs := make([]string, len(s.pages))
		for i, p := range s.pages {
			locs[i] = s.pageURL(p.Slug)
		}
		xml, err := s.Sitemap.BuildSitemap(locs)
		if err != nil {
			return err
		}
		if err := s.write("sitemap.xml", string(xml)); err != nil {
			return err
		}
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

func (s *FileStore) Abort() error {
	s.pages = nil
	return os.RemoveAll(s.tempDir())
}

func (s *FileStore) write(name, content string) error {
	return os.WriteFile(filepath.Join(s.tempDir(), name), []byte(content), 0644)
}

func (s *FileStore) pageURL(slug string) string {
	if s.BaseURL == "" {
		return ""
	}
	return findable.PageURL(s.BaseURL, slug)
}

// FormatHTML wraps a page's content in a standalone document that invites
// indexing. canonical may be empty.
func FormatHTML(page *findable.Page, canonical string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"robots\" content=\"index, follow\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(page.Title))
	if canonical != "" {
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", html.EscapeString(canonical))
	}
	b.WriteString("</head>\n<body>\n<article>\n")
	b.WriteString(page.Content)
	b.WriteString("\n</article>\n</body>\n</html>\n")
	return b.String()
}

// FormatMarkdown formats converted page Markdown with YAML frontmatter.
func FormatMarkdown(page *findable.Page, source, markdown string, generated time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("slug: ")
	b.WriteString(page.Slug)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	if source != "" {
		b.WriteString("\nsource: ")
		b.WriteString(source)
	}
	b.WriteString("\ngenerated: ")
	b.WriteString(generated.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(markdown)
	return b.String()
}

// FormatIndex renders an llms.txt index linking every page.
func FormatIndex(siteURL string, pages []*findable.Page, markdown bool) string {
	ext := ".html"
	if markdown {
		ext = ".md"
	}

	var b strings.Builder
	title := siteURL
	if title == "" {
		title = "AI pages"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "> %d machine-readable pages describing the features of %s.\n\n", len(pages), title)
	b.WriteString("## Pages\n\n")
	for _, p := range pages {
		fmt.Fprintf(&b, "- [%s](%s%s)\n", p.Title, p.Slug, ext)
	}
	return b.String()
}
