package findable

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Page count bounds for a generation run.
const (
	MinPageCount     = 10
	MaxPageCount     = 300
	DefaultPageCount = 50
)

// Page is a generated AI-discoverability page. Content is an HTML fragment
// written for crawlers and LLM agents rather than human readers.
type Page struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ClampPageCount limits a requested page count to [MinPageCount, MaxPageCount].
func ClampPageCount(n int) int {
	return max(MinPageCount, min(MaxPageCount, n))
}

// ParsePageCount parses a user-supplied page count. Missing or invalid input
// yields DefaultPageCount; anything else is clamped.
func ParsePageCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultPageCount
	}
	return ClampPageCount(n)
}

var slugDisallowed = regexp.MustCompile(`[^a-z0-9-]`)

// NormalizeSlug lowercases s, turns spaces into hyphens and strips every
// character outside [a-z0-9-]. The result may be empty.
func NormalizeSlug(s string) string {
	s = strings.ReplaceAll(strings.ToLower(s), " ", "-")
	return slugDisallowed.ReplaceAllString(s, "")
}

// SlugSet hands out unique slugs, suffixing -1, -2, ... on collision.
type SlugSet struct {
	seen map[string]bool
}

// NewSlugSet returns an empty SlugSet.
func NewSlugSet() *SlugSet {
	return &SlugSet{seen: make(map[string]bool)}
}

// Claim reserves and returns a unique variant of slug.
func (s *SlugSet) Claim(slug string) string {
	unique := slug
	for i := 1; s.seen[unique]; i++ {
		unique = slug + "-" + strconv.Itoa(i)
	}
	s.seen[unique] = true
	return unique
}

// Len returns the number of claimed slugs.
func (s *SlugSet) Len() int {
	return len(s.seen)
}

// FindPage returns the page with the given slug, or nil.
func FindPage(pages []*Page, slug string) *Page {
	for _, p := range pages {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

// PageStore persists exported pages with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
