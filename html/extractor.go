// Package html extracts readable text from HTML with a streaming tokenizer.
package html

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/findable"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements findable.TextExtractor at compile time.
var _ findable.TextExtractor = (*TextExtractor)(nil)

// truncationMarker ends text that was cut at the length limit.
const truncationMarker = "..."

var (
	// skipTags suppress their content.
	skipTags = map[string]bool{
		"script": true, "style": true, "meta": true, "head": true,
		"noscript": true, "nav": true, "footer": true, "header": true,
	}

	// blockTags emit a separator when they end.
	blockTags = map[string]bool{
		"p": true, "div": true, "br": true, "li": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}

	skipClasses = []string{"cookie", "banner", "popup", "modal", "navigation", "menu", "sidebar"}
	skipIDs     = []string{"cookie", "banner", "popup", "modal", "nav", "menu"}

	// stopwords are navigation labels that carry no feature information.
	stopwords = map[string]bool{
		"home": true, "about": true, "contact": true, "login": true,
		"sign in": true, "menu": true, "close": true, "×": true,
	}
)

// TextExtractor strips page chrome from HTML and returns plain text.
//
// Suppression is a single flag rather than a stack: the first end tag seen
// while suppressed clears it, even when skip elements are nested.
type TextExtractor struct{}

// NewTextExtractor returns a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns at most maxLen characters of readable text from raw.
// A non-positive maxLen means findable.DefaultTextLimit.
func (e *TextExtractor) ExtractText(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = findable.DefaultTextLimit
	}

	var p parser
	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return truncate(p.text(), maxLen)
		case html.StartTagToken:
			name, attrs := readTag(z)
			p.start(name, attrs)
		case html.SelfClosingTagToken:
			name, attrs := readTag(z)
			p.start(name, attrs)
			p.end(name)
		case html.EndTagToken:
			name, _ := z.TagName()
			p.end(string(name))
		case html.TextToken:
			p.data(string(z.Text()))
		}
	}
}

func readTag(z *html.Tokenizer) (string, map[string]string) {
	name, hasAttr := z.TagName()
	attrs := make(map[string]string)
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if _, ok := attrs[string(key)]; !ok {
			attrs[string(key)] = string(val)
		}
	}
	return string(name), attrs
}

type parser struct {
	chunks     []string
	suppressed bool
}

func (p *parser) start(tag string, attrs map[string]string) {
	if skipTags[tag] {
		p.suppressed = true
		return
	}
	if containsAny(strings.ToLower(attrs["class"]), skipClasses) {
		p.suppressed = true
		return
	}
	if containsAny(strings.ToLower(attrs["id"]), skipIDs) {
		p.suppressed = true
	}
}

func (p *parser) end(tag string) {
	if skipTags[tag] || p.suppressed {
		p.suppressed = false
	} else if blockTags[tag] {
		p.chunks = append(p.chunks, " ")
	}
}

func (p *parser) data(s string) {
	if p.suppressed {
		return
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= 2 {
		return
	}
	if stopwords[strings.ToLower(s)] {
		return
	}
	p.chunks = append(p.chunks, s)
}

// text joins the chunks and collapses whitespace runs.
func (p *parser) text() string {
	return strings.Join(strings.Fields(strings.Join(p.chunks, " ")), " ")
}

// truncate cuts s to maxLen runes, marker included.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= len(truncationMarker) {
		return string(runes[:maxLen])
	}
	return strings.TrimRight(string(runes[:maxLen-len(truncationMarker)]), " ") + truncationMarker
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
