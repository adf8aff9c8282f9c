// Package goquery reads page metadata with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/findable"
)

// Ensure MetaReader implements findable.MetaReader at compile time.
var _ findable.MetaReader = (*MetaReader)(nil)

// MetaReader reads title, description and site name from an HTML head.
type MetaReader struct{}

// NewMetaReader returns a new MetaReader.
func NewMetaReader() *MetaReader {
	return &MetaReader{}
}

// ReadMeta returns the page metadata. Open Graph values are used when the
// plain tags are missing.
func (r *MetaReader) ReadMeta(html string) findable.SiteMeta {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return findable.SiteMeta{}
	}

	meta := findable.SiteMeta{
		Title:       clean(doc.Find("head title").First().Text()),
		Description: attr(doc, `meta[name="description"]`),
		SiteName:    attr(doc, `meta[property="og:site_name"]`),
	}
	if meta.Title == "" {
		meta.Title = attr(doc, `meta[property="og:title"]`)
	}
	if meta.Description == "" {
		meta.Description = attr(doc, `meta[property="og:description"]`)
	}
	return meta
}

func attr(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return clean(v)
}

// clean collapses whitespace runs.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
