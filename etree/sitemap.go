// Package etree renders sitemaps.org documents with beevik/etree.
package etree

import (
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/findable"
)

// SitemapNamespace is the sitemaps.org urlset namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Ensure SitemapBuilder implements findable.SitemapBuilder at compile time.
var _ findable.SitemapBuilder = (*SitemapBuilder)(nil)

// SitemapBuilder builds urlset documents. A zero LastMod omits <lastmod>.
type SitemapBuilder struct {
	LastMod time.Time
}

// NewSitemapBuilder creates a SitemapBuilder stamping every entry with lastMod.
func NewSitemapBuilder(lastMod time.Time) *SitemapBuilder {
	return &SitemapBuilder{LastMod: lastMod}
}

// BuildSitemap returns an indented urlset listing locs in order.
func (b *SitemapBuilder) BuildSitemap(locs []string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", SitemapNamespace)
	for _, loc := range locs {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(loc)
		if !b.LastMod.IsZero() {
			u.CreateElement("lastmod").SetText(b.LastMod.UTC().Format("2006-01-02"))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
