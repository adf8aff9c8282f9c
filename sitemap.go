package findable

import "strings"

// SitemapBuilder renders a sitemaps.org urlset document.
type SitemapBuilder interface {
	// BuildSitemap returns the XML document listing locs in order.
	BuildSitemap(locs []string) ([]byte, error)
}

// PageURL returns the public location of a generated page under baseURL.
func PageURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/ai/" + slug
}
