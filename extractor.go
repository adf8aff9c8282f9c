package findable

// Text length limits for extracted site text.
const (
	// DefaultTextLimit is the general-purpose ceiling for extracted text.
	DefaultTextLimit = 10000

	// PromptTextLimit bounds the site text embedded in a generation prompt.
	PromptTextLimit = 8000

	// MinSiteTextLength is the least text a site must yield to be analyzed.
	MinSiteTextLength = 50
)

// TextExtractor turns raw HTML into a bounded plain-text excerpt with page
// chrome (navigation, cookie banners, footers, ...) removed.
type TextExtractor interface {
	// ExtractText returns at most maxLen characters of readable text.
	// Truncated output ends with "...".
	ExtractText(html string, maxLen int) string
}

// SiteMeta is descriptive metadata read from a page's head.
type SiteMeta struct {
	Title       string
	Description string
	SiteName    string
}

// MetaReader reads SiteMeta from raw HTML.
type MetaReader interface {
	// ReadMeta returns whatever metadata it can find; missing values are empty.
	ReadMeta(html string) SiteMeta
}
