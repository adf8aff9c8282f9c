package mock

import "github.com/fwojciec/findable"

// Compile-time interface verification.
var (
	_ findable.TextExtractor = (*TextExtractor)(nil)
	_ findable.MetaReader    = (*MetaReader)(nil)
)

// TextExtractor is a mock implementation of findable.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string, maxLen int) string
}

func (e *TextExtractor) ExtractText(html string, maxLen int) string {
	return e.ExtractTextFn(html, maxLen)
}

// MetaReader is a mock implementation of findable.MetaReader.
type MetaReader struct {
	ReadMetaFn func(html string) findable.SiteMeta
}

func (r *MetaReader) ReadMeta(html string) findable.SiteMeta {
	return r.ReadMetaFn(html)
}
