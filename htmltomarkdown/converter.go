// Package htmltomarkdown renders generated page content as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/findable"
)

// Ensure Converter implements findable.Converter at compile time.
var _ findable.Converter = (*Converter)(nil)

// Converter turns page HTML fragments into Markdown for llms.txt style
// exports. Tables are kept as GitHub-flavored tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert returns the Markdown for html, ending in a single newline.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", findable.Errorf(findable.EINVALID, "page content is empty")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", findable.Errorf(findable.EINTERNAL, "convert page to markdown: %v", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
