// Package htmltomarkdown renders page content as Markdown for the inspect
// command using JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/sitepdf"
)

// Ensure Converter implements sitepdf.Converter at compile time.
var _ sitepdf.Converter = (*Converter)(nil)

// Converter turns HTML fragments into CommonMark with GFM tables.
type Converter struct {
	conv *converter.Converter

	// pageURL resolves relative links and images when set.
	pageURL string
}

// NewConverter creates a Converter. Relative links are left as written.
func NewConverter() *Converter {
	return &Converter{conv: newHTMLConverter()}
}

// NewPageConverter creates a Converter that resolves relative links against
// pageURL.
func NewPageConverter(pageURL string) *Converter {
	return &Converter{conv: newHTMLConverter(), pageURL: pageURL}
}

func newHTMLConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
}

// Convert returns the Markdown for html. Blank input is EINVALID.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.pageURL != "" {
		opts = append(opts, converter.WithDomain(c.pageURL))
	}

	md, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EEXTRACT, "convert to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
