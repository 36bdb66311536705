// Package readability implements an excerpt fallback with
// go-shiori/go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/go-shiori/go-readability"
)

// Ensure Excerpter implements sitepdf.Excerpter at compile time.
var _ sitepdf.Excerpter = (*Excerpter)(nil)

// Excerpter wraps go-readability to pull the article text out of a page.
type Excerpter struct{}

// NewExcerpter creates a new Excerpter.
func NewExcerpter() *Excerpter {
	return &Excerpter{}
}

// Excerpt returns the article title and text, truncated to
// sitepdf.MaxExcerptRunes.
func (e *Excerpter) Excerpt(rawHTML string) (*sitepdf.Excerpt, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "readability: %v", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "no readable text")
	}

	return &sitepdf.Excerpt{
		Title: strings.TrimSpace(article.Title),
		Text:  sitepdf.TruncateRunes(text, sitepdf.MaxExcerptRunes),
	}, nil
}
