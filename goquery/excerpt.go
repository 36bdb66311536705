package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

// Ensure BodyExcerpter implements sitepdf.Excerpter at compile time.
var _ sitepdf.Excerpter = (*BodyExcerpter)(nil)

// BodyExcerpter returns the visible body text of a page, truncated to
// sitepdf.MaxExcerptRunes. It is the last fallback when extraction fails.
type BodyExcerpter struct{}

// NewBodyExcerpter creates a new BodyExcerpter.
func NewBodyExcerpter() *BodyExcerpter {
	return &BodyExcerpter{}
}

// Excerpt returns the page title and body text.
func (e *BodyExcerpter) Excerpt(html string) (*sitepdf.Excerpt, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "parse html: %v", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	text := collapse(doc.Find("body").Text())
	if text == "" {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "page has no text")
	}
	return &sitepdf.Excerpt{
		Title: pageTitle(doc),
		Text:  sitepdf.TruncateRunes(text, sitepdf.MaxExcerptRunes),
	}, nil
}
