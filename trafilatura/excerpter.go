// Package trafilatura implements the readable-text excerpt fallback with
// markusmobius/go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Excerpter implements sitepdf.Excerpter at compile time.
var _ sitepdf.Excerpter = (*Excerpter)(nil)

// Excerpter wraps go-trafilatura to pull the main readable text out of a
// page that structured extraction could not handle.
type Excerpter struct{}

// NewExcerpter creates a new Excerpter.
func NewExcerpter() *Excerpter {
	return &Excerpter{}
}

// Excerpt returns the page title and main text, truncated to
// sitepdf.MaxExcerptRunes.
func (e *Excerpter) Excerpt(rawHTML string) (*sitepdf.Excerpt, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "trafilatura: %v", err)
	}

	text := result.ContentText
	if strings.TrimSpace(text) == "" && result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "no readable text")
	}

	return &sitepdf.Excerpt{
		Title: result.Metadata.Title,
		Text:  sitepdf.TruncateRunes(text, sitepdf.MaxExcerptRunes),
	}, nil
}

// nodeText concatenates the text nodes below n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
