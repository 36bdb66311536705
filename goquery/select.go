package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

// SelectText returns the collapsed text of every element matching selector,
// one element per line.
func SelectText(html, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EEXTRACT, "parse html: %v", err)
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return "", sitepdf.Errorf(sitepdf.ENOTFOUND, "no elements match %q", selector)
	}
	var lines []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n"), nil
}

// ContentHTML returns the inner HTML of the page's main content container
// with navigation chrome removed.
func ContentHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EEXTRACT, "parse html: %v", err)
	}
	p := profileFor(detect(doc))
	removeChrome(doc, p)
	root := contentRoot(doc, p)
	out, err := root.Html()
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EEXTRACT, "render content: %v", err)
	}
	return out, nil
}
