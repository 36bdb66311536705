package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

// Ensure LinkExtractor implements sitepdf.LinkExtractor at compile time.
var _ sitepdf.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor collects anchor targets from HTML pages.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns absolute http(s) targets of a[href] in document
// order. Fragments are stripped and repeats dropped.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "parse html: %v", err)
	}

	// A <base href> overrides the page URL for relative links.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = b
		}
	}

	seen := make(map[string]bool)
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		u, err := base.Parse(href)
		if err != nil {
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		u.Fragment = ""
		u.RawFragment = ""
		link := u.String()
		if seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links, nil
}
