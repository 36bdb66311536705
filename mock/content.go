package mock

import "github.com/fwojciec/sitepdf"

var _ sitepdf.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitepdf.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*sitepdf.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*sitepdf.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ sitepdf.Excerpter = (*Excerpter)(nil)

// Excerpter is a mock implementation of sitepdf.Excerpter.
type Excerpter struct {
	ExcerptFn func(html string) (*sitepdf.Excerpt, error)
}

func (e *Excerpter) Excerpt(html string) (*sitepdf.Excerpt, error) {
	return e.ExcerptFn(html)
}

var _ sitepdf.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitepdf.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}

var _ sitepdf.FrameworkDetector = (*FrameworkDetector)(nil)

// FrameworkDetector is a mock implementation of sitepdf.FrameworkDetector.
type FrameworkDetector struct {
	DetectFn func(html string) sitepdf.Framework
}

func (d *FrameworkDetector) Detect(html string) sitepdf.Framework {
	return d.DetectFn(html)
}
