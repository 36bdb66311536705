package sitepdf

import "context"

// SitemapService discovers URLs from a site's index documents.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed by the first sitemap that
	// yields any, probing robots.txt directives, a sitemap.xml next to the
	// seed and one at the origin root. Sitemap indexes are resolved
	// recursively. An empty result is not an error.
	DiscoverURLs(ctx context.Context, seed string) ([]string, error)
}
