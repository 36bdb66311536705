package http

import (
	"context"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitepdf"
	"github.com/temoto/robotstxt"
)

// maxSitemapDepth bounds nested sitemap index resolution.
const maxSitemapDepth = 3

// Ensure SitemapService implements sitepdf.SitemapService.
var _ sitepdf.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from robots.txt and sitemap.xml documents.
// All requests go through the injected Fetcher so they share the crawl's
// transport, rate limits and cache.
type SitemapService struct {
	fetcher sitepdf.Fetcher
}

// NewSitemapService creates a SitemapService that fetches with f.
func NewSitemapService(f sitepdf.Fetcher) *SitemapService {
	return &SitemapService{fetcher: f}
}

// DiscoverURLs returns the locations listed by the first candidate sitemap
// that yields any. Returns an empty slice (not nil) if none do.
func (s *SitemapService) DiscoverURLs(ctx context.Context, seed string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(seed)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "invalid seed URL %q: %v", seed, err)
	}

	for _, group := range s.candidates(ctx, base) {
		seen := make(map[string]bool)
		var urls []string
		for _, candidate := range group {
			found, err := s.processSitemap(ctx, candidate, seen, 0)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				continue
			}
			urls = append(urls, found...)
		}
		if len(urls) > 0 {
			return dedupe(urls), nil
		}
	}

	return []string{}, nil
}

// candidates lists sitemap locations in lookup order. All robots.txt
// directives form the first group and are merged; a sitemap.xml beside the
// seed and the origin's sitemap.xml follow as single-entry groups.
func (s *SitemapService) candidates(ctx context.Context, base *url.URL) [][]string {
	var groups [][]string
	seen := make(map[string]bool)
	add := func(urls ...string) {
		var group []string
		for _, u := range urls {
			if u != "" && !seen[u] {
				seen[u] = true
				group = append(group, u)
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}

	add(s.sitemapsFromRobots(ctx, base)...)
	add(base.ResolveReference(&url.URL{Path: "sitemap.xml"}).String())
	add(base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String())
	return groups
}

func (s *SitemapService) sitemapsFromRobots(ctx context.Context, base *url.URL) []string {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	resp, err := s.fetcher.Fetch(ctx, robotsURL.String())
	if err != nil {
		return nil
	}
	robots, err := robotstxt.FromBytes([]byte(resp.Body))
	if err != nil {
		return nil
	}
	var out []string
	for _, sm := range robots.Sitemaps {
		if sm = strings.TrimSpace(sm); sm != "" {
			out = append(out, sm)
		}
	}
	return out
}

// processSitemap fetches and parses a sitemap, handling both urlset and
// sitemapindex. The document's root element decides its kind.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] || depth > maxSitemapDepth {
		return nil, nil
	}
	seen[sitemapURL] = true

	resp, err := s.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(resp.Body); err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "empty sitemap %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		return s.processSitemapIndex(ctx, root, seen, depth)
	case "urlset":
		return locs(root, "url"), nil
	}
	return nil, sitepdf.Errorf(sitepdf.EINVALID, "%s is not a sitemap (root <%s>)", sitemapURL, root.Tag)
}

// processSitemapIndex resolves each child sitemap. A failing child is
// skipped; the others still contribute.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool, depth int) ([]string, error) {
	var all []string
	for _, child := range locs(root, "sitemap") {
		urls, err := s.processSitemap(ctx, child, seen, depth+1)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		all = append(all, urls...)
	}
	return all, nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}
