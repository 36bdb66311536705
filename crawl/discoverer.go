package crawl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/sitepdf"
)

// minCrawlAttempts is the floor of the fetch budget for link-following
// discovery; the budget is max(minCrawlAttempts, 2*MaxPages) so sites full
// of broken links still terminate quickly.
const minCrawlAttempts = 1000

// Frontier sizing for link-following discovery.
const (
	frontierCapacity = 10000
	frontierFPRate   = 0.01
)

var _ sitepdf.URLDiscoverer = (*Discoverer)(nil)

// Discoverer produces the ordered page list for a seed. It reads the
// site's sitemap first and falls back to a breadth-first walk of links.
type Discoverer struct {
	Sitemaps sitepdf.SitemapService // optional
	Fetcher  sitepdf.Fetcher
	Links    sitepdf.LinkExtractor
	Logger   *slog.Logger

	// NewFrontier overrides the frontier used for link-following.
	NewFrontier func() sitepdf.URLFrontier
}

// DiscoverOption configures a single DiscoverURLs call.
type DiscoverOption func(*discoverConfig)

type discoverConfig struct {
	onURL func(url string)
}

// WithOnURL sets a callback invoked as each URL is discovered.
func WithOnURL(fn func(url string)) DiscoverOption {
	return func(c *discoverConfig) {
		c.onURL = fn
	}
}

// DiscoverURLs returns at most opts.MaxPages unique, normalized URLs in
// discovery order. An empty result is not an error.
func (d *Discoverer) DiscoverURLs(ctx context.Context, seed string, opts sitepdf.Options) ([]string, error) {
	return d.Discover(ctx, seed, opts)
}

// Discover is DiscoverURLs with per-call options.
func (d *Discoverer) Discover(ctx context.Context, seed string, opts sitepdf.Options, options ...DiscoverOption) ([]string, error) {
	cfg := &discoverConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	u, err := sitepdf.ParseSeed(seed)
	if err != nil {
		return nil, err
	}
	seed = u.String()

	urls, err := d.tryIndex(ctx, seed, opts)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		logger(d.Logger).Debug("discovered from sitemap", "url", seed, "count", len(urls))
		if cfg.onURL != nil {
			for _, u := range urls {
				cfg.onURL(u)
			}
		}
		return urls, nil
	}

	return d.walk(ctx, seed, opts, cfg)
}

// tryIndex reads the sitemap and keeps in-scope entries. Sitemap failures
// other than cancellation mean "no index".
func (d *Discoverer) tryIndex(ctx context.Context, seed string, opts sitepdf.Options) ([]string, error) {
	if d.Sitemaps == nil {
		return nil, nil
	}
	entries, err := d.Sitemaps.DiscoverURLs(ctx, seed)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger(d.Logger).Debug("sitemap unavailable", "url", seed, "err", err)
		return nil, nil
	}

	seen := make(map[string]bool, len(entries))
	var out []string
	for _, entry := range entries {
		if len(out) >= opts.MaxPages {
			break
		}
		u, ok := d.admit(seed, entry, opts)
		if !ok || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out, nil
}

// walk is the breadth-first fallback. A URL is recorded only when its
// fetch succeeds with HTML; only recorded pages contribute links.
func (d *Discoverer) walk(ctx context.Context, seed string, opts sitepdf.Options, cfg *discoverConfig) ([]string, error) {
	frontier := d.frontier()
	if start, ok := d.admit(seed, seed, opts); ok {
		frontier.Push(start)
	}

	budget := max(minCrawlAttempts, 2*opts.MaxPages)
	var out []string
	for attempts := 0; len(out) < opts.MaxPages && attempts < budget; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		u, ok := frontier.Pop()
		if !ok {
			break
		}

		resp, err := d.Fetcher.Fetch(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger(d.Logger).Debug("skipping unreachable page", "url", u, "err", err)
			continue
		}
		if !resp.IsHTML() {
			continue
		}

		out = append(out, u)
		if cfg.onURL != nil {
			cfg.onURL(u)
		}

		base := u
		if resp.URL != "" {
			base = resp.URL
		}
		links, err := d.Links.ExtractLinks(resp.Body, base)
		if err != nil {
			continue
		}
		for _, link := range links {
			if next, ok := d.admit(seed, link, opts); ok {
				frontier.Push(next)
			}
		}
	}

	if out == nil {
		out = []string{}
	}
	return out, nil
}

// admit normalizes candidate and applies the scope rules: same origin
// (when enabled), seed path prefix (when enabled), the static denylist and
// the caller's filter.
func (d *Discoverer) admit(seed, candidate string, opts sitepdf.Options) (string, bool) {
	u, err := sitepdf.Normalize(candidate)
	if err != nil || !(strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")) {
		return "", false
	}
	if opts.SameOriginOnly && !sitepdf.SameOrigin(seed, u) {
		return "", false
	}
	if opts.PathPrefixOnly && !sitepdf.HasPathPrefix(u, seed) {
		return "", false
	}
	if sitepdf.IsExcluded(u) {
		return "", false
	}
	if !opts.Accept(u) {
		return "", false
	}
	return u, true
}

func (d *Discoverer) frontier() sitepdf.URLFrontier {
	if d.NewFrontier != nil {
		return d.NewFrontier()
	}
	return NewFrontier(frontierCapacity, frontierFPRate)
}
