package mock

import (
	"context"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitepdf.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, seed string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, seed string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, seed)
}

var _ sitepdf.URLDiscoverer = (*URLDiscoverer)(nil)

// URLDiscoverer is a mock implementation of sitepdf.URLDiscoverer.
type URLDiscoverer struct {
	DiscoverURLsFn func(ctx context.Context, seed string, opts sitepdf.Options) ([]string, error)
}

func (d *URLDiscoverer) DiscoverURLs(ctx context.Context, seed string, opts sitepdf.Options) ([]string, error) {
	return d.DiscoverURLsFn(ctx, seed, opts)
}
