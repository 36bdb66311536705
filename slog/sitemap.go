// Package slog provides log/slog decorators for sitepdf services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure LoggingSitemapService implements sitepdf.SitemapService.
var _ sitepdf.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with debug logging.
type LoggingSitemapService struct {
	next   sitepdf.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next sitepdf.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, seed string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", seed,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, seed)
}

// Ensure LoggingDiscoverer implements sitepdf.URLDiscoverer.
var _ sitepdf.URLDiscoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a URLDiscoverer with logging.
type LoggingDiscoverer struct {
	next   sitepdf.URLDiscoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next sitepdf.URLDiscoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped discoverer and logs the outcome.
func (d *LoggingDiscoverer) DiscoverURLs(ctx context.Context, seed string, opts sitepdf.Options) (urls []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("discovery",
			"url", seed,
			"count", len(urls),
			"max_pages", opts.MaxPages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverURLs(ctx, seed, opts)
}
