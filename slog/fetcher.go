package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure LoggingFetcher implements sitepdf.Fetcher.
var _ sitepdf.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   sitepdf.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sitepdf.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *sitepdf.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status, size = resp.StatusCode, len(resp.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
