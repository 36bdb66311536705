package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
)

// Ensure LoggingExtractor implements sitepdf.Extractor.
var _ sitepdf.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs the detected framework and
// block count.
type LoggingExtractor struct {
	next   sitepdf.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitepdf.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string) (result *sitepdf.ExtractResult, err error) {
	defer func(begin time.Time) {
		framework, blocks := "(unknown)", 0
		if result != nil {
			if result.Framework != sitepdf.FrameworkUnknown {
				framework = string(result.Framework)
			}
			blocks = len(result.Blocks)
		}
		e.logger.Debug("extract",
			"framework", framework,
			"blocks", blocks,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
