package crawl

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/google/uuid"
)

// Assembler turns a seed into a CombinedDocument. Pages are processed
// one at a time in discovery order; a page that cannot be fetched or
// rendered is skipped and never aborts the run.
type Assembler struct {
	Discoverer sitepdf.URLDiscoverer
	Fetcher    sitepdf.Fetcher
	Extractor  sitepdf.Extractor

	// Excerpters are tried in order when structured extraction fails.
	Excerpters []sitepdf.Excerpter

	// NewLayouter builds the layout engine for a run's page format and scale.
	NewLayouter func(opts sitepdf.Options) sitepdf.Layouter

	Logger *slog.Logger
}

// Assemble discovers, fetches, extracts, lays out and merges every page
// reachable from seed. It fails with EINVALID for a bad seed or options,
// ENODISCOVERED when discovery finds nothing and ENORENDERED when no page
// produced output.
func (a *Assembler) Assemble(ctx context.Context, seed string, opts sitepdf.Options, progress sitepdf.ProgressFunc) (*sitepdf.CombinedDocument, error) {
	u, err := sitepdf.ParseSeed(seed)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	seed = u.String()

	log := logger(a.Logger).With("run", uuid.NewString(), "seed", seed)
	begin := time.Now()

	urls, err := a.Discoverer.DiscoverURLs(ctx, seed, opts)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, sitepdf.Errorf(sitepdf.ENODISCOVERED, "no pages discovered from %s", seed)
	}
	log.Info("discovered pages", "count", len(urls))

	layouter := a.NewLayouter(opts)
	sets := make([]*sitepdf.PageSet, 0, len(urls))
	for i, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		set, stage, err := a.renderPage(ctx, pageURL, layouter)
		report := sitepdf.Progress{Stage: stage, URL: pageURL, Completed: i + 1, Total: len(urls), Err: err}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("skipping page", "url", pageURL, "err", err)
		} else {
			report.Pages = len(set.Pages)
			sets = append(sets, set)
		}
		if progress != nil {
			progress(report)
		}
	}

	doc := Merge(seed, sets, log)
	if len(doc.Pages) == 0 {
		return nil, sitepdf.Errorf(sitepdf.ENORENDERED, "none of the %d discovered pages could be rendered", len(urls))
	}

	log.Info("assembled document",
		"count", len(doc.Sources),
		"pages", len(doc.Pages),
		"duration", time.Since(begin),
	)
	return doc, nil
}

// renderPage produces the sealed page set for one URL, falling back to a
// single excerpt page when structured extraction yields nothing.
func (a *Assembler) renderPage(ctx context.Context, pageURL string, layouter sitepdf.Layouter) (*sitepdf.PageSet, sitepdf.ProgressStage, error) {
	resp, err := a.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, sitepdf.StageSkipped, err
	}

	result, err := a.Extractor.Extract(resp.Body)
	if err == nil && len(result.Blocks) > 0 {
		title := result.Title
		if title == "" {
			title = pageURL
		}
		pages := layouter.Layout(sitepdf.Header{Title: title, URL: pageURL}, result.Blocks)
		return Seal(pageURL, title, pages), sitepdf.StageRendered, nil
	}
	if err == nil {
		err = sitepdf.Errorf(sitepdf.EEXTRACT, "no content blocks in %s", pageURL)
	}

	for _, ex := range a.Excerpters {
		excerpt, exErr := ex.Excerpt(resp.Body)
		if exErr != nil || excerpt == nil || excerpt.Text == "" {
			continue
		}
		title := excerpt.Title
		if title == "" && result != nil {
			title = result.Title
		}
		if title == "" {
			title = pageURL
		}
		text := sitepdf.TruncateRunes(excerpt.Text, sitepdf.MaxExcerptRunes)
		pages := layouter.LayoutExcerpt(sitepdf.Header{Title: title, URL: pageURL}, text)
		logger(a.Logger).Debug("rendered excerpt", "url", pageURL, "bytes", len(text))
		return Seal(pageURL, title, pages), sitepdf.StageExcerpted, nil
	}

	return nil, sitepdf.StageSkipped, err
}

// Pipeline is the crawl-to-document entry point: assemble, encode, and
// optionally deliver.
type Pipeline struct {
	Assembler *Assembler
	Encoder   sitepdf.DocumentEncoder
	Sink      sitepdf.DocumentSink // optional
	Progress  sitepdf.ProgressFunc // optional
}

// CrawlToDocument assembles the document for seed and returns its encoded
// bytes. When a Sink is configured the bytes are also delivered under
// outputName.
func (p *Pipeline) CrawlToDocument(ctx context.Context, seed, outputName string, opts sitepdf.Options) ([]byte, error) {
	doc, err := p.Assembler.Assemble(ctx, seed, opts, p.Progress)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.Encoder.Encode(&buf, doc); err != nil {
		return nil, err
	}

	if p.Sink != nil {
		if err := p.Sink.Deliver(ctx, outputName, buf.Bytes()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
