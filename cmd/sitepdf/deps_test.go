package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/sitepdf"
	main "github.com/fwojciec/sitepdf/cmd/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/goquery"
	"github.com/fwojciec/sitepdf/layout"
	"github.com/fwojciec/sitepdf/mock"
)

// testDeps returns dependencies backed by an in-memory site. Pages maps
// URL to HTML; unknown URLs fail with ENOTFOUND. Discovery returns the
// discovered URLs that share the seed's origin.
func testDeps(pages map[string]string, discovered ...string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*sitepdf.Response, error) {
			body, ok := pages[url]
			if !ok {
				return nil, sitepdf.Errorf(sitepdf.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return &sitepdf.Response{URL: url, StatusCode: 200, ContentType: "text/html", Body: body}, nil
		},
	}
	discoverer := &mock.URLDiscoverer{
		DiscoverURLsFn: func(_ context.Context, seed string, opts sitepdf.Options) ([]string, error) {
			var out []string
			for _, u := range discovered {
				if len(out) < opts.MaxPages && sitepdf.SameOrigin(seed, u) && opts.Accept(u) {
					out = append(out, u)
				}
			}
			return out, nil
		},
	}
	extractor := goquery.NewExtractor()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps := &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     &stdout,
		Stderr:     &stderr,
		Logger:     logger,
		Config:     main.DefaultConfig(),
		Fetcher:    fetcher,
		Discoverer: discoverer,
		Extractor:  extractor,
		Assembler: &crawl.Assembler{
			Discoverer: discoverer,
			Fetcher:    fetcher,
			Extractor:  extractor,
			Excerpters: []sitepdf.Excerpter{goquery.NewBodyExcerpter()},
			NewLayouter: func(opts sitepdf.Options) sitepdf.Layouter {
				return layout.New(opts)
			},
			Logger: logger,
		},
		Encoder: &mock.DocumentEncoder{
			EncodeFn: func(w io.Writer, doc *sitepdf.CombinedDocument) error {
				titles := make([]string, 0, len(doc.Sources))
				for _, src := range doc.Sources {
					titles = append(titles, src.Title)
				}
				_, err := io.WriteString(w, "%PDF-test "+strings.Join(titles, "|"))
				return err
			},
		},
	}
	return deps, &stdout, &stderr
}
