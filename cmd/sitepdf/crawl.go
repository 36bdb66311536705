package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/fs"
	"golang.org/x/sync/errgroup"
)

// Run executes the crawl command. Each URL is rendered independently; a
// failing site does not stop the others.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	c.apply(&cfg)

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	if c.Output != "" && len(c.URLs) > 1 {
		err := sitepdf.Errorf(sitepdf.EINVALID, "--output needs exactly one URL, got %d", len(c.URLs))
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	stdout := &syncWriter{w: deps.Stdout}
	stderr := &syncWriter{w: deps.Stderr}
	sink := fs.NewSink(cfg.OutputDir)

	spin := newProgress(deps.Stderr)
	spin.Start()
	defer spin.Stop()

	var g errgroup.Group
	g.SetLimit(max(cfg.Concurrency, 1))
	for _, seed := range c.URLs {
		g.Go(func() error {
			name := c.Output
			if name == "" {
				var err error
				if name, err = fs.FileName(seed); err != nil {
					fmt.Fprintf(stderr, "error: %s: %s\n", seed, sitepdf.ErrorMessage(err))
					return err
				}
			}

			pipeline := &crawl.Pipeline{
				Assembler: deps.Assembler,
				Encoder:   deps.Encoder,
				Sink:      sink,
				Progress:  spin.Func(),
			}
			data, err := pipeline.CrawlToDocument(deps.Ctx, seed, name, opts)
			if err != nil {
				fmt.Fprintf(stderr, "error: %s: %s\n", seed, sitepdf.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(stdout, "Saved %s (%s)\n", sink.Path(name), formatBytes(len(data)))
			return nil
		})
	}
	return g.Wait()
}

// syncWriter serializes writes from concurrent site runs.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
