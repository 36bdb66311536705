package main

import (
	"fmt"

	"github.com/fwojciec/sitepdf"
)

// Run executes the preview command.
func (c *PreviewCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	c.ScopeFlags.apply(&cfg)

	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	seed, err := sitepdf.ParseSeed(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	urls, err := deps.Discoverer.DiscoverURLs(deps.Ctx, seed.String(), opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		err := sitepdf.Errorf(sitepdf.ENODISCOVERED, "no pages discovered from %s", seed)
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
