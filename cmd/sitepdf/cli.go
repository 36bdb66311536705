package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Config is the merged file and global-flag configuration.
	Config Config

	Fetcher    sitepdf.Fetcher
	Discoverer sitepdf.URLDiscoverer
	Extractor  sitepdf.Extractor
	Detector   sitepdf.FrameworkDetector
	Assembler  *crawl.Assembler
	Encoder    sitepdf.DocumentEncoder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string        `help:"YAML config file" env:"SITEPDF_CONFIG" type:"path"`
	Relay   string        `help:"Relay endpoint tried when a direct fetch fails (default $SITEPDF_RELAY)"`
	Timeout time.Duration `short:"t" help:"Fetch timeout per request"`
	RPS     float64       `name:"rps" help:"Requests per second per host"`
	Verbose bool          `short:"v" help:"Log debug output"`

	Crawl   CrawlCmd   `cmd:"" help:"Render documentation sites to PDF"`
	Preview PreviewCmd `cmd:"" help:"List the pages a crawl would include"`
	Inspect InspectCmd `cmd:"" help:"Show the content extracted from one page"`
}

// ScopeFlags select which discovered pages are included.
type ScopeFlags struct {
	MaxPages   int      `help:"Maximum number of pages to include"`
	AllOrigins bool     `help:"Follow links to other hosts"`
	PathPrefix bool     `help:"Only include pages under the seed's path"`
	Filter     []string `short:"F" sep:"none" help:"Include only URLs matching regex (repeatable)"`
	Exclude    []string `short:"x" sep:"none" help:"Skip URLs matching regex (repeatable)"`
}

func (s ScopeFlags) apply(cfg *Config) {
	if s.MaxPages > 0 {
		cfg.MaxPages = s.MaxPages
	}
	if s.AllOrigins {
		cfg.SameOriginOnly = false
	}
	if s.PathPrefix {
		cfg.PathPrefixOnly = true
	}
	if len(s.Filter) > 0 {
		cfg.Include = s.Filter
	}
	if len(s.Exclude) > 0 {
		cfg.Exclude = s.Exclude
	}
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs        []string `arg:"" name:"url" sep:"none" help:"Documentation URLs to render"`
	Output      string   `short:"o" help:"Output file name (single URL only)"`
	Dir         string   `help:"Output directory"`
	Format      string   `help:"Page format: A4 or Letter"`
	Scale       float64  `help:"Font scale between 0.1 and 2.0"`
	Concurrency int      `short:"c" help:"Sites rendered in parallel"`

	ScopeFlags `embed:""`
}

func (c *CrawlCmd) apply(cfg *Config) {
	c.ScopeFlags.apply(cfg)
	if c.Dir != "" {
		cfg.OutputDir = c.Dir
	}
	if c.Format != "" {
		cfg.PageFormat = c.Format
	}
	if c.Scale != 0 {
		cfg.Scale = c.Scale
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL string `arg:"" help:"Documentation URL"`

	ScopeFlags `embed:""`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	URL       string `arg:"" help:"Page URL"`
	Selector  string `short:"s" help:"Print the text of elements matching a CSS selector"`
	Markdown  bool   `help:"Print the main content as Markdown"`
	Code      bool   `help:"Print only code blocks"`
	Lang      string `help:"With --code, keep only blocks in this language"`
	Framework bool   `help:"Print only the detected documentation framework"`
}
