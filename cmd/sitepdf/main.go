package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/bigcache"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/fpdf"
	"github.com/fwojciec/sitepdf/goquery"
	sitepdfhttp "github.com/fwojciec/sitepdf/http"
	"github.com/fwojciec/sitepdf/layout"
	"github.com/fwojciec/sitepdf/readability"
	pdfslog "github.com/fwojciec/sitepdf/slog"
	"github.com/fwojciec/sitepdf/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment defaults. Set before calling Run().
	Getenv func(string) string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Getenv: os.Getenv}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitepdf"),
		kong.Description("Render documentation sites to a single PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sitepdf --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	cfg, err := m.config(cli)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cli.Verbose)

	cleanup, err := wire(deps)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	defer cleanup()

	return kongCtx.Run(deps)
}

// config loads the config file and applies global flags and environment
// defaults. Flags win over the file, the file over the environment.
func (m *Main) config(cli *CLI) (Config, error) {
	cfg := DefaultConfig()
	if cli.Config != "" {
		loaded, err := LoadConfig(cli.Config)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if cfg.RelayURL == "" && m.Getenv != nil {
		cfg.RelayURL = m.Getenv("SITEPDF_RELAY")
	}
	if cli.Relay != "" {
		cfg.RelayURL = cli.Relay
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.RPS > 0 {
		cfg.RequestsPerSecond = cli.RPS
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "sitepdf",
	})
	return slog.New(handler)
}

// wire builds the fetch chain and services from deps.Config. The returned
// function releases the fetch cache.
func wire(deps *Dependencies) (func(), error) {
	cfg, logger := deps.Config, deps.Logger

	httpOpts := []sitepdfhttp.Option{sitepdfhttp.WithTimeout(cfg.Timeout)}
	if cfg.UserAgent != "" {
		httpOpts = append(httpOpts, sitepdfhttp.WithUserAgent(cfg.UserAgent))
	}

	var fetcher sitepdf.Fetcher = sitepdfhttp.NewFetcher(httpOpts...)
	if cfg.RelayURL != "" {
		relay, err := sitepdfhttp.NewRelayFetcher(cfg.RelayURL, httpOpts...)
		if err != nil {
			return nil, err
		}
		fetcher = &crawl.FallbackFetcher{Primary: fetcher, Secondary: relay, Logger: logger}
	}
	fetcher = &crawl.LimitedFetcher{Fetcher: fetcher, Limiter: crawl.NewDomainLimiter(cfg.RequestsPerSecond)}
	fetcher = pdfslog.NewLoggingFetcher(fetcher, logger)

	cache, err := bigcache.New(deps.Ctx)
	if err != nil {
		return nil, err
	}
	fetcher = &crawl.CachingFetcher{Fetcher: fetcher, Cache: cache}

	discoverer := pdfslog.NewLoggingDiscoverer(&crawl.Discoverer{
		Sitemaps: pdfslog.NewLoggingSitemapService(sitepdfhttp.NewSitemapService(fetcher), logger),
		Fetcher:  fetcher,
		Links:    goquery.NewLinkExtractor(),
		Logger:   logger,
	}, logger)
	extractor := pdfslog.NewLoggingExtractor(goquery.NewExtractor(), logger)

	deps.Fetcher = fetcher
	deps.Discoverer = discoverer
	deps.Extractor = extractor
	deps.Detector = goquery.NewDetector()
	deps.Assembler = &crawl.Assembler{
		Discoverer: discoverer,
		Fetcher:    fetcher,
		Extractor:  extractor,
		Excerpters: []sitepdf.Excerpter{
			trafilatura.NewExcerpter(),
			readability.NewExcerpter(),
			goquery.NewBodyExcerpter(),
		},
		NewLayouter: func(opts sitepdf.Options) sitepdf.Layouter {
			return layout.New(opts)
		},
		Logger: logger,
	}
	deps.Encoder = fpdf.NewEncoder()

	return func() { _ = cache.Close() }, nil
}
