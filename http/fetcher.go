// Package http provides net/http implementations of sitepdf.Fetcher and
// sitepdf.SitemapService.
package http

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/fwojciec/sitepdf"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 5 << 20

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "sitepdf/1.0 (+https://github.com/fwojciec/sitepdf)"

// Ensure Fetcher implements sitepdf.Fetcher at compile time.
var _ sitepdf.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages directly with net/http.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodyBytes caps the decoded body size.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs one GET request. Statuses outside [200,300) return a
// *sitepdf.StatusError; network failures return an ETRANSPORT error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitepdf.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "fetching %s: %v", url, err)
	}

	body, err := f.readBody(resp)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "reading %s: %v", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &sitepdf.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	final := url
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	return &sitepdf.Response{
		URL:         final,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}

func (f *Fetcher) readBody(resp *http.Response) ([]byte, error) {
	reader := io.Reader(resp.Body)
	closers := []io.Closer{resp.Body}

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("gzip decode: %w", err)
		}
		reader = gz
		closers = append(closers, gz)
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "deflate":
		fl := flate.NewReader(resp.Body)
		reader = fl
		closers = append(closers, fl)
	}

	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(reader, f.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, fmt.Errorf("response body exceeds limit of %d bytes", f.maxBodyBytes)
	}
	return body, nil
}
