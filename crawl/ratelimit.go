package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/sitepdf"
	"golang.org/x/time/rate"
)

var (
	_ sitepdf.DomainLimiter = (*DomainLimiter)(nil)
	_ sitepdf.Fetcher       = (*LimitedFetcher)(nil)
)

// DomainLimiter provides per-host rate limiting using token buckets.
// Each host gets its own limiter with a burst of 1. A non-positive rate
// disables limiting.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a new DomainLimiter allowing rps requests per
// second to each host.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// LimitedFetcher waits on a DomainLimiter before every fetch.
type LimitedFetcher struct {
	Fetcher sitepdf.Fetcher
	Limiter sitepdf.DomainLimiter
}

// Fetch waits for the target host's turn, then delegates.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (*sitepdf.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if err := f.Limiter.Wait(ctx, u.Host); err != nil {
		return nil, err
	}
	return f.Fetcher.Fetch(ctx, rawURL)
}
