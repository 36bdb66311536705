package crawl

import (
	"bytes"
	"context"
	"encoding/gob"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher serves repeated fetches of the same URL from a Cache.
// Only successful responses are stored, keyed by the exact URL.
type CachingFetcher struct {
	Fetcher sitepdf.Fetcher
	Cache   sitepdf.Cache
}

// Fetch returns a cached response when present, otherwise fetches and
// stores the result. Cache write failures are ignored.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (*sitepdf.Response, error) {
	if data, ok := f.Cache.Get(url); ok {
		var resp sitepdf.Response
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&resp); err == nil {
			return &resp, nil
		}
	}

	resp, err := f.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(resp); err == nil {
		_ = f.Cache.Set(url, buf.Bytes())
	}
	return resp, nil
}
