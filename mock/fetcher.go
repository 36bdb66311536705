package mock

import (
	"context"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitepdf.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sitepdf.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitepdf.Response, error) {
	return f.FetchFn(ctx, url)
}

var _ sitepdf.Cache = (*Cache)(nil)

// Cache is a mock implementation of sitepdf.Cache.
type Cache struct {
	GetFn func(key string) ([]byte, bool)
	SetFn func(key string, value []byte) error
}

func (c *Cache) Get(key string) ([]byte, bool) {
	return c.GetFn(key)
}

func (c *Cache) Set(key string, value []byte) error {
	return c.SetFn(key, value)
}
