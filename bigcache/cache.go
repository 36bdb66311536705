// Package bigcache implements sitepdf.Cache with allegro/bigcache.
package bigcache

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/fwojciec/sitepdf"
)

// Ensure Cache implements sitepdf.Cache at compile time.
var _ sitepdf.Cache = (*Cache)(nil)

// DefaultLifeWindow is how long an entry stays valid.
const DefaultLifeWindow = 10 * time.Minute

// Cache is an in-memory, sharded cache whose entries expire after a fixed
// life window. It is scoped to the process that created it.
type Cache struct {
	cache *bigcache.BigCache
}

// Option configures a Cache.
type Option func(*bigcache.Config)

// WithLifeWindow sets how long entries stay valid.
func WithLifeWindow(d time.Duration) Option {
	return func(c *bigcache.Config) {
		c.LifeWindow = d
		c.CleanWindow = d / 2
	}
}

// WithMaxSizeMB bounds the memory the cache may hold. Zero means no limit.
func WithMaxSizeMB(mb int) Option {
	return func(c *bigcache.Config) {
		c.HardMaxCacheSize = mb
	}
}

// New creates a Cache. The context controls the background cleanup
// goroutine; Close also stops it.
func New(ctx context.Context, opts ...Option) (*Cache, error) {
	cfg := bigcache.Config{
		Shards:             16,
		LifeWindow:         DefaultLifeWindow,
		CleanWindow:        DefaultLifeWindow / 2,
		MaxEntriesInWindow: 1000,
		MaxEntrySize:       8 * 1024,
		HardMaxCacheSize:   256,
		Verbose:            false,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "create cache: %v", err)
	}
	return &Cache{cache: c}, nil
}

// Get returns the value stored under key.
func (c *Cache) Get(key string) ([]byte, bool) {
	v, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Set stores value under key.
func (c *Cache) Set(key string, value []byte) error {
	if err := c.cache.Set(key, value); err != nil {
		return sitepdf.Errorf(sitepdf.EINTERNAL, "cache set %q: %v", key, err)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return c.cache.Len()
}

// Delete removes key. A missing key is not an error.
func (c *Cache) Delete(key string) error {
	if err := c.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return sitepdf.Errorf(sitepdf.EINTERNAL, "cache delete %q: %v", key, err)
	}
	return nil
}

// Close stops background cleanup and releases memory.
func (c *Cache) Close() error {
	return c.cache.Close()
}
