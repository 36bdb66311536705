package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapCache() *mock.Cache {
	m := make(map[string][]byte)
	return &mock.Cache{
		GetFn: func(key string) ([]byte, bool) {
			v, ok := m[key]
			return v, ok
		},
		SetFn: func(key string, value []byte) error {
			m[key] = value
			return nil
		},
	}
}

func TestCachingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches each URL once", func(t *testing.T) {
		t.Parallel()

		calls := map[string]int{}
		inner := &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*sitepdf.Response, error) {
			calls[url]++
			return &sitepdf.Response{URL: url, StatusCode: 200, ContentType: "text/html", Body: "<p>" + url + "</p>"}, nil
		}}
		f := &crawl.CachingFetcher{Fetcher: inner, Cache: newMapCache()}

		first, err := f.Fetch(context.Background(), "https://a.test/x")
		require.NoError(t, err)
		second, err := f.Fetch(context.Background(), "https://a.test/x")
		require.NoError(t, err)
		_, err = f.Fetch(context.Background(), "https://a.test/y")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls["https://a.test/x"])
		assert.Equal(t, 1, calls["https://a.test/y"])
	})

	t.Run("does not cache failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		inner := &mock.Fetcher{FetchFn: func(context.Context, string) (*sitepdf.Response, error) {
			calls++
			return nil, errors.New("down")
		}}
		f := &crawl.CachingFetcher{Fetcher: inner, Cache: newMapCache()}

		_, err := f.Fetch(context.Background(), "https://a.test/x")
		require.Error(t, err)
		_, err = f.Fetch(context.Background(), "https://a.test/x")
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("refetches when cached bytes are corrupt", func(t *testing.T) {
		t.Parallel()

		cache := newMapCache()
		require.NoError(t, cache.Set("https://a.test/x", []byte("garbage")))
		inner := &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*sitepdf.Response, error) {
			return &sitepdf.Response{URL: url, StatusCode: 200, Body: "fresh"}, nil
		}}
		f := &crawl.CachingFetcher{Fetcher: inner, Cache: cache}

		resp, err := f.Fetch(context.Background(), "https://a.test/x")
		require.NoError(t, err)
		assert.Equal(t, "fresh", resp.Body)
	})
}
