package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/crawl"
	"github.com/fwojciec/sitepdf/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site is an in-memory link graph: page URL -> outgoing links.
// URLs listed in failing fail to fetch; URLs in binary are served as
// non-HTML content.
type site struct {
	links   map[string][]string
	failing map[string]bool
	binary  map[string]bool
	fetched []string
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*sitepdf.Response, error) {
		s.fetched = append(s.fetched, url)
		if s.failing[url] {
			return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "unreachable %s", url)
		}
		if _, ok := s.links[url]; !ok && !s.binary[url] {
			return nil, &sitepdf.StatusError{URL: url, StatusCode: 404}
		}
		ct := "text/html"
		if s.binary[url] {
			ct = "application/octet-stream"
		}
		return &sitepdf.Response{URL: url, StatusCode: 200, ContentType: ct, Body: url}, nil
	}}
}

func (s *site) linkExtractor() *mock.LinkExtractor {
	return &mock.LinkExtractor{ExtractLinksFn: func(_ string, baseURL string) ([]string, error) {
		return s.links[baseURL], nil
	}}
}

func noSitemap() *mock.SitemapService {
	return &mock.SitemapService{DiscoverURLsFn: func(context.Context, string) ([]string, error) {
		return []string{}, nil
	}}
}

func sitemapOf(urls ...string) *mock.SitemapService {
	return &mock.SitemapService{DiscoverURLsFn: func(context.Context, string) ([]string, error) {
		return urls, nil
	}}
}

func unusedFetcher(t *testing.T) *mock.Fetcher {
	return &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*sitepdf.Response, error) {
		t.Errorf("unexpected fetch of %s", url)
		return nil, errors.New("unexpected fetch")
	}}
}

func TestDiscoverer_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("uses sitemap entries in order without crawling", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Sitemaps: sitemapOf(
				"https://docs.example.com/a",
				"https://docs.example.com/b",
				"https://docs.example.com/c",
			),
			Fetcher: unusedFetcher(t),
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/a",
			"https://docs.example.com/b",
			"https://docs.example.com/c",
		}, urls)
	})

	t.Run("filters sitemap entries by scope, denylist and duplicates", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Sitemaps: sitemapOf(
				"https://docs.example.com/a#top",
				"https://other.example.com/b",
				"https://docs.example.com/logo.png",
				"https://docs.example.com/a",
				"https://docs.example.com/tags/go",
				"https://docs.example.com/c",
			),
			Fetcher: unusedFetcher(t),
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/a", "https://docs.example.com/c"}, urls)
	})

	t.Run("truncates sitemap entries to max pages", func(t *testing.T) {
		t.Parallel()

		var entries []string
		for i := range 50 {
			entries = append(entries, fmt.Sprintf("https://docs.example.com/p%d", i))
		}
		d := &crawl.Discoverer{Sitemaps: sitemapOf(entries...), Fetcher: unusedFetcher(t)}
		opts := sitepdf.DefaultOptions()
		opts.MaxPages = 10

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", opts)

		require.NoError(t, err)
		assert.Equal(t, entries[:10], urls)
	})

	t.Run("walks links breadth first when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/":  {"https://docs.example.com/a", "https://docs.example.com/b"},
			"https://docs.example.com/a": {"https://docs.example.com/c", "https://docs.example.com/"},
			"https://docs.example.com/b": {},
			"https://docs.example.com/c": {},
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://docs.example.com/",
			"https://docs.example.com/a",
			"https://docs.example.com/b",
			"https://docs.example.com/c",
		}, urls)
		assert.Len(t, s.fetched, 4, "each page is fetched exactly once")
	})

	t.Run("treats a bare host seed and its root path as one page", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/":  {"https://docs.example.com", "https://docs.example.com/a"},
			"https://docs.example.com/a": {"https://docs.example.com/", "https://docs.example.com"},
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/a"}, urls)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/a"}, s.fetched)
	})

	t.Run("resolves links against the final URL of a redirected page", func(t *testing.T) {
		t.Parallel()

		var bases []string
		fetcher := &mock.Fetcher{FetchFn: func(_ context.Context, url string) (*sitepdf.Response, error) {
			if url == "https://docs.example.com/docs" {
				return &sitepdf.Response{URL: "https://docs.example.com/docs/", StatusCode: 200, ContentType: "text/html"}, nil
			}
			return &sitepdf.Response{URL: url, StatusCode: 200, ContentType: "text/html"}, nil
		}}
		links := &mock.LinkExtractor{ExtractLinksFn: func(_ string, baseURL string) ([]string, error) {
			bases = append(bases, baseURL)
			if baseURL == "https://docs.example.com/docs/" {
				return []string{"https://docs.example.com/docs/intro"}, nil
			}
			return nil, nil
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: fetcher, Links: links}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/docs", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/docs", "https://docs.example.com/docs/intro"}, urls)
		assert.Equal(t, "https://docs.example.com/docs/", bases[0])
	})

	t.Run("walks links through the injected frontier", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/":  {"https://docs.example.com/a", "https://docs.example.com/a#top"},
			"https://docs.example.com/a": {"https://docs.example.com/"},
		}}
		var queue, pushed []string
		seen := make(map[string]bool)
		frontier := &mock.URLFrontier{
			PushFn: func(url string) bool {
				pushed = append(pushed, url)
				if seen[url] {
					return false
				}
				seen[url] = true
				queue = append(queue, url)
				return true
			},
			PopFn: func() (string, bool) {
				if len(queue) == 0 {
					return "", false
				}
				u := queue[0]
				queue = queue[1:]
				return u, true
			},
		}
		d := &crawl.Discoverer{
			Sitemaps:    noSitemap(),
			Fetcher:     s.fetcher(),
			Links:       s.linkExtractor(),
			NewFrontier: func() sitepdf.URLFrontier { return frontier },
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/a"}, urls)
		assert.Equal(t, []string{
			"https://docs.example.com/",
			"https://docs.example.com/a",
			"https://docs.example.com/a",
			"https://docs.example.com/",
		}, pushed, "links are normalized before they reach the frontier")
	})

	t.Run("falls back to link walking when sitemap has nothing in scope", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/": {"https://docs.example.com/a"},
			"https://docs.example.com/a": {},
		}}
		d := &crawl.Discoverer{
			Sitemaps: sitemapOf("https://elsewhere.example.org/x"),
			Fetcher:  s.fetcher(),
			Links:    s.linkExtractor(),
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/a"}, urls)
	})

	t.Run("falls back to link walking when sitemap lookup fails", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{"https://docs.example.com/": {}}}
		d := &crawl.Discoverer{
			Sitemaps: &mock.SitemapService{DiscoverURLsFn: func(context.Context, string) ([]string, error) {
				return nil, errors.New("bad xml")
			}},
			Fetcher: s.fetcher(),
			Links:   s.linkExtractor(),
		}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/"}, urls)
	})

	t.Run("excludes off-origin, asset and filtered links", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/": {
				"https://other.example.com/x",
				"https://docs.example.com/image.svg",
				"https://docs.example.com/search",
				"https://docs.example.com/private/a",
				"https://docs.example.com/guide",
				"mailto:team@example.com",
			},
			"https://docs.example.com/guide": {},
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}
		opts := sitepdf.DefaultOptions()
		opts.Filter = func(u string) bool { return !strings.Contains(u, "/private/") }

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", opts)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/guide"}, urls)
		assert.NotContains(t, s.fetched, "https://other.example.com/x")
	})

	t.Run("follows other origins when same-origin scoping is off", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/": {"https://other.example.com/x"},
			"https://other.example.com/x": {},
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}
		opts := sitepdf.DefaultOptions()
		opts.SameOriginOnly = false

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", opts)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://other.example.com/x"}, urls)
	})

	t.Run("restricts to seed path when path prefix scoping is on", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{
			Sitemaps: sitemapOf("https://docs.example.com/docs/a", "https://docs.example.com/blog/b"),
			Fetcher:  unusedFetcher(t),
		}
		opts := sitepdf.DefaultOptions()
		opts.PathPrefixOnly = true

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/docs/", opts)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/docs/a"}, urls)
	})

	t.Run("skips failed and non-HTML pages without recording them", func(t *testing.T) {
		t.Parallel()

		s := &site{
			links: map[string][]string{
				"https://docs.example.com/": {
					"https://docs.example.com/broken",
					"https://docs.example.com/missing",
					"https://docs.example.com/download",
					"https://docs.example.com/ok",
				},
				"https://docs.example.com/ok":     {},
				"https://docs.example.com/broken": {"https://docs.example.com/hidden"},
				"https://docs.example.com/hidden": {},
			},
			failing: map[string]bool{"https://docs.example.com/broken": true},
			binary:  map[string]bool{"https://docs.example.com/download": true},
		}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/", "https://docs.example.com/ok"}, urls)
	})

	t.Run("stops at max pages on large link graphs", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{}}
		for i := range 100 {
			u := fmt.Sprintf("https://docs.example.com/p%d", i)
			s.links[u] = []string{
				fmt.Sprintf("https://docs.example.com/p%d", (i+1)%100),
				fmt.Sprintf("https://docs.example.com/p%d", (i*7)%100),
			}
		}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}
		opts := sitepdf.DefaultOptions()
		opts.MaxPages = 25

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/p0", opts)

		require.NoError(t, err)
		assert.Len(t, urls, 25)
		assertUnique(t, urls)
		for _, u := range urls {
			assert.True(t, sitepdf.SameOrigin("https://docs.example.com/", u))
		}
	})

	t.Run("terminates on cycles", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/a": {"https://docs.example.com/b"},
			"https://docs.example.com/b": {"https://docs.example.com/a#again", "https://docs.example.com/b"},
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/a", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Equal(t, []string{"https://docs.example.com/a", "https://docs.example.com/b"}, urls)
	})

	t.Run("returns empty list when nothing is reachable", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}

		urls, err := d.DiscoverURLs(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions())

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("reports each discovered URL to the callback", func(t *testing.T) {
		t.Parallel()

		s := &site{links: map[string][]string{
			"https://docs.example.com/":  {"https://docs.example.com/a"},
			"https://docs.example.com/a": {},
		}}
		d := &crawl.Discoverer{Sitemaps: noSitemap(), Fetcher: s.fetcher(), Links: s.linkExtractor()}

		var seen []string
		urls, err := d.Discover(context.Background(), "https://docs.example.com/", sitepdf.DefaultOptions(),
			crawl.WithOnURL(func(u string) { seen = append(seen, u) }))

		require.NoError(t, err)
		assert.Equal(t, urls, seen)
	})

	t.Run("rejects invalid seed", func(t *testing.T) {
		t.Parallel()

		d := &crawl.Discoverer{Sitemaps: noSitemap()}
		_, err := d.DiscoverURLs(context.Background(), "not a url", sitepdf.DefaultOptions())
		assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d := &crawl.Discoverer{
			Sitemaps: &mock.SitemapService{DiscoverURLsFn: func(ctx context.Context, _ string) ([]string, error) {
				return nil, ctx.Err()
			}},
		}

		_, err := d.DiscoverURLs(ctx, "https://docs.example.com/", sitepdf.DefaultOptions())
		require.ErrorIs(t, err, context.Canceled)
	})
}

func assertUnique(t *testing.T, urls []string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, u := range urls {
		assert.False(t, seen[u], "duplicate URL %s", u)
		seen[u] = true
	}
}
