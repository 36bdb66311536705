package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/fwojciec/sitepdf/cmd/sitepdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMain() *main.Main {
	m := main.NewMain()
	m.Getenv = func(string) string { return "" }
	return m
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	help := stdout.String()
	for _, cmd := range []string{"crawl", "preview", "inspect"} {
		assert.Contains(t, help, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{"render"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sitepdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_format: A3\n"), 0644))
	var stdout, stderr bytes.Buffer

	err := newMain().Run(context.Background(), []string{"preview", "https://example.com", "--config", path}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "unknown page format")
}

// docsSite serves a small documentation site without a sitemap.
func docsSite(t *testing.T) *httptest.Server {
	t.Helper()

	pages := map[string]string{
		"/docs/": `<html><head><title>Docs Home</title></head><body>
<nav><a href="/docs/a">A</a><a href="/docs/b">B</a><a href="/blog/">Blog</a></nav>
<main><h1>Welcome</h1><p>This site documents the example project.</p>
<a href="/docs/a">Start here</a></main></body></html>`,
		"/docs/a": `<html><head><title>Page A</title></head><body><main>
<h1>Installing</h1><p>Install the tool with the command below.</p>
<pre><code class="language-shell">go install example.com/tool@latest</code></pre>
</main></body></html>`,
		"/docs/b": `<html><head><title>Page B</title></head><body><main>
<h2>Usage</h2><ul><li>Run the tool</li><li>Read the output</li></ul>
</main></body></html>`,
		"/blog/": `<html><head><title>Blog</title></head><body><main><p>Blog posts live here.</p></main></body></html>`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitepdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	t.Run("preview lists pages under the seed path", func(t *testing.T) {
		t.Parallel()

		srv := docsSite(t)
		cfg := writeConfig(t, "requests_per_second: 0\n")
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"preview", srv.URL + "/docs/", "--path-prefix", "--config", cfg},
			&stdout, &stderr)

		require.NoError(t, err, stderr.String())
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		assert.Equal(t, []string{srv.URL + "/docs/", srv.URL + "/docs/a", srv.URL + "/docs/b"}, lines)
	})

	t.Run("crawl writes a PDF named after the seed", func(t *testing.T) {
		t.Parallel()

		srv := docsSite(t)
		cfg := writeConfig(t, "requests_per_second: 0\npath_prefix_only: true\n")
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"crawl", srv.URL + "/docs/", "--dir", dir, "--config", cfg},
			&stdout, &stderr)

		require.NoError(t, err, stderr.String())
		path := filepath.Join(dir, "127.0.0.1-docs.pdf")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
		assert.Contains(t, stdout.String(), "Saved "+path)
	})

	t.Run("crawl honors output name and page limit", func(t *testing.T) {
		t.Parallel()

		srv := docsSite(t)
		cfg := writeConfig(t, "requests_per_second: 0\n")
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"crawl", srv.URL + "/docs/", "-o", "single", "--dir", dir, "--max-pages", "1", "--format", "letter", "--config", cfg},
			&stdout, &stderr)

		require.NoError(t, err, stderr.String())
		data, err := os.ReadFile(filepath.Join(dir, "single.pdf"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "/Count 1")
	})

	t.Run("inspect prints code blocks", func(t *testing.T) {
		t.Parallel()

		srv := docsSite(t)
		cfg := writeConfig(t, "requests_per_second: 0\n")
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"inspect", srv.URL + "/docs/a", "--code", "--config", cfg},
			&stdout, &stderr)

		require.NoError(t, err, stderr.String())
		assert.Equal(t, "```shell\ngo install example.com/tool@latest\n```\n", stdout.String())
	})

	t.Run("inspect reports an unknown framework", func(t *testing.T) {
		t.Parallel()

		srv := docsSite(t)
		cfg := writeConfig(t, "requests_per_second: 0\n")
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"inspect", srv.URL + "/docs/b", "--framework", "--config", cfg},
			&stdout, &stderr)

		require.NoError(t, err, stderr.String())
		assert.Equal(t, "(unknown)\n", stdout.String())
	})

	t.Run("crawl fails when every page is missing", func(t *testing.T) {
		t.Parallel()

		srv := docsSite(t)
		cfg := writeConfig(t, "requests_per_second: 0\n")
		dir := t.TempDir()
		var stdout, stderr bytes.Buffer

		err := newMain().Run(context.Background(),
			[]string{"crawl", srv.URL + "/missing/", "--dir", dir, "--config", cfg},
			&stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
