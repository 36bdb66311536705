// Package fs provides file-based delivery of encoded documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/sitepdf"
)

// Extension is appended to output names that lack it.
const Extension = ".pdf"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName derives an output file name from a seed URL.
// Example: https://docs.example.com/guide/intro/ → docs.example.com-guide-intro.pdf
func FileName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", sitepdf.Errorf(sitepdf.EINVALID, "URL %q has no host", rawURL)
	}

	parts := []string{u.Hostname()}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	name := unsafeChars.ReplaceAllString(strings.Join(parts, "-"), "_")
	return WithExtension(name), nil
}

// WithExtension appends Extension unless name already ends with it.
func WithExtension(name string) string {
	if strings.EqualFold(filepath.Ext(name), Extension) {
		return name
	}
	return name + Extension
}

// Ensure Sink implements sitepdf.DocumentSink at compile time.
var _ sitepdf.DocumentSink = (*Sink)(nil)

// Sink writes documents into a directory.
type Sink struct {
	baseDir string
}

// NewSink creates a Sink writing to baseDir. An empty baseDir means the
// current directory.
func NewSink(baseDir string) *Sink {
	if baseDir == "" {
		baseDir = "."
	}
	return &Sink{baseDir: baseDir}
}

// Path returns where Deliver writes name.
func (s *Sink) Path(name string) string {
	return filepath.Join(s.baseDir, WithExtension(name))
}

// Deliver writes data to baseDir/name atomically: the bytes go to a
// temporary file in the same directory which is then renamed into place.
func (s *Sink) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return sitepdf.Errorf(sitepdf.EINVALID, "output name required")
	}

	path := s.Path(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
