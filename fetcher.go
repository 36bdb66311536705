package sitepdf

import (
	"context"
	"strings"
)

// Response is the outcome of a successful fetch.
type Response struct {
	// URL is the address the body was served from, after redirects.
	URL string

	// StatusCode is the HTTP status, always in [200,300) for a successful fetch.
	StatusCode int

	// ContentType is the raw Content-Type header value, possibly empty.
	ContentType string

	// Body is the decoded response body.
	Body string
}

// IsHTML reports whether the response carries an HTML document.
// A missing content type is treated as HTML.
func (r *Response) IsHTML() bool {
	if r == nil {
		return false
	}
	ct := strings.ToLower(r.ContentType)
	if ct == "" {
		return true
	}
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

// Fetcher retrieves a single URL.
//
// Fetch returns an error for network failures and non-2xx statuses; a
// non-2xx status is reported as a *StatusError. The context controls
// timeout and cancellation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Cache is a key-value store for fetched bodies scoped to one process.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(key string) ([]byte, bool)

	// Set stores value under key.
	Set(key string, value []byte) error
}
