package http

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/fwojciec/sitepdf"
)

// Ensure RelayFetcher implements sitepdf.Fetcher at compile time.
var _ sitepdf.Fetcher = (*RelayFetcher)(nil)

// RelayFetcher fetches pages through a relay service that answers
// GET <endpoint>?url=<target> with a JSON envelope holding the target's body.
type RelayFetcher struct {
	endpoint string
	direct   *Fetcher
}

type relayEnvelope struct {
	Contents *string `json:"contents"`
	Status   *struct {
		HTTPCode    int    `json:"http_code"`
		ContentType string `json:"content_type"`
	} `json:"status"`
}

// NewRelayFetcher creates a RelayFetcher for the relay at endpoint.
// Options configure the underlying HTTP requests to the relay.
func NewRelayFetcher(endpoint string, opts ...Option) (*RelayFetcher, error) {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, sitepdf.Errorf(sitepdf.EINVALID, "invalid relay endpoint %q", endpoint)
	}
	return &RelayFetcher{endpoint: endpoint, direct: NewFetcher(opts...)}, nil
}

// Fetch retrieves target through the relay and unwraps the envelope.
func (f *RelayFetcher) Fetch(ctx context.Context, target string) (*sitepdf.Response, error) {
	u, _ := url.Parse(f.endpoint)
	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()

	resp, err := f.direct.Fetch(ctx, u.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "relay fetch of %s: %s", target, sitepdf.ErrorMessage(err))
	}

	var env relayEnvelope
	if err := json.Unmarshal([]byte(resp.Body), &env); err != nil {
		return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "relay envelope for %s: %v", target, err)
	}
	if env.Contents == nil {
		return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "relay envelope for %s has no contents", target)
	}

	out := &sitepdf.Response{
		URL:         target,
		StatusCode:  200,
		ContentType: "text/html",
		Body:        *env.Contents,
	}
	if env.Status != nil {
		if env.Status.HTTPCode != 0 {
			out.StatusCode = env.Status.HTTPCode
		}
		if env.Status.ContentType != "" {
			out.ContentType = env.Status.ContentType
		}
	}
	if out.StatusCode < 200 || out.StatusCode >= 300 {
		return nil, &sitepdf.StatusError{URL: target, StatusCode: out.StatusCode}
	}
	return out, nil
}
