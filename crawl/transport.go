package crawl

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.Fetcher = (*FallbackFetcher)(nil)

// FallbackFetcher tries Primary once and, when that fails at the network
// level, Secondary exactly once. HTTP status failures from Primary are
// final: the server answered, so a relay would see the same page.
type FallbackFetcher struct {
	Primary   sitepdf.Fetcher
	Secondary sitepdf.Fetcher // optional
	Logger    *slog.Logger
}

// Fetch returns the first successful response. When both attempts fail
// the error is an ETRANSPORT error naming both causes.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (*sitepdf.Response, error) {
	resp, err := f.Primary.Fetch(ctx, url)
	if err == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if f.Secondary == nil || isStatusError(err) {
		return nil, transportError(url, err)
	}

	logger(f.Logger).Debug("direct fetch failed, trying relay", "url", url, "err", err)

	resp, relayErr := f.Secondary.Fetch(ctx, url)
	if relayErr == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, sitepdf.Errorf(sitepdf.ETRANSPORT, "fetching %s: direct: %s; relay: %s",
		url, errText(err), errText(relayErr))
}

func isStatusError(err error) bool {
	var se *sitepdf.StatusError
	return errors.As(err, &se)
}

// transportError classifies any fetch failure as ETRANSPORT, keeping
// status errors intact so callers can still inspect the code.
func transportError(url string, err error) error {
	if isStatusError(err) || sitepdf.ErrorCode(err) == sitepdf.ETRANSPORT {
		return err
	}
	return sitepdf.Errorf(sitepdf.ETRANSPORT, "fetching %s: %s", url, errText(err))
}

// errText prefers the application message and falls back to the raw error.
func errText(err error) string {
	if code := sitepdf.ErrorCode(err); code != sitepdf.EINTERNAL {
		return sitepdf.ErrorMessage(err)
	}
	return err.Error()
}

// logger returns l, or a logger that discards everything when l is nil.
func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
