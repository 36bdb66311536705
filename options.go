package sitepdf

import (
	"strings"
	"time"
)

// PageFormat names a fixed output page size.
type PageFormat string

// Supported page formats.
const (
	PageFormatA4     PageFormat = "A4"
	PageFormatLetter PageFormat = "Letter"
)

// ParsePageFormat resolves a case-insensitive format name.
func ParsePageFormat(s string) (PageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a4", "":
		return PageFormatA4, nil
	case "letter":
		return PageFormatLetter, nil
	}
	return "", Errorf(EINVALID, "unknown page format %q (want A4 or Letter)", s)
}

// Size returns the page dimensions in points.
func (f PageFormat) Size() PageSize {
	if f == PageFormatLetter {
		return PageSize{Width: 612, Height: 792}
	}
	return PageSize{Width: 595.28, Height: 841.89}
}

// Default option values.
const (
	DefaultMaxPages = 200
	DefaultScale    = 1.0
	MinScale        = 0.1
	MaxScale        = 2.0
)

// Options controls one crawl-to-document run.
type Options struct {
	// MaxPages caps the number of discovered URLs.
	MaxPages int

	// SameOriginOnly restricts discovery to the seed's scheme and host.
	SameOriginOnly bool

	// PathPrefixOnly further restricts discovery to URLs under the seed's path.
	PathPrefixOnly bool

	// WaitAfterLoad is reserved for renderers that execute scripts.
	// Static fetching ignores it.
	WaitAfterLoad time.Duration

	// PageFormat selects the output page size.
	PageFormat PageFormat

	// Scale multiplies font sizes and leading.
	Scale float64

	// Filter accepts or rejects candidate URLs. Nil accepts everything.
	Filter func(url string) bool
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{
		MaxPages:       DefaultMaxPages,
		SameOriginOnly: true,
		PageFormat:     PageFormatA4,
		Scale:          DefaultScale,
	}
}

// Validate returns an error if the options contain invalid fields.
func (o *Options) Validate() error {
	if o.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive, got %d", o.MaxPages)
	}
	if o.WaitAfterLoad < 0 {
		return Errorf(EINVALID, "wait after load must not be negative")
	}
	if o.PageFormat != PageFormatA4 && o.PageFormat != PageFormatLetter {
		return Errorf(EINVALID, "unknown page format %q", o.PageFormat)
	}
	if !(o.Scale >= MinScale && o.Scale <= MaxScale) {
		return Errorf(EINVALID, "scale %.2f outside [%.1f, %.1f]", o.Scale, MinScale, MaxScale)
	}
	return nil
}

// Accept reports whether the configured filter admits the URL.
func (o *Options) Accept(url string) bool {
	return o.Filter == nil || o.Filter(url)
}
