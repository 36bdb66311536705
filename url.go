package sitepdf

import (
	"net/url"
	"regexp"
	"strings"
)

// excludedPattern matches links that never lead to documentation pages:
// binary assets by extension and well-known non-content path segments.
var excludedPattern = regexp.MustCompile(`(?i)(\.(png|jpe?g|gif|svg|ico|webp|pdf|zip|mp4|webm|mp3|woff2?|css|js)$)|/(search|tags?|category|assets|_next|static|fonts?)\b`)

// ParseSeed validates a crawl seed. It must be an absolute http(s) URL with
// a host; anything else is an EINVALID error.
func ParseSeed(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, Errorf(EINVALID, "seed URL required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "seed URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, Errorf(EINVALID, "seed URL %q has no host", raw)
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = rootPath(u)
	return u, nil
}

// Normalize returns the URL with its fragment removed and an empty path on
// an absolute URL written as "/". Path and query are otherwise preserved
// as-is, and Normalize(Normalize(u)) == Normalize(u).
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = rootPath(u)
	return u.String(), nil
}

func rootPath(u *url.URL) string {
	if u.Host != "" && u.Path == "" && u.Opaque == "" {
		return "/"
	}
	return u.Path
}

// SameOrigin reports whether two URLs share scheme and host.
// Unparseable URLs are never same-origin.
func SameOrigin(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return strings.EqualFold(ua.Scheme, ub.Scheme) && strings.EqualFold(ua.Host, ub.Host)
}

// IsExcluded reports whether the URL points at an asset or a non-content
// section (search, tags, static files) that is never crawled.
func IsExcluded(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	return excludedPattern.MatchString(u.Path)
}

// HasPathPrefix reports whether target's path lies under the path of base.
// A base path of "/docs" matches "/docs", "/docs/" and "/docs/intro" but
// not "/docs-old".
func HasPathPrefix(target, base string) bool {
	tu, err := url.Parse(target)
	if err != nil {
		return false
	}
	bu, err := url.Parse(base)
	if err != nil {
		return false
	}
	prefix := strings.TrimSuffix(bu.Path, "/")
	if prefix == "" {
		return true
	}
	path := tu.Path
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}

// NewURLFilter compiles include and exclude patterns into a filter.
// It returns nil when both lists are empty.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}
