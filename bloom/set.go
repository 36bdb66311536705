// Package bloom provides exact URL sets accelerated by a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set records URLs. The Bloom filter answers most negative lookups
// without touching the map; the map removes false positives, so membership
// is exact.
type Set struct {
	filter *bloom.BloomFilter
	exact  map[string]struct{}
}

// NewSet creates a Set sized for n expected URLs with the given false
// positive rate for the filter stage.
func NewSet(n uint, fpRate float64) *Set {
	if n == 0 {
		n = 1
	}
	return &Set{
		filter: bloom.NewWithEstimates(n, fpRate),
		exact:  make(map[string]struct{}, n),
	}
}

// Add inserts url and reports whether it was not already present.
func (s *Set) Add(url string) bool {
	if s.Has(url) {
		return false
	}
	s.filter.AddString(url)
	s.exact[url] = struct{}{}
	return true
}

// Has reports whether url was added.
func (s *Set) Has(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}

// Len returns the number of distinct URLs added.
func (s *Set) Len() int {
	return len(s.exact)
}
