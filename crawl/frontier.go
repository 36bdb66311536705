package crawl

import (
	"sync"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/bloom"
)

// Compile-time interface verification.
var _ sitepdf.URLFrontier = (*Frontier)(nil)

// Frontier is a FIFO URL queue that admits each URL at most once.
// URLs are marked seen when pushed, so a URL is never queued twice even if
// it has not been popped yet. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.Set
	queue []string
	head  int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for the seen-set filter.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{seen: bloom.NewSet(n, fpRate)}
}

// Push appends url to the queue.
// Returns false if the URL has already been seen.
// Callers pass normalized URLs; no further canonicalization happens here.
func (f *Frontier) Push(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Add(url) {
		return false
	}
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the oldest queued URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head == len(f.queue) {
		return "", false
	}
	url := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++
	if f.head == len(f.queue) {
		f.queue = f.queue[:0]
		f.head = 0
	}
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// Seen returns true if the URL has been queued at any point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Has(url)
}
