package sitepdf

import (
	"context"
	"io"
)

// PageSet is the sealed render of one source URL.
type PageSet struct {
	URL      string
	Title    string
	Pages    []*RenderedPage
	Checksum uint64
}

// Source records which pages of a combined document came from which URL.
type Source struct {
	URL       string
	Title     string
	FirstPage int
	PageCount int
}

// CombinedDocument is the ordered concatenation of all page sets of a run.
type CombinedDocument struct {
	Title   string
	Pages   []*RenderedPage
	Sources []Source
}

// DocumentEncoder serializes a combined document (e.g. as PDF).
type DocumentEncoder interface {
	Encode(w io.Writer, doc *CombinedDocument) error
}

// DocumentSink delivers encoded document bytes under a name.
type DocumentSink interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// URLDiscoverer produces the ordered list of pages to include for a seed.
type URLDiscoverer interface {
	DiscoverURLs(ctx context.Context, seed string, opts Options) ([]string, error)
}

// ProgressStage identifies a point in the per-URL pipeline.
type ProgressStage string

// Progress stages.
const (
	StageDiscovered ProgressStage = "discovered"
	StageRendered   ProgressStage = "rendered"
	StageExcerpted  ProgressStage = "excerpted"
	StageSkipped    ProgressStage = "skipped"
)

// Progress reports the state of one URL during a run.
type Progress struct {
	Stage     ProgressStage
	URL       string
	Completed int
	Total     int
	Pages     int
	Err       error
}

// ProgressFunc receives progress updates. It may be nil.
type ProgressFunc func(Progress)
