package mock

import (
	"context"
	"io"

	"github.com/fwojciec/sitepdf"
)

var _ sitepdf.Layouter = (*Layouter)(nil)

// Layouter is a mock implementation of sitepdf.Layouter.
type Layouter struct {
	LayoutFn        func(header sitepdf.Header, blocks []sitepdf.Block) []*sitepdf.RenderedPage
	LayoutExcerptFn func(header sitepdf.Header, text string) []*sitepdf.RenderedPage
}

func (l *Layouter) Layout(header sitepdf.Header, blocks []sitepdf.Block) []*sitepdf.RenderedPage {
	return l.LayoutFn(header, blocks)
}

func (l *Layouter) LayoutExcerpt(header sitepdf.Header, text string) []*sitepdf.RenderedPage {
	return l.LayoutExcerptFn(header, text)
}

var _ sitepdf.DocumentEncoder = (*DocumentEncoder)(nil)

// DocumentEncoder is a mock implementation of sitepdf.DocumentEncoder.
type DocumentEncoder struct {
	EncodeFn func(w io.Writer, doc *sitepdf.CombinedDocument) error
}

func (e *DocumentEncoder) Encode(w io.Writer, doc *sitepdf.CombinedDocument) error {
	return e.EncodeFn(w, doc)
}

var _ sitepdf.DocumentSink = (*DocumentSink)(nil)

// DocumentSink is a mock implementation of sitepdf.DocumentSink.
type DocumentSink struct {
	DeliverFn func(ctx context.Context, name string, data []byte) error
}

func (s *DocumentSink) Deliver(ctx context.Context, name string, data []byte) error {
	return s.DeliverFn(ctx, name, data)
}
