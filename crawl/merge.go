package crawl

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitepdf"
)

// Checksum hashes the geometry and text of every draw op on the pages.
func Checksum(pages []*sitepdf.RenderedPage) uint64 {
	d := xxhash.New()
	for _, p := range pages {
		if p == nil {
			_, _ = d.WriteString("nil\n")
			continue
		}
		_, _ = fmt.Fprintf(d, "page %g %g %d\n", p.Width, p.Height, len(p.Ops))
		for _, op := range p.Ops {
			_, _ = fmt.Fprintf(d, "%d %g %g %g %g %d %g %g %g %g %q\n",
				op.Kind, op.X, op.Y, op.W, op.H, op.Font, op.FontSize,
				op.Color.R, op.Color.G, op.Color.B, op.Text)
		}
	}
	return d.Sum64()
}

// Seal wraps the pages rendered for one URL into a checksummed PageSet.
func Seal(url, title string, pages []*sitepdf.RenderedPage) *sitepdf.PageSet {
	return &sitepdf.PageSet{
		URL:      url,
		Title:    title,
		Pages:    pages,
		Checksum: Checksum(pages),
	}
}

// Verify returns an EMERGE error when a page set cannot be appended to a
// document: it is empty, has a page without positive finite dimensions,
// or no longer matches its checksum.
func Verify(set *sitepdf.PageSet) error {
	if set == nil || len(set.Pages) == 0 {
		return sitepdf.Errorf(sitepdf.EMERGE, "empty page set")
	}
	for i, p := range set.Pages {
		if p == nil {
			return sitepdf.Errorf(sitepdf.EMERGE, "%s: page %d missing", set.URL, i)
		}
		if !(p.Width > 0 && p.Height > 0) || math.IsInf(p.Width, 0) || math.IsInf(p.Height, 0) {
			return sitepdf.Errorf(sitepdf.EMERGE, "%s: page %d has invalid size %gx%g", set.URL, i, p.Width, p.Height)
		}
	}
	if got := Checksum(set.Pages); got != set.Checksum {
		return sitepdf.Errorf(sitepdf.EMERGE, "%s: checksum mismatch (%x != %x)", set.URL, got, set.Checksum)
	}
	return nil
}

// Merge concatenates page sets in order. Sets that fail verification are
// logged and left out; they never contribute partial pages.
func Merge(title string, sets []*sitepdf.PageSet, log *slog.Logger) *sitepdf.CombinedDocument {
	doc := &sitepdf.CombinedDocument{Title: title}
	for _, set := range sets {
		if err := Verify(set); err != nil {
			logger(log).Warn("skipping page set", "err", err)
			continue
		}
		doc.Sources = append(doc.Sources, sitepdf.Source{
			URL:       set.URL,
			Title:     set.Title,
			FirstPage: len(doc.Pages),
			PageCount: len(set.Pages),
		})
		doc.Pages = append(doc.Pages, set.Pages...)
	}
	return doc
}
