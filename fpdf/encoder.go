// Package fpdf encodes combined documents as PDF with go-pdf/fpdf.
package fpdf

import (
	"io"
	"math"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/fwojciec/sitepdf"
	"github.com/go-pdf/fpdf"
)

// Ensure Encoder implements sitepdf.DocumentEncoder at compile time.
var _ sitepdf.DocumentEncoder = (*Encoder)(nil)

var fontFamily = map[sitepdf.Font]string{
	sitepdf.FontSans: "Helvetica",
	sitepdf.FontMono: "Courier",
}

// Encoder writes one PDF page per rendered page using the core fonts.
// Text is translated from UTF-8 to cp1252; runes outside it are dropped.
type Encoder struct {
	// Compress enables stream compression.
	Compress bool

	// Creator is recorded in the document information dictionary.
	Creator string

	// CreationDate is recorded when set; otherwise the encoding time is used.
	CreationDate time.Time
}

// NewEncoder returns an Encoder with compression enabled.
func NewEncoder() *Encoder {
	return &Encoder{Compress: true, Creator: "sitepdf"}
}

// Encode writes doc to w. Each source gets a top-level outline entry on
// its first page.
func (e *Encoder) Encode(w io.Writer, doc *sitepdf.CombinedDocument) error {
	if doc == nil || len(doc.Pages) == 0 {
		return sitepdf.Errorf(sitepdf.EINVALID, "document has no pages")
	}

	first := doc.Pages[0]
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	pdf.SetCompression(e.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCatalogSort(true)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if e.Creator != "" {
		pdf.SetCreator(e.Creator, true)
	}
	if !e.CreationDate.IsZero() {
		pdf.SetCreationDate(e.CreationDate)
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	bookmarks := make(map[int][]string)
	for _, src := range doc.Sources {
		title := src.Title
		if title == "" {
			title = src.URL
		}
		bookmarks[src.FirstPage] = append(bookmarks[src.FirstPage], title)
	}

	for i, page := range doc.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})
		pdf.SetFont(fontFamily[sitepdf.FontSans], "", 10)
		for _, title := range bookmarks[i] {
			pdf.Bookmark(outlineTitle(title), 0, 0)
		}
		for _, op := range page.Ops {
			drawOp(pdf, tr, op)
		}
		if err := pdf.Error(); err != nil {
			return sitepdf.Errorf(sitepdf.EINTERNAL, "render page %d: %v", i+1, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return sitepdf.Errorf(sitepdf.EINTERNAL, "write pdf: %v", err)
	}
	return nil
}

// outlineTitle encodes a bookmark title as a PDF text string. Outline
// titles are not font encoded, so non-ASCII titles are written as UTF-16BE
// with a byte order mark.
func outlineTitle(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	units := utf16.Encode([]rune(s))
	b := make([]byte, 0, 2+2*len(units))
	b = append(b, 0xfe, 0xff)
	for _, u := range units {
		b = append(b, byte(u>>8), byte(u))
	}
	return string(b)
}

func drawOp(pdf *fpdf.Fpdf, tr func(string) string, op sitepdf.DrawOp) {
	r, g, b := rgb(op.Color)
	switch op.Kind {
	case sitepdf.OpRect:
		pdf.SetFillColor(r, g, b)
		pdf.Rect(op.X, op.Y, op.W, op.H, "F")
	case sitepdf.OpText:
		family, ok := fontFamily[op.Font]
		if !ok {
			family = fontFamily[sitepdf.FontSans]
		}
		pdf.SetFont(family, "", op.FontSize)
		pdf.SetTextColor(r, g, b)
		pdf.Text(op.X, op.Y, tr(op.Text))
	}
}

func rgb(c sitepdf.Color) (int, int, int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
