// Package layout flows content blocks onto fixed-size pages using an
// average character width model measured with mattn/go-runewidth.
package layout

import (
	"math"
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/mattn/go-runewidth"
)

// Layout defaults in points.
const (
	DefaultMargin    = 50.0
	DefaultMaxBlocks = 20
)

const (
	titleSize  = 18.0
	titleGap   = 10.0
	urlSize    = 9.0
	urlGap     = 20.0
	lineExtra  = 4.0
	afterBlock = 5.0
	blockGap   = 8.0
	codePad    = 5.0
	minPanel   = 25.0

	// minRemaining is the space a block needs below the cursor to start on
	// the current page.
	minRemaining = 100.0

	// charWidth is the average glyph advance per display column as a
	// fraction of the font size.
	charWidth = 0.5
)

// cells measures display columns independent of the host locale.
var cells = newCondition()

func newCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}

var (
	titleColor = sitepdf.Gray(0.1)
	urlColor   = sitepdf.Gray(0.6)
)

// Ensure Engine implements sitepdf.Layouter at compile time.
var _ sitepdf.Layouter = (*Engine)(nil)

// Engine is a greedy, single-column page layouter.
type Engine struct {
	Size   sitepdf.PageSize
	Margin float64

	// Scale multiplies font sizes and heading leading.
	Scale float64

	// MaxBlocks caps the blocks laid out per source page.
	MaxBlocks int
}

// New returns an Engine configured from run options.
func New(opts sitepdf.Options) *Engine {
	return &Engine{
		Size:      opts.PageFormat.Size(),
		Margin:    DefaultMargin,
		Scale:     opts.Scale,
		MaxBlocks: DefaultMaxBlocks,
	}
}

// Layout places the header and blocks onto as many pages as needed.
func (e *Engine) Layout(header sitepdf.Header, blocks []sitepdf.Block) []*sitepdf.RenderedPage {
	limit := e.MaxBlocks
	if limit <= 0 {
		limit = DefaultMaxBlocks
	}
	if len(blocks) > limit {
		blocks = blocks[:limit]
	}

	c := e.start()
	c.header(header)
	for _, b := range blocks {
		c.block(b)
	}
	return c.pages
}

// LayoutExcerpt places the header and as much of text as fits on a single
// page. Lines past the bottom margin are dropped.
func (e *Engine) LayoutExcerpt(header sitepdf.Header, text string) []*sitepdf.RenderedPage {
	c := e.start()
	c.header(header)

	st := e.scaled(sitepdf.StyleFor(sitepdf.Block{Kind: sitepdf.BlockParagraph}))
	lh := st.FontSize + lineExtra
	for _, line := range wrap(text, e.columns(e.contentWidth(), st.FontSize)) {
		if c.y+lh > c.bottom() {
			break
		}
		c.text(c.e.Margin, line, st)
	}
	return c.pages
}

func (e *Engine) start() *cursor {
	c := &cursor{e: e}
	c.newPage()
	return c
}

func (e *Engine) scale() float64 {
	if e.Scale <= 0 {
		return sitepdf.DefaultScale
	}
	return e.Scale
}

func (e *Engine) scaled(st sitepdf.Style) sitepdf.Style {
	s := e.scale()
	st.FontSize *= s
	st.LeadingBefore *= s
	return st
}

func (e *Engine) contentWidth() float64 {
	return e.Size.Width - 2*e.Margin
}

// columns is the number of display columns that fit in width.
func (e *Engine) columns(width, fontSize float64) int {
	n := int(math.Floor(width / (charWidth * fontSize)))
	if n < 1 {
		return 1
	}
	return n
}

// TextWidth estimates the rendered width of s in points.
func TextWidth(s string, fontSize float64) float64 {
	return float64(cells.StringWidth(s)) * charWidth * fontSize
}

// cursor tracks the page being filled. y is the distance of the next line's
// top edge from the top of the page.
type cursor struct {
	e     *Engine
	pages []*sitepdf.RenderedPage
	page  *sitepdf.RenderedPage
	y     float64
}

func (c *cursor) newPage() {
	c.page = &sitepdf.RenderedPage{Width: c.e.Size.Width, Height: c.e.Size.Height}
	c.pages = append(c.pages, c.page)
	c.y = c.e.Margin
}

func (c *cursor) bottom() float64 {
	return c.e.Size.Height - c.e.Margin
}

func (c *cursor) atTop() bool {
	return c.y <= c.e.Margin
}

func (c *cursor) text(x float64, line string, st sitepdf.Style) {
	c.page.Ops = append(c.page.Ops, sitepdf.DrawOp{
		Kind:     sitepdf.OpText,
		X:        x,
		Y:        c.y + st.FontSize,
		Text:     line,
		Font:     st.Font,
		FontSize: st.FontSize,
		Color:    st.Color,
	})
	c.y += st.FontSize + lineExtra
}

// flow writes lines starting at x, moving to a new page whenever a line
// would cross the bottom margin.
func (c *cursor) flow(x float64, lines []string, st sitepdf.Style) {
	lh := st.FontSize + lineExtra
	for _, line := range lines {
		if c.y+lh > c.bottom() && !c.atTop() {
			c.newPage()
		}
		c.text(x, line, st)
	}
}

func (c *cursor) header(h sitepdf.Header) {
	s := c.e.scale()
	width := c.e.contentWidth()
	if h.Title != "" {
		st := sitepdf.Style{FontSize: titleSize * s, Font: sitepdf.FontSans, Color: titleColor}
		c.flow(c.e.Margin, wrap(h.Title, c.e.columns(width, st.FontSize)), st)
		c.y += titleGap
	}
	if h.URL != "" {
		st := sitepdf.Style{FontSize: urlSize * s, Font: sitepdf.FontSans, Color: urlColor}
		c.flow(c.e.Margin, wrap(h.URL, c.e.columns(width, st.FontSize)), st)
		c.y += urlGap
	}
}

func (c *cursor) block(b sitepdf.Block) {
	st := c.e.scaled(sitepdf.StyleFor(b))
	if c.bottom()-c.y < minRemaining && !c.atTop() {
		c.newPage()
	}
	if !c.atTop() {
		c.y += st.LeadingBefore
	}

	if st.Background != nil {
		c.panel(b.Text, st)
	} else {
		lines := wrap(st.Marker+b.Text, c.e.columns(c.e.contentWidth(), st.FontSize))
		c.flow(c.e.Margin, lines, st)
	}
	c.y += afterBlock + blockGap
}

// panel draws a code block as one background rectangle per page segment
// with its lines on top.
func (c *cursor) panel(code string, st sitepdf.Style) {
	width := c.e.contentWidth()
	cols := c.e.columns(width-2*codePad, st.FontSize)
	lines := wrapCode(code, cols)
	lh := st.FontSize + lineExtra

	for len(lines) > 0 {
		fit := int(math.Floor((c.bottom() - c.y) / lh))
		if fit < 1 || c.bottom()-c.y < minPanel {
			if !c.atTop() {
				c.newPage()
				continue
			}
			fit = 1
		}
		if fit > len(lines) {
			fit = len(lines)
		}

		h := math.Max(float64(fit)*lh, minPanel)
		c.page.Ops = append(c.page.Ops, sitepdf.DrawOp{
			Kind:  sitepdf.OpRect,
			X:     c.e.Margin,
			Y:     c.y,
			W:     width,
			H:     h,
			Color: *st.Background,
		})
		top := c.y
		for _, line := range lines[:fit] {
			c.text(c.e.Margin+codePad, line, st)
		}
		c.y = top + h
		lines = lines[fit:]

		if len(lines) > 0 {
			c.newPage()
		}
	}
}

// wrap greedily fills lines of at most cols display columns, splitting
// words that are wider than a line.
func wrap(text string, cols int) []string {
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(text) {
		for _, piece := range split(word, cols) {
			w := cells.StringWidth(piece)
			switch {
			case curWidth == 0:
				cur.WriteString(piece)
				curWidth = w
			case curWidth+1+w <= cols:
				cur.WriteByte(' ')
				cur.WriteString(piece)
				curWidth += 1 + w
			default:
				lines = append(lines, cur.String())
				cur.Reset()
				cur.WriteString(piece)
				curWidth = w
			}
		}
	}
	if curWidth > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

// wrapCode keeps line breaks and indentation and hard-splits long lines.
func wrapCode(code string, cols int) []string {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimRight(strings.ReplaceAll(line, "\t", "    "), " \r")
		if line == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, split(line, cols)...)
	}
	return lines
}

// split cuts s into chunks of at most cols display columns.
func split(s string, cols int) []string {
	if cells.StringWidth(s) <= cols {
		return []string{s}
	}
	var parts []string
	var cur strings.Builder
	width := 0
	for _, r := range s {
		w := cells.RuneWidth(r)
		if width+w > cols && width > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			width = 0
		}
		cur.WriteRune(r)
		width += w
	}
	if width > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
