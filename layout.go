package sitepdf

// PageSize is a page's dimensions in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Gray returns a neutral color of the given lightness.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Font selects a typeface family.
type Font int

// Font families.
const (
	FontSans Font = iota
	FontMono
)

// Style is the visual treatment of a content block.
type Style struct {
	FontSize float64
	Font     Font
	Color    Color

	// Background, when set, is drawn as a panel behind the block.
	Background *Color

	// Marker is prepended to the first line (list bullets).
	Marker string

	// LeadingBefore is extra vertical space above the block.
	LeadingBefore float64
}

var codeBackground = Gray(0.96)

// StyleFor returns the style for a block. It is a pure function of the
// block's kind and heading level.
func StyleFor(b Block) Style {
	switch b.Kind {
	case BlockHeading:
		s := Style{Font: FontSans, Color: Gray(0.1)}
		switch b.Level {
		case 1:
			s.FontSize, s.LeadingBefore = 16, 15
		case 2:
			s.FontSize, s.LeadingBefore = 14, 12
		case 3:
			s.FontSize, s.LeadingBefore = 13, 10
		default:
			s.FontSize, s.LeadingBefore = 12, 8
		}
		return s
	case BlockCode:
		bg := codeBackground
		return Style{FontSize: 9, Font: FontMono, Color: Gray(0.2), Background: &bg}
	case BlockListItem:
		return Style{FontSize: 10, Font: FontSans, Color: Gray(0.3), Marker: "• "}
	default:
		return Style{FontSize: 10, Font: FontSans, Color: Gray(0.3)}
	}
}

// OpKind is the kind of a drawing operation.
type OpKind int

// Drawing operations.
const (
	OpText OpKind = iota
	OpRect
)

// DrawOp is one drawing instruction on a page. Coordinates are in points
// with the origin at the top-left corner; Y of a text op is its baseline.
type DrawOp struct {
	Kind     OpKind
	X, Y     float64
	W, H     float64
	Text     string
	Font     Font
	FontSize float64
	Color    Color
}

// RenderedPage is one fixed-size output page.
type RenderedPage struct {
	Width  float64
	Height float64
	Ops    []DrawOp
}

// Header identifies the source of a page set and is drawn at its top.
type Header struct {
	Title string
	URL   string
}

// Layouter places content onto fixed-size pages.
type Layouter interface {
	// Layout flows blocks onto as many pages as needed. It returns at
	// least one page.
	Layout(header Header, blocks []Block) []*RenderedPage

	// LayoutExcerpt renders a single page holding the header and as much
	// of the raw text as fits.
	LayoutExcerpt(header Header, text string) []*RenderedPage
}
