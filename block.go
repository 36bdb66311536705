package sitepdf

// BlockKind classifies a content block.
type BlockKind int

// Content block kinds.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockListItem
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockCode:
		return "code"
	case BlockListItem:
		return "list-item"
	default:
		return "paragraph"
	}
}

// Block is one unit of extracted page content.
type Block struct {
	Kind BlockKind

	// Level is the heading level 1-6. Zero for other kinds.
	Level int

	// Text is the block text. Prose has whitespace collapsed; code keeps
	// its line breaks.
	Text string

	// Language is the detected programming language of a code block.
	Language string
}

// ExtractResult holds the structured content of one page.
type ExtractResult struct {
	// Title is the page title from <title> or the first <h1>.
	Title string

	// Framework is the documentation framework the page was built with.
	Framework Framework

	// Blocks are the content blocks in document order.
	Blocks []Block
}

// Extractor converts page markup into ordered content blocks.
type Extractor interface {
	// Extract returns an EEXTRACT error when the page has no usable
	// content. The same input always yields the same blocks.
	Extract(html string) (*ExtractResult, error)
}

// Excerpt is a plain-text fallback rendering of a page.
type Excerpt struct {
	Title string
	Text  string
}

// Excerpter pulls raw text out of a page when structured extraction fails.
type Excerpter interface {
	Excerpt(html string) (*Excerpt, error)
}

// MaxExcerptRunes bounds the text kept by excerpt fallbacks.
const MaxExcerptRunes = 2000

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
