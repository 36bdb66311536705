package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

// DefaultMaxBlocks bounds the blocks returned for one page.
const DefaultMaxBlocks = 200

const (
	minParagraphRunes = 11
	minCodeRunes      = 4
)

// chromeSelector matches navigation and non-content elements on any site.
const chromeSelector = "script, style, noscript, template, iframe, svg, nav, footer, " +
	".md-header, .md-footer, .md-sidebar, .md-nav, .md-search, .md-tabs"

// genericContainers are tried after the framework's own containers.
var genericContainers = []string{".md-content__inner", ".md-content", "main", ".content", "article"}

const blockSelector = "h1, h2, h3, h4, h5, h6, p, pre, code, li"

// Ensure Extractor implements sitepdf.Extractor at compile time.
var _ sitepdf.Extractor = (*Extractor)(nil)

// Extractor turns documentation pages into ordered content blocks.
type Extractor struct {
	// MaxBlocks caps the blocks kept per page. Zero means DefaultMaxBlocks.
	MaxBlocks int
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{MaxBlocks: DefaultMaxBlocks}
}

// Extract parses html and returns its title, framework and content blocks
// in document order.
func (e *Extractor) Extract(html string) (*sitepdf.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "parse html: %v", err)
	}

	framework := detect(doc)
	title := pageTitle(doc)
	p := profileFor(framework)
	removeChrome(doc, p)
	root := contentRoot(doc, p)

	blocks := collectBlocks(root)
	if len(blocks) == 0 {
		blocks = textLines(root)
	}
	if len(blocks) == 0 {
		return nil, sitepdf.Errorf(sitepdf.EEXTRACT, "no content blocks found")
	}

	limit := e.MaxBlocks
	if limit <= 0 {
		limit = DefaultMaxBlocks
	}
	if len(blocks) > limit {
		blocks = blocks[:limit]
	}

	return &sitepdf.ExtractResult{
		Title:     title,
		Framework: framework,
		Blocks:    blocks,
	}, nil
}

func pageTitle(doc *goquery.Document) string {
	if t := collapse(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return collapse(doc.Find("h1").First().Text())
}

func removeChrome(doc *goquery.Document, p profile) {
	doc.Find(chromeSelector).Remove()
	for _, sel := range p.chrome {
		doc.Find(sel).Remove()
	}
}

// contentRoot returns the first container holding non-blank text, or body.
func contentRoot(doc *goquery.Document, p profile) *goquery.Selection {
	candidates := append(append([]string{}, p.containers...), genericContainers...)
	for _, sel := range candidates {
		s := doc.Find(sel).First()
		if s.Length() > 0 && strings.TrimSpace(s.Text()) != "" {
			return s
		}
	}
	return doc.Find("body").First()
}

func collectBlocks(root *goquery.Selection) []sitepdf.Block {
	var blocks []sitepdf.Block
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if b, ok := toBlock(root, s); ok {
			blocks = append(blocks, b)
		}
	})
	return blocks
}

func toBlock(root, s *goquery.Selection) (sitepdf.Block, bool) {
	tag := goquery.NodeName(s)
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if within(root, s, "pre") {
			return sitepdf.Block{}, false
		}
		text := collapse(s.Text())
		if text == "" {
			return sitepdf.Block{}, false
		}
		return sitepdf.Block{Kind: sitepdf.BlockHeading, Level: int(tag[1] - '0'), Text: text}, true

	case "p":
		if within(root, s, "li, pre, p") {
			return sitepdf.Block{}, false
		}
		text := collapse(s.Text())
		if utf8.RuneCountInString(text) < minParagraphRunes {
			return sitepdf.Block{}, false
		}
		return sitepdf.Block{Kind: sitepdf.BlockParagraph, Text: text}, true

	case "pre":
		if within(root, s, "pre") {
			return sitepdf.Block{}, false
		}
		class := s.AttrOr("class", "") + " " + s.Find("code").First().AttrOr("class", "")
		return codeBlock(s.Text(), class)

	case "code":
		if within(root, s, "pre, p, li, h1, h2, h3, h4, h5, h6, td, th, a") {
			return sitepdf.Block{}, false
		}
		return codeBlock(s.Text(), s.AttrOr("class", ""))

	case "li":
		if within(root, s, "pre") {
			return sitepdf.Block{}, false
		}
		item := s.Clone()
		item.Find("ul, ol, pre").Remove()
		text := collapse(item.Text())
		if text == "" {
			return sitepdf.Block{}, false
		}
		return sitepdf.Block{Kind: sitepdf.BlockListItem, Text: text}, true
	}
	return sitepdf.Block{}, false
}

func codeBlock(raw, class string) (sitepdf.Block, bool) {
	text := strings.Trim(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minCodeRunes {
		return sitepdf.Block{}, false
	}
	return sitepdf.Block{
		Kind:     sitepdf.BlockCode,
		Text:     text,
		Language: sitepdf.DetectLanguage(class, text),
	}, true
}

// within reports whether s has an ancestor below root matching sel.
func within(root, s *goquery.Selection, sel string) bool {
	return s.ParentsUntilSelection(root).Filter(sel).Length() > 0
}

// textLines splits the container text into paragraph blocks.
func textLines(root *goquery.Selection) []sitepdf.Block {
	var blocks []sitepdf.Block
	for _, line := range strings.Split(root.Text(), "\n") {
		line = collapse(line)
		if utf8.RuneCountInString(line) >= minParagraphRunes {
			blocks = append(blocks, sitepdf.Block{Kind: sitepdf.BlockParagraph, Text: line})
		}
	}
	return blocks
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
