package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/fwojciec/sitepdf/goquery"
	"github.com/fwojciec/sitepdf/htmltomarkdown"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	out, err := c.render(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitepdf.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}

func (c *InspectCmd) render(deps *Dependencies) (string, error) {
	seed, err := sitepdf.ParseSeed(c.URL)
	if err != nil {
		return "", err
	}
	pageURL := seed.String()

	resp, err := deps.Fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		return "", err
	}

	switch {
	case c.Framework:
		return frameworkName(deps.Detector.Detect(resp.Body)), nil
	case c.Selector != "":
		return goquery.SelectText(resp.Body, c.Selector)
	case c.Markdown:
		content, err := goquery.ContentHTML(resp.Body)
		if err != nil {
			return "", err
		}
		return htmltomarkdown.NewPageConverter(pageURL).Convert(content)
	}

	result, err := deps.Extractor.Extract(resp.Body)
	if err != nil {
		return "", err
	}
	if c.Code {
		return codeBlocks(result.Blocks, c.Lang)
	}
	return summary(pageURL, result), nil
}

func codeBlocks(blocks []sitepdf.Block, lang string) (string, error) {
	var parts []string
	for _, b := range blocks {
		if b.Kind != sitepdf.BlockCode {
			continue
		}
		if lang != "" && !strings.EqualFold(b.Language, lang) {
			continue
		}
		parts = append(parts, "```"+b.Language+"\n"+b.Text+"\n```")
	}
	if len(parts) == 0 {
		return "", sitepdf.Errorf(sitepdf.ENOTFOUND, "no code blocks found")
	}
	return strings.Join(parts, "\n\n"), nil
}

func summary(pageURL string, result *sitepdf.ExtractResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title:     %s\n", result.Title)
	fmt.Fprintf(&b, "URL:       %s\n", pageURL)
	fmt.Fprintf(&b, "Framework: %s\n", frameworkName(result.Framework))
	fmt.Fprintf(&b, "Blocks:    %d\n", len(result.Blocks))
	for _, blk := range result.Blocks {
		label := blk.Kind.String()
		if blk.Kind == sitepdf.BlockHeading {
			label = fmt.Sprintf("h%d", blk.Level)
		}
		text := strings.ReplaceAll(blk.Text, "\n", " ⏎ ")
		fmt.Fprintf(&b, "\n[%s] %s", label, truncateText(text, 100))
	}
	return b.String()
}

func frameworkName(f sitepdf.Framework) string {
	if f == "" {
		return "(unknown)"
	}
	return string(f)
}

func truncateText(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return sitepdf.TruncateRunes(s, n-3) + "..."
}
