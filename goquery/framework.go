// Package goquery implements HTML parsing concerns with PuerkitoBio/goquery:
// framework detection, link extraction, content block extraction and
// plain-text excerpts.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitepdf"
)

// profile describes where a framework puts its content and which of its
// elements are navigation chrome.
type profile struct {
	framework sitepdf.Framework

	// markers identify the framework; any match counts.
	markers []string

	// containers hold the page content, most specific first.
	containers []string

	// chrome is removed before extraction.
	chrome []string
}

// profiles are checked in order; VitePress precedes VuePress because it
// reuses some VuePress markup.
var profiles = []profile{
	{
		framework:  sitepdf.FrameworkDocusaurus,
		markers:    []string{"#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container", "#__docusaurus"},
		containers: []string{".theme-doc-markdown", "article"},
		chrome:     []string{".theme-doc-sidebar-container", ".theme-doc-toc-desktop", ".theme-doc-toc-mobile", ".theme-doc-breadcrumbs", ".pagination-nav", ".theme-edit-this-page", ".navbar"},
	},
	{
		framework:  sitepdf.FrameworkMkDocs,
		markers:    []string{"[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"},
		containers: []string{".md-content__inner", ".md-content"},
		chrome:     []string{".md-source-file", ".md-content__button", ".headerlink"},
	},
	{
		framework:  sitepdf.FrameworkSphinx,
		markers:    []string{".toctree-wrapper", ".wy-nav-side", ".wy-menu-vertical", ".sphinxsidebar"},
		containers: []string{"[role='main']", ".rst-content .document", ".body"},
		chrome:     []string{".wy-nav-side", ".sphinxsidebar", ".rst-footer-buttons", ".headerlink", ".related"},
	},
	{
		framework:  sitepdf.FrameworkVitePress,
		markers:    []string{"#VPContent", ".VPDoc", ".VPDocAsideOutline"},
		containers: []string{".vp-doc", ".VPDoc"},
		chrome:     []string{".VPNav", ".VPSidebar", ".VPDocAside", ".VPDocFooter", ".header-anchor"},
	},
	{
		framework:  sitepdf.FrameworkVuePress,
		markers:    []string{".theme-default-content", ".sidebar-links", ".vuepress-navbar"},
		containers: []string{".theme-default-content"},
		chrome:     []string{".sidebar", ".navbar", ".page-nav", ".page-edit", ".header-anchor"},
	},
	{
		framework:  sitepdf.FrameworkGitBook,
		markers:    []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"},
		containers: []string{"main"},
		chrome:     []string{"[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']", "aside"},
	},
	{
		framework:  sitepdf.FrameworkNextra,
		markers:    []string{".nextra-navbar", ".nextra-sidebar", ".nextra-sidebar-container", ".nextra-toc"},
		containers: []string{"article", "main"},
		chrome:     []string{".nextra-navbar", ".nextra-sidebar-container", ".nextra-toc", ".nextra-nav-container"},
	},
}

func profileFor(f sitepdf.Framework) profile {
	for _, p := range profiles {
		if p.framework == f {
			return p
		}
	}
	return profile{}
}

// Ensure Detector implements sitepdf.FrameworkDetector at compile time.
var _ sitepdf.FrameworkDetector = (*Detector)(nil)

// Detector identifies documentation frameworks from HTML content.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified framework.
// Returns FrameworkUnknown if the framework cannot be determined.
func (d *Detector) Detect(html string) sitepdf.Framework {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return sitepdf.FrameworkUnknown
	}
	return detect(doc)
}

// detect checks the meta generator first, then structural markers.
func detect(doc *goquery.Document) sitepdf.Framework {
	if f := fromGenerator(doc); f != sitepdf.FrameworkUnknown {
		return f
	}
	for _, p := range profiles {
		for _, m := range p.markers {
			if doc.Find(m).Length() > 0 {
				return p.framework
			}
		}
	}
	if hasGitBookClasses(doc) {
		return sitepdf.FrameworkGitBook
	}
	return sitepdf.FrameworkUnknown
}

func fromGenerator(doc *goquery.Document) sitepdf.Framework {
	generator := strings.ToLower(doc.Find("meta[name='generator']").Last().AttrOr("content", ""))
	if generator == "" {
		return sitepdf.FrameworkUnknown
	}
	// vitepress must be tested before vuepress.
	for _, f := range []sitepdf.Framework{
		sitepdf.FrameworkSphinx,
		sitepdf.FrameworkGitBook,
		sitepdf.FrameworkDocusaurus,
		sitepdf.FrameworkMkDocs,
		sitepdf.FrameworkVitePress,
		sitepdf.FrameworkVuePress,
		sitepdf.FrameworkNextra,
	} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return sitepdf.FrameworkUnknown
}

// hasGitBookClasses requires at least two of GitBook's html-element classes.
func hasGitBookClasses(doc *goquery.Document) bool {
	class := doc.Find("html").AttrOr("class", "")
	count := 0
	for _, c := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(class, c) {
			count++
		}
	}
	return count >= 2
}
