package sitepdf

// Framework identifies a documentation framework.
type Framework string

// Supported documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// FrameworkDetector identifies documentation frameworks from HTML.
type FrameworkDetector interface {
	// Detect analyzes HTML and returns the identified framework.
	// Returns FrameworkUnknown if the framework cannot be determined.
	Detect(html string) Framework
}

// LinkExtractor lists the hyperlinks of a page.
type LinkExtractor interface {
	// ExtractLinks returns absolute http(s) link targets in document order,
	// resolved against baseURL, without fragments and without duplicates.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
