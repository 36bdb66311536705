package sitepdf

import "regexp"

var classLanguagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`language-(\w+)`),
	regexp.MustCompile(`lang-(\w+)`),
	regexp.MustCompile(`highlight-(\w+)`),
	regexp.MustCompile(`(\w+)-code`),
}

var contentLanguagePatterns = []struct {
	lang     string
	patterns []*regexp.Regexp
}{
	{"javascript", []*regexp.Regexp{
		regexp.MustCompile(`(?m)^import .* from ['"]`),
		regexp.MustCompile(`(?m)^(const|let) \w+ = `),
		regexp.MustCompile(`(?m)^function \w+\(`),
	}},
	{"python", []*regexp.Regexp{
		regexp.MustCompile(`(?m)^from [\w.]+ import `),
		regexp.MustCompile(`(?m)^def \w+\(`),
	}},
	{"typescript", []*regexp.Regexp{
		regexp.MustCompile(`(?m)^(export )?interface \w+`),
		regexp.MustCompile(`: \w+\[\]`),
	}},
	{"cpp", []*regexp.Regexp{
		regexp.MustCompile(`(?m)^#include <`),
		regexp.MustCompile(`(?m)^int main\(`),
	}},
	{"go", []*regexp.Regexp{
		regexp.MustCompile(`(?m)^package \w+$`),
		regexp.MustCompile(`(?m)^func (\(\w+ \*?\w+\) )?\w+\(`),
	}},
	{"shell", []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\$ `),
		regexp.MustCompile(`(?m)^#!/bin/(ba)?sh`),
	}},
}

// DetectLanguage guesses the language of a code sample, first from its
// class attribute (language-go, lang-go, highlight-go, go-code) and then
// from characteristic source lines. It returns "" when nothing matches.
func DetectLanguage(class, code string) string {
	for _, re := range classLanguagePatterns {
		if m := re.FindStringSubmatch(class); m != nil {
			return m[1]
		}
	}
	for _, entry := range contentLanguagePatterns {
		for _, re := range entry.patterns {
			if re.MatchString(code) {
				return entry.lang
			}
		}
	}
	return ""
}
