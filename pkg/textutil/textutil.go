package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases the name and removes all whitespace so that names can be
// compared regardless of how they were typed.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

// PhraseMatcher finds whole-word phrases in text, ignoring case and how the words
// of a phrase are spaced.
type PhraseMatcher struct {
	regex *regexp.Regexp
}

func NewPhraseMatcher(phrases ...string) PhraseMatcher {
	alternatives := make([]string, len(phrases))
	for i, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alternatives[i] = strings.Join(words, `\s+`)
	}
	return PhraseMatcher{
		regex: regexp.MustCompile(`(?i)\b(?:` + strings.Join(alternatives, "|") + `)\b`),
	}
}

// Match reports whether any phrase occurs in the text on word boundaries.
func (m PhraseMatcher) Match(text string) bool {
	return m.regex.MatchString(text)
}
