package htmlutil

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tags that separate words when markup is stripped
var blockTags = map[atom.Atom]bool{
	atom.Br:      true,
	atom.P:       true,
	atom.Div:     true,
	atom.Li:      true,
	atom.Ul:      true,
	atom.Ol:      true,
	atom.H1:      true,
	atom.H2:      true,
	atom.H3:      true,
	atom.H4:      true,
	atom.H5:      true,
	atom.H6:      true,
	atom.Table:   true,
	atom.Tr:      true,
	atom.Td:      true,
	atom.Th:      true,
	atom.Section: true,
}

// NormalizeText decodes character references in plain text and collapses every
// whitespace run (non-breaking spaces included) into a single space. Unknown
// references are kept as they are. A '<' in the text is never taken for markup.
func NormalizeText(text string) string {
	if strings.ContainsRune(text, '&') {
		text = html.UnescapeString(text)
	}
	return CollapseWhitespace(text)
}

// NormalizeMarkup is NormalizeText for an HTML fragment: tags are dropped, block
// tags separate words and script or style contents are skipped.
func NormalizeMarkup(markup string) string {
	return CollapseWhitespace(stripMarkup(markup))
}

func stripMarkup(markup string) string {
	var out strings.Builder
	skipping := false

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return out.String()
		case html.TextToken:
			if !skipping {
				out.Write(z.Text())
			}
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if tag == atom.Script || tag == atom.Style {
				skipping = tt == html.StartTagToken
				continue
			}
			if blockTags[tag] {
				out.WriteByte(' ')
			}
		}
	}
}

// CollapseWhitespace turns every whitespace run into a single space, drops
// non-printable runes and trims both ends.
func CollapseWhitespace(text string) string {
	var out strings.Builder
	out.Grow(len(text))

	pendingSpace := false
	for _, c := range text {
		switch {
		case unicode.IsSpace(c):
			pendingSpace = out.Len() > 0
		case !unicode.IsPrint(c):
		default:
			if pendingSpace {
				out.WriteByte(' ')
				pendingSpace = false
			}
			out.WriteRune(c)
		}
	}
	return out.String()
}
