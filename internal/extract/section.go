package extract

import (
	"catalog-crawler/pkg/htmlutil"
	"catalog-crawler/pkg/textutil"
	"regexp"
	"strconv"
)

var (
	headingRegex = regexp.MustCompile(`(?is)<h([1-6])\b[^>]*>(.*?)</h[1-6]\s*>`)
	// a paragraph holding nothing but bold text, used by some pages as a heading
	boldParagraphRegex = regexp.MustCompile(
		`(?is)<p\b[^>]*>\s*<(?:strong|b)\b[^>]*>(.*?)</(?:strong|b)\s*>\s*:?\s*</p\s*>`,
	)
	// "Core Courses (9 hours):" -> "Core Courses"
	qualifierRegex = regexp.MustCompile(`^(.*?)\s*(?:\([^)]*\))?\s*:?$`)
)

// the heading levels that open (and generically close) a section
var sectionLevels = map[int]bool{2: true, 3: true, 4: true}

type heading struct {
	level      int
	start, end int
	text       string
}

func findHeadings(doc string) []heading {
	var headings []heading
	for _, loc := range headingRegex.FindAllStringSubmatchIndex(doc, -1) {
		level, _ := strconv.Atoi(doc[loc[2]:loc[3]])
		headings = append(headings, heading{
			level: level,
			start: loc[0],
			end:   loc[1],
			text:  htmlutil.NormalizeMarkup(doc[loc[4]:loc[5]]),
		})
	}
	return headings
}

func labelBase(text string) string {
	groups := qualifierRegex.FindStringSubmatch(text)
	if groups == nil {
		return textutil.NormalizeName(text)
	}
	return textutil.NormalizeName(groups[1])
}

func matchesLabel(text string, labels ...string) bool {
	base := labelBase(text)
	for _, l := range labels {
		if base == labelBase(l) {
			return true
		}
	}
	return false
}

// Segment returns the markup of the section introduced by the first <h2>-<h4> heading
// that reads `label` (optionally followed by a parenthesized qualifier such as an
// hour count). The section ends at the earliest of:
//   - any heading or bold-only paragraph that reads one of `next`
//   - any <h2>-<h4> heading
//   - the end of the document
//
// false is returned when there is no such heading.
func Segment(doc, label string, next []string) (string, bool) {
	headings := findHeadings(doc)

	start := -1
	for i, h := range headings {
		if sectionLevels[h.level] && matchesLabel(h.text, label) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}
	begin := headings[start].end

	end := len(doc)
	for _, h := range headings[start+1:] {
		if sectionLevels[h.level] || matchesLabel(h.text, next...) {
			end = h.start
			break
		}
	}
	for _, loc := range boldParagraphRegex.FindAllStringSubmatchIndex(doc[begin:end], -1) {
		text := htmlutil.NormalizeMarkup(doc[begin+loc[2] : begin+loc[3]])
		if matchesLabel(text, next...) {
			end = begin + loc[0]
			break
		}
	}

	return doc[begin:end], true
}

// SegmentAny is Segment with several spellings of the same label, the first one
// found wins.
func SegmentAny(doc string, labels, next []string) (string, bool) {
	for _, label := range labels {
		fragment, ok := Segment(doc, label, next)
		if ok {
			return fragment, true
		}
	}
	return "", false
}
