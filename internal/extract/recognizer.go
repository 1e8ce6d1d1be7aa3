package extract

import (
	"catalog-crawler/internal/catalog"
	"fmt"
	"regexp"
	"strings"
)

// foundationalMarker flags a course as foundational on the listing page.
const foundationalMarker = "*"

// SUBJECT NUMBER[ SECTION][: or whitespace][TITLE]
var mentionRegex = regexp.MustCompile(
	`\b([A-Z]{2,4})\s*(\d{4})\b(?:[\s\-]+([A-Z]\d{2})\b)?\s*(?:[:\-\x{2013}\x{2014}]\s*)?(.*)$`,
)

// Recognizer finds course mentions in normalized text.
type Recognizer struct {
	specialTopics map[string]struct{}
}

// NewRecognizer creates a Recognizer, `specialTopics` are the course numbers whose
// sections are each a distinct course.
func NewRecognizer(specialTopics []string) Recognizer {
	set := make(map[string]struct{}, len(specialTopics))
	for _, n := range specialTopics {
		set[strings.TrimSpace(n)] = struct{}{}
	}
	return Recognizer{specialTopics: set}
}

type mention struct {
	subject string
	number  string
	section string
	title   string
}

func (r Recognizer) match(text string) (mention, bool) {
	groups := mentionRegex.FindStringSubmatch(text)
	if groups == nil {
		return mention{}, false
	}
	return mention{
		subject: groups[1],
		number:  groups[2],
		section: groups[3],
		title:   strings.TrimSpace(groups[4]),
	}, true
}

// courseNumber returns the number that identifies the course, which includes the
// section only for special topics.
func (r Recognizer) courseNumber(m mention) string {
	_, special := r.specialTopics[m.number]
	if special && m.section != "" {
		return fmt.Sprintf("%s-%s", m.number, m.section)
	}
	return m.number
}

// Identifier returns the id of the first course mentioned in the text, anything
// after the mention is ignored.
func (r Recognizer) Identifier(text string) (catalog.CourseID, bool) {
	m, ok := r.match(text)
	if !ok {
		return "", false
	}
	return CourseID(m.subject, r.courseNumber(m)), true
}

// Course parses a course definition, which is a mention followed by a title. The
// foundational marker may appear anywhere in the fragment.
func (r Recognizer) Course(fragment string) (catalog.Course, bool) {
	foundational := strings.Contains(fragment, foundationalMarker)
	fragment = strings.Join(strings.Fields(strings.ReplaceAll(fragment, foundationalMarker, " ")), " ")

	m, ok := r.match(fragment)
	if !ok || m.title == "" {
		return catalog.Course{}, false
	}

	number := r.courseNumber(m)
	return catalog.Course{
		ID:             CourseID(m.subject, number),
		Subject:        m.subject,
		Number:         number,
		Name:           m.title,
		IsFoundational: foundational,
		Aliases:        []catalog.CourseID{},
	}, true
}

// CourseID joins a subject and a course number into an identifier such as "CS-6601".
func CourseID(subject, number string) catalog.CourseID {
	return catalog.CourseID(fmt.Sprintf("%s-%s", subject, number))
}
