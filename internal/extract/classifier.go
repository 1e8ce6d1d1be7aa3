package extract

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/telemetry"
	"errors"
	"fmt"
	"strings"
)

const (
	report_classifier_core_groups = "classifier.core-groups"
	report_classifier_electives   = "classifier.electives"
)

var errMalformedFragment = errors.New("no requirement pattern matched the section")

// Classifier turns requirement sections into requirement groups and elective pools.
type Classifier struct {
	recognizer Recognizer
	tel        telemetry.API
}

// NewClassifier returns a Classifier that reports unmatched sections and
// inconsistent pick counts through tel.
func NewClassifier(recognizer Recognizer, tel telemetry.API) Classifier {
	assert.NotNil(tel)
	return Classifier{
		recognizer: recognizer,
		tel:        telemetry.NewScopedAPI("extract", tel),
	}
}

// Classification is the result of classifying a core requirements section.
type Classification struct {
	// Pattern is the name of the authoring pattern that matched, empty if none did.
	Pattern string
	Groups  []catalog.RequirementGroup
}

// ClassifyCore tries every known authoring pattern in order of precedence.
func (c Classifier) ClassifyCore(fragment string) Classification {
	blocks := parseBlocks(fragment)
	for _, pattern := range corePatterns {
		groups, ok := pattern.match(c.recognizer, blocks)
		if !ok {
			continue
		}
		c.tel.ReportDebug("matched requirement pattern", pattern.name, len(groups))
		for _, g := range groups {
			if g.Pick > len(g.Courses) {
				c.tel.ReportWarning(
					report_classifier_core_groups,
					fmt.Errorf("pick count %d exceeds %d members", g.Pick, len(g.Courses)),
					pattern.name,
					g.Name,
				)
			}
		}
		return Classification{Pattern: pattern.name, Groups: groups}
	}

	c.tel.ReportWarning(report_classifier_core_groups, errMalformedFragment)
	return Classification{Groups: []catalog.RequirementGroup{}}
}

// CoreGroups returns the requirement groups of a core requirements section, if no
// pattern matches the result is empty.
func (c Classifier) CoreGroups(fragment string) []catalog.RequirementGroup {
	return c.ClassifyCore(fragment).Groups
}

// Electives returns every course listed in an electives section.
func (c Classifier) Electives(fragment string) []catalog.CourseID {
	ids := []catalog.CourseID{}
	lists := 0
	for _, b := range parseBlocks(fragment) {
		if !b.isList() {
			continue
		}
		lists++
		for _, item := range b.items {
			id, ok := c.recognizer.Identifier(item.Text)
			if !ok {
				if strings.Contains(strings.ToLower(item.Text), "pick") {
					c.tel.ReportDebug("skipped instruction in electives", item.Text)
				}
				continue
			}
			ids = catalog.AppendUnique(ids, id)
		}
	}
	if lists == 0 {
		c.tel.ReportWarning(report_classifier_electives, errMalformedFragment)
	}
	return ids
}
