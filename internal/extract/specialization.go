package extract

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/telemetry"
	"errors"
)

const report_extractor_segment = "extractor.segment"

var errMissingSection = errors.New("section heading not found")

// Labels are the spellings of the section headings on specialization pages.
type Labels struct {
	Core           []string
	AfterCore      []string
	Electives      []string
	AfterElectives []string
}

// DefaultLabels returns the heading spellings used by the catalog.
func DefaultLabels() Labels {
	return Labels{
		Core:           []string{"Core Courses", "Core Course", "Core"},
		AfterCore:      []string{"Electives", "Elective Courses", "Elective"},
		Electives:      []string{"Electives", "Elective Courses", "Elective"},
		AfterElectives: []string{"Practicum", "Notes", "Free Electives"},
	}
}

// SpecializationSource identifies a specialization page.
type SpecializationSource struct {
	ID        string
	Name      string
	ProgramID string
}

// Extractor builds specializations out of their pages.
type Extractor struct {
	classifier Classifier
	labels     Labels
	tel        telemetry.API
}

// NewExtractor returns an Extractor, unset core or elective labels fall back to
// DefaultLabels.
func NewExtractor(classifier Classifier, labels Labels, tel telemetry.API) Extractor {
	assert.NotNil(tel)
	if len(labels.Core) == 0 {
		labels.Core = DefaultLabels().Core
	}
	if len(labels.Electives) == 0 {
		labels.Electives = DefaultLabels().Electives
	}
	return Extractor{
		classifier: classifier,
		labels:     labels,
		tel:        telemetry.NewScopedAPI("extract", tel),
	}
}

// Specialization extracts the core groups and electives of a specialization page. A
// missing section yields an empty list instead of failing the whole page.
func (e Extractor) Specialization(doc string, source SpecializationSource) catalog.Specialization {
	spec := catalog.Specialization{
		ID:        source.ID,
		Name:      source.Name,
		ProgramID: source.ProgramID,
		Core:      []catalog.RequirementGroup{},
		Electives: []catalog.CourseID{},
	}

	core, ok := SegmentAny(doc, e.labels.Core, e.labels.AfterCore)
	if ok {
		spec.Core = e.classifier.CoreGroups(core)
	} else {
		e.tel.ReportWarning(report_extractor_segment, errMissingSection, source.ID, "core")
	}

	electives, ok := SegmentAny(doc, e.labels.Electives, e.labels.AfterElectives)
	if ok {
		spec.Electives = e.classifier.Electives(electives)
	} else {
		e.tel.ReportWarning(report_extractor_segment, errMissingSection, source.ID, "electives")
	}

	return spec
}
