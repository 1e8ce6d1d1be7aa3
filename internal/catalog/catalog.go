// Package catalog contains the data model shared by the extractor, the reconciler and
// the store.
package catalog

import (
	"maps"
	"slices"
)

// CourseID is `SUBJECT-NUMBER`, or `SUBJECT-NUMBER-SECTION` for special topics.
type CourseID string

type Course struct {
	ID      CourseID `json:"id"`
	Subject string   `json:"subject"`
	// Number is the bare course number, or `NUMBER-SECTION` for special topics.
	Number string `json:"number"`
	Name   string `json:"name"`
	URL    string `json:"url,omitempty"`

	// the following are maintained by a curator, a crawl never overwrites them
	// once a course has been persisted.
	IsFoundational bool       `json:"isFoundational"`
	Aliases        []CourseID `json:"aliases"`
	IsDeprecated   bool       `json:"isDeprecated"`
}

type RequirementGroup struct {
	Name    string     `json:"name"`
	Pick    int        `json:"pick"`
	Courses []CourseID `json:"courseIds"`
}

type Specialization struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ProgramID string             `json:"programId"`
	Core      []RequirementGroup `json:"core"`
	Electives []CourseID         `json:"electives"`
}

// Registry is everything that gets persisted between crawls.
type Registry struct {
	Courses         map[CourseID]Course
	Specializations map[string]Specialization
}

func NewRegistry() Registry {
	return Registry{
		Courses:         map[CourseID]Course{},
		Specializations: map[string]Specialization{},
	}
}

func (c Course) Clone() Course {
	c.Aliases = slices.Clone(c.Aliases)
	return c
}

func (s Specialization) Clone() Specialization {
	if s.Core != nil {
		core := make([]RequirementGroup, len(s.Core))
		for i, g := range s.Core {
			g.Courses = slices.Clone(g.Courses)
			core[i] = g
		}
		s.Core = core
	}
	s.Electives = slices.Clone(s.Electives)
	return s
}

// Clone returns a deep copy of the registry, nil maps become empty maps.
func (r Registry) Clone() Registry {
	out := NewRegistry()
	for id, c := range r.Courses {
		out.Courses[id] = c.Clone()
	}
	for id, s := range r.Specializations {
		out.Specializations[id] = s.Clone()
	}
	return out
}

// SortedCourseIDs returns the registry's course ids in lexical order.
func (r Registry) SortedCourseIDs() []CourseID {
	return slices.Sorted(maps.Keys(r.Courses))
}

// SortedSpecializationIDs returns the registry's specialization ids in lexical order.
func (r Registry) SortedSpecializationIDs() []string {
	return slices.Sorted(maps.Keys(r.Specializations))
}

// AppendUnique appends the ids that are not already present, keeping first occurrence order.
func AppendUnique(list []CourseID, ids ...CourseID) []CourseID {
	for _, id := range ids {
		if !slices.Contains(list, id) {
			list = append(list, id)
		}
	}
	return list
}
