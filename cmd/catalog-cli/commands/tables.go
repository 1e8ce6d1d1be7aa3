package commands

import (
	"catalog-crawler/internal/catalog"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

func joinIDs(ids []catalog.CourseID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, "\n")
}

func renderSpecialization(out io.Writer, spec catalog.Specialization) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("%s (%s)", spec.Name, spec.ID))
	t.AppendHeader(table.Row{"Group", "Pick", "Courses"})
	for _, group := range spec.Core {
		t.AppendRow(table.Row{group.Name, group.Pick, joinIDs(group.Courses)})
		t.AppendSeparator()
	}
	t.AppendRow(table.Row{"Electives", "-", joinIDs(spec.Electives)})
	t.Render()
}

func renderCourses(out io.Writer, registry catalog.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"ID", "Name", "Foundational", "Deprecated", "Aliases"})
	for _, id := range registry.SortedCourseIDs() {
		c := registry.Courses[id]
		t.AppendRow(table.Row{c.ID, c.Name, c.IsFoundational, c.IsDeprecated, joinIDs(c.Aliases)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d courses", len(registry.Courses))})
	t.Render()
}
