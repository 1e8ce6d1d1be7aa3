package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		label    string
		next     []string
		expected string
		ok       bool
	}{
		{
			name:     "qualifier and generic terminator",
			doc:      `<h2>Overview</h2><p>intro</p><h3>Core Courses (9 hours):</h3><p>Pick two</p><ul><li>CS 6601 AI</li></ul><h3>Something Else</h3><ul><li>CS 7641 ML</li></ul>`,
			label:    "Core Courses",
			next:     []string{"Electives"},
			expected: `<p>Pick two</p><ul><li>CS 6601 AI</li></ul>`,
			ok:       true,
		},
		{
			name:     "specific terminator at a lower level",
			doc:      `<h3>Core</h3><ul><li>CS 6601 AI</li></ul><h5>Electives</h5><ul><li>CS 7641 ML</li></ul>`,
			label:    "Core",
			next:     []string{"Electives"},
			expected: `<ul><li>CS 6601 AI</li></ul>`,
			ok:       true,
		},
		{
			name:     "bold paragraph terminator",
			doc:      `<h3>Core</h3><ul><li>CS 6601 AI</li></ul><p><strong>Electives:</strong></p><ul><li>CS 7641 ML</li></ul>`,
			label:    "Core",
			next:     []string{"Electives"},
			expected: `<ul><li>CS 6601 AI</li></ul>`,
			ok:       true,
		},
		{
			name:     "bold paragraph that is not a terminator",
			doc:      `<h3>Core</h3><p><b>Algorithms</b></p><ul><li>CS 6515 GA</li></ul>`,
			label:    "Core",
			next:     []string{"Electives"},
			expected: `<p><b>Algorithms</b></p><ul><li>CS 6515 GA</li></ul>`,
			ok:       true,
		},
		{
			name:     "lower level headings stay inside the section",
			doc:      `<h2>Core</h2><h5>Algorithms</h5><ul><li>CS 6515 GA</li></ul><h2>Notes</h2>`,
			label:    "Core",
			expected: `<h5>Algorithms</h5><ul><li>CS 6515 GA</li></ul>`,
			ok:       true,
		},
		{
			name:     "end of document",
			doc:      `<h4>Electives</h4><ul><li>CS 7641 ML</li></ul>`,
			label:    "Electives",
			expected: `<ul><li>CS 7641 ML</li></ul>`,
			ok:       true,
		},
		{
			name:  "absent heading",
			doc:   `<h3>Core</h3><ul><li>CS 6601 AI</li></ul>`,
			label: "Electives",
			ok:    false,
		},
		{
			name:  "h1 does not open a section",
			doc:   `<h1>Core</h1><ul><li>CS 6601 AI</li></ul>`,
			label: "Core",
			ok:    false,
		},
		{
			name:  "labels must match exactly",
			doc:   `<h3>Core Courses</h3><ul><li>CS 6601 AI</li></ul>`,
			label: "Core",
			ok:    false,
		},
	}

	for _, test := range cases {
		fragment, ok := Segment(test.doc, test.label, test.next)
		require.Equal(t, test.ok, ok, test.name)
		require.Equal(t, test.expected, fragment, test.name)
	}
}

func TestSegmentAny(t *testing.T) {
	doc := `<h3>Core Courses</h3><ul><li>CS 6601 AI</li></ul>`
	fragment, ok := SegmentAny(doc, []string{"Core", "Core Courses"}, nil)
	require.True(t, ok)
	require.Equal(t, `<ul><li>CS 6601 AI</li></ul>`, fragment)

	_, ok = SegmentAny(doc, []string{"Electives", "Elective"}, nil)
	require.False(t, ok)
}
