package extract

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/telemetry"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestClassifier() (Classifier, *telemetry.Recorder) {
	tel := &telemetry.Recorder{}
	return NewClassifier(NewRecognizer([]string{"8803"}), tel), tel
}

func TestClassifyCore(t *testing.T) {
	cases := []struct {
		name     string
		fragment string
		pattern  string
		expected []catalog.RequirementGroup
	}{
		{
			name: "every listed course is required",
			fragment: `
				<ul>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
					<li>CS 6601 Artificial Intelligence</li>
				</ul>`,
			pattern: "direct",
			expected: []catalog.RequirementGroup{
				{Name: "Core", Pick: 2, Courses: []catalog.CourseID{"CS-6515", "CS-6601"}},
			},
		},
		{
			name: "pick phrase directly before a single list",
			fragment: `
				<p>Pick two (2) of the following:</p>
				<ul>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
					<li>CS 6601 Artificial Intelligence</li>
					<li>CS 7641 Machine Learning</li>
					<li>CS 6250 Computer Networks</li>
					<li>Any other approved course</li>
				</ul>`,
			pattern: "inline-pick",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 2", Pick: 2, Courses: []catalog.CourseID{"CS-6515", "CS-6601", "CS-7641", "CS-6250"}},
			},
		},
		{
			name: "and-pick markers",
			fragment: `
				<ul>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
					<li>CS 6520 Computational Complexity Theory</li>
				</ul>
				<p>And, pick one (1):</p>
				<ul>
					<li>CS 6601 Artificial Intelligence</li>
					<li>Any core course in excess of the requirement, e.g. CS 6515</li>
					<li>CS 7641 Machine Learning</li>
				</ul>`,
			pattern: "sequential",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6515", "CS-6520"}},
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6601", "CS-7641"}},
			},
		},
		{
			name: "and-pick markers without a leading list",
			fragment: `
				<p>And, pick one:</p>
				<ul><li>CS 6515 Introduction to Graduate Algorithms</li></ul>
				<p>And, pick two:</p>
				<ul>
					<li>CS 6601 Artificial Intelligence</li>
					<li>CS 7641 Machine Learning</li>
					<li>CS 7642 Reinforcement Learning</li>
				</ul>`,
			pattern: "sequential",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6515"}},
				{Name: "Pick 2", Pick: 2, Courses: []catalog.CourseID{"CS-6601", "CS-7641", "CS-7642"}},
			},
		},
		{
			name: "pick phrase before the lists ahead of the first and-pick marker",
			fragment: `
				<p>Pick two (2) of:</p>
				<ul>
					<li>CS 6505 Computability, Algorithms, and Complexity</li>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
					<li>CS 6520 Computational Complexity Theory</li>
				</ul>
				<p>And, pick one (1):</p>
				<ul>
					<li>CS 6601 Artificial Intelligence</li>
					<li>CS 7641 Machine Learning</li>
				</ul>`,
			pattern: "sequential",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6505", "CS-6515", "CS-6520"}},
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6601", "CS-7641"}},
			},
		},
		{
			name: "pick phrase inside the only list",
			fragment: `
				<ul>
					<li>Pick two of the following:</li>
					<li>CS 6515</li>
					<li>CS 6520</li>
					<li>CS 6550</li>
				</ul>`,
			pattern: "flat",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 2", Pick: 2, Courses: []catalog.CourseID{"CS-6515", "CS-6520", "CS-6550"}},
			},
		},
		{
			name: "course title that reads like an instruction",
			fragment: `
				<ul>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
					<li>CS 6476 Computer Vision: Many Courses of Study</li>
				</ul>`,
			pattern: "direct",
			expected: []catalog.RequirementGroup{
				{Name: "Core", Pick: 2, Courses: []catalog.CourseID{"CS-6515", "CS-6476"}},
			},
		},
		{
			name: "lists joined by or",
			fragment: `
				<ul>
					<li>CS 6505 Computability, Algorithms, and Complexity</li>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
				</ul>
				<p>or</p>
				<ul>
					<li>CS 6515 Introduction to Graduate Algorithms</li>
					<li>CS 6520 Computational Complexity Theory</li>
				</ul>`,
			pattern: "or-joined",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6505", "CS-6515", "CS-6520"}},
			},
		},
		{
			name: "several lists with agreeing pick phrases",
			fragment: `
				<p>Systems, pick one of:</p>
				<ul>
					<li>CS 6210 Advanced Operating Systems</li>
					<li>CS 6290 High Performance Computer Architecture</li>
				</ul>
				<p>Languages, pick one of:</p>
				<ul>
					<li>CS 6390 Programming Language Design</li>
					<li>CS 6400 Database Systems Concepts and Design</li>
				</ul>`,
			pattern: "flat",
			expected: []catalog.RequirementGroup{
				{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-6210", "CS-6290", "CS-6390", "CS-6400"}},
			},
		},
		{
			name: "several lists with disagreeing pick phrases",
			fragment: `
				<p>Systems, pick one of:</p>
				<ul><li>CS 6210 Advanced Operating Systems</li></ul>
				<p>Languages, pick two of:</p>
				<ul>
					<li>CS 6390 Programming Language Design</li>
					<li>CS 6400 Database Systems Concepts and Design</li>
				</ul>`,
			pattern: "flat",
			expected: []catalog.RequirementGroup{
				{Name: "Core", Pick: 3, Courses: []catalog.CourseID{"CS-6210", "CS-6390", "CS-6400"}},
			},
		},
	}

	for _, test := range cases {
		classifier, tel := newTestClassifier()
		result := classifier.ClassifyCore(test.fragment)
		require.Equal(t, test.pattern, result.Pattern, test.name)
		diff := cmp.Diff(test.expected, result.Groups)
		if diff != "" {
			t.Fatal(test.name, diff)
		}
		require.Empty(t, tel.Reports("warning", report_classifier_core_groups), test.name)
	}
}

func TestClassifyCoreWarnings(t *testing.T) {
	classifier, tel := newTestClassifier()
	groups := classifier.CoreGroups(`<p>See your advisor for the core requirements.</p>`)
	require.NotNil(t, groups)
	require.Empty(t, groups)
	require.Len(t, tel.Reports("warning", report_classifier_core_groups), 1)

	classifier, tel = newTestClassifier()
	groups = classifier.CoreGroups(`
		<p>Pick three of:</p>
		<ul>
			<li>CS 6601 Artificial Intelligence</li>
			<li>CS 7641 Machine Learning</li>
		</ul>`)
	require.Len(t, groups, 1)
	require.Equal(t, 3, groups[0].Pick)
	require.Len(t, tel.Reports("warning", report_classifier_core_groups), 1)
}

func TestElectives(t *testing.T) {
	classifier, tel := newTestClassifier()
	electives := classifier.Electives(`
		<ul>
			<li>CS 7641 Machine Learning</li>
			<li>CS 6601 Artificial Intelligence</li>
		</ul>
		<p>Additionally:</p>
		<ul>
			<li>Pick any two of the following</li>
			<li>CS 7641 Machine Learning</li>
			<li>CS 8803 O08 Compilers: Theory and Practice</li>
		</ul>`)
	require.Equal(t, []catalog.CourseID{"CS-7641", "CS-6601", "CS-8803-O08"}, electives)
	require.Empty(t, tel.Reports("warning", ""))

	electives = classifier.Electives(`<p>Any graduate course.</p>`)
	require.NotNil(t, electives)
	require.Empty(t, electives)
	require.Len(t, tel.Reports("warning", report_classifier_electives), 1)
}

func TestParseBlocks(t *testing.T) {
	blocks := parseBlocks(`<p>Pick <em>two</em>:</p><ul><li>CS 6601 AI</li></ul>trailing<br>text`)
	require.Len(t, blocks, 4)
	require.Equal(t, "Pick two:", blocks[0].text)
	require.True(t, blocks[1].isList())
	require.Len(t, blocks[1].items, 1)
	require.Equal(t, "trailing", blocks[2].text)
	require.Equal(t, "text", blocks[3].text)
}
