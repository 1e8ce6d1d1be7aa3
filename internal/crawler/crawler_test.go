package crawler

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/telemetry"
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	base  *url.URL
	pages map[string]string
}

func (f fakeFetcher) Fetch(ctx context.Context, path string) (string, error) {
	page, ok := f.pages[path]
	if !ok {
		return "", fmt.Errorf("fetch %s: unexpected status 404 Not Found", path)
	}
	return page, nil
}

func (f fakeFetcher) Resolve(path string) *url.URL {
	ref, err := url.Parse(path)
	if err != nil {
		return f.base
	}
	return f.base.ResolveReference(ref)
}

const coursesPage = `
<h2>Current Courses</h2>
<ul>
	<li><a href="/courses/cs-6601">CS 6601</a> Artificial Intelligence</li>
	<li><a href="/courses/cs-6340">CS 6340</a> Compilers - Theory and Practice</li>
	<li><a href="/courses/cs-7641">CS 7641</a> Machine Learning*</li>
</ul>`

const mlPage = `
<h3>Core Courses</h3>
<p>Pick one (1) of:</p>
<ul>
	<li>CS 7641 Machine Learning</li>
	<li>CS 6601 Artificial Intelligence</li>
</ul>
<h3>Electives</h3>
<ul><li>CS 6340 Compilers - Theory and Practice</li></ul>`

func newFakeFetcher(t *testing.T, pages map[string]string) fakeFetcher {
	base, err := url.Parse("https://example.edu")
	if err != nil {
		t.Fatal(err)
	}
	return fakeFetcher{base: base, pages: pages}
}

func TestCrawlerRun(t *testing.T) {
	prior := catalog.NewRegistry()
	prior.Courses["CS-6601"] = catalog.Course{
		ID:           "CS-6601",
		Subject:      "CS",
		Number:       "6601",
		Name:         "Artificial Intelligence",
		IsDeprecated: true,
		Aliases:      []catalog.CourseID{},
	}
	prior.Courses["CS-8803-O08"] = catalog.Course{
		ID:      "CS-8803-O08",
		Subject: "CS",
		Number:  "8803-O08",
		Name:    "Compilers: Theory and Practice",
		Aliases: []catalog.CourseID{},
	}
	prior.Specializations["robotics"] = catalog.Specialization{ID: "robotics", Name: "Robotics"}

	tel := &telemetry.Recorder{}
	c := NewCrawler(
		newFakeFetcher(t, map[string]string{
			"/courses": coursesPage,
			"/ml":      mlPage,
		}),
		Config{
			CoursesPath: "/courses",
			Specializations: []SpecializationConfig{
				{ID: "ml", Name: "Machine Learning", Program: "omscs", Path: "/ml"},
				{ID: "robotics", Name: "Robotics", Program: "omscs", Path: "/robotics"},
			},
		},
		tel,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	result, err := c.Run(ctx, prior)
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, []catalog.CourseID{"CS-6340", "CS-7641"}, result.NewCourses)
	require.Equal(t, 1, result.Specializations)
	require.Len(t, result.Failures, 1)
	require.ErrorContains(t, result.Failures["robotics"], "404")
	require.Error(t, result.Err())

	require.Len(t, result.Registry.Courses, 4)
	require.True(t, result.Registry.Courses["CS-6601"].IsDeprecated)
	require.True(t, result.Registry.Courses["CS-7641"].IsFoundational)
	require.Equal(t, "https://example.edu/courses/cs-7641", result.Registry.Courses["CS-7641"].URL)

	// the failed page keeps its previous contents
	require.Equal(t, prior.Specializations["robotics"], result.Registry.Specializations["robotics"])

	diff := cmp.Diff(catalog.Specialization{
		ID:        "ml",
		Name:      "Machine Learning",
		ProgramID: "omscs",
		Core: []catalog.RequirementGroup{
			{Name: "Pick 1", Pick: 1, Courses: []catalog.CourseID{"CS-7641", "CS-6601"}},
		},
		Electives: []catalog.CourseID{"CS-6340"},
	}, result.Registry.Specializations["ml"])
	if diff != "" {
		t.Fatal(diff)
	}

	require.Len(t, result.Aliases, 1)
	require.Equal(t, catalog.CourseID("CS-6340"), result.Aliases[0].Course)
	require.Equal(t, catalog.CourseID("CS-8803-O08"), result.Aliases[0].AliasOf)

	require.Len(t, tel.Reports("broken", report_crawler_specialization), 1)

	// a second crawl over the result observes nothing new
	again, err := c.Run(ctx, result.Registry)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, again.NewCourses)
	diff = cmp.Diff(result.Registry, again.Registry)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestCrawlerCoursesFailure(t *testing.T) {
	tel := &telemetry.Recorder{}
	c := NewCrawler(
		newFakeFetcher(t, map[string]string{"/ml": mlPage}),
		Config{
			CoursesPath:     "/courses",
			Specializations: []SpecializationConfig{{ID: "ml", Name: "Machine Learning", Path: "/ml"}},
		},
		tel,
	)

	result, err := c.Run(context.Background(), catalog.Registry{})
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, result.Failures, "/courses")
	require.Empty(t, result.NewCourses)
	require.Nil(t, result.Aliases)
	require.Equal(t, 1, result.Specializations)
	require.Contains(t, result.Registry.Specializations, "ml")
}

func TestCrawlerCancelled(t *testing.T) {
	c := NewCrawler(newFakeFetcher(t, nil), Config{}, &telemetry.Recorder{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Run(ctx, catalog.Registry{})
	require.ErrorIs(t, err, context.Canceled)
}
