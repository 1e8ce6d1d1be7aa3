package reconcile

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/telemetry"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func course(id catalog.CourseID, name string) catalog.Course {
	return catalog.Course{ID: id, Name: name, Aliases: []catalog.CourseID{}}
}

func TestMergeCourses(t *testing.T) {
	prior := map[catalog.CourseID]catalog.Course{
		"CS-6601": {
			ID:             "CS-6601",
			Name:           "Artificial Intelligence",
			IsDeprecated:   true,
			IsFoundational: true,
			Aliases:        []catalog.CourseID{"CS-8803-O01"},
		},
	}
	fresh := []catalog.Course{
		{ID: "CS-6601", Name: "Artificial Intelligence (renamed)", URL: "https://example.edu/cs-6601"},
		course("CS-7641", "Machine Learning"),
		course("CS-7641", "Machine Learning"),
	}

	merged, newIDs := MergeCourses(prior, fresh)
	require.Equal(t, []catalog.CourseID{"CS-7641"}, newIDs)

	diff := cmp.Diff(map[catalog.CourseID]catalog.Course{
		"CS-6601": {
			ID:             "CS-6601",
			Name:           "Artificial Intelligence (renamed)",
			URL:            "https://example.edu/cs-6601",
			IsDeprecated:   true,
			IsFoundational: true,
			Aliases:        []catalog.CourseID{"CS-8803-O01"},
		},
		"CS-7641": course("CS-7641", "Machine Learning"),
	}, merged)
	if diff != "" {
		t.Fatal(diff)
	}

	// the prior map is left alone
	require.Equal(t, "Artificial Intelligence", prior["CS-6601"].Name)

	again, newIDs := MergeCourses(merged, fresh)
	require.Empty(t, newIDs)
	require.Equal(t, merged, again)
}

func TestMergeCoursesNilAliases(t *testing.T) {
	merged, newIDs := MergeCourses(nil, []catalog.Course{{ID: "CS-6250", Name: "Computer Networks"}})
	require.Equal(t, []catalog.CourseID{"CS-6250"}, newIDs)
	require.NotNil(t, merged["CS-6250"].Aliases)
}

func TestMergeSpecializations(t *testing.T) {
	prior := map[string]catalog.Specialization{
		"ml":      {ID: "ml", Name: "Machine Learning", Electives: []catalog.CourseID{"CS-7641"}},
		"systems": {ID: "systems", Name: "Computing Systems"},
	}
	merged := MergeSpecializations(prior, []catalog.Specialization{
		{ID: "ml", Name: "Machine Learning", Electives: []catalog.CourseID{"CS-7642"}},
	})
	require.Len(t, merged, 2)
	require.Equal(t, []catalog.CourseID{"CS-7642"}, merged["ml"].Electives)
	require.Equal(t, prior["systems"], merged["systems"])
	require.Equal(t, []catalog.CourseID{"CS-7641"}, prior["ml"].Electives)
}

func TestReconcileIdempotent(t *testing.T) {
	courses := []catalog.Course{
		course("CS-6601", "Artificial Intelligence"),
		course("CS-7641", "Machine Learning"),
	}
	specs := []catalog.Specialization{{
		ID:        "ml",
		Name:      "Machine Learning",
		Core:      []catalog.RequirementGroup{{Name: "Core", Pick: 1, Courses: []catalog.CourseID{"CS-7641"}}},
		Electives: []catalog.CourseID{"CS-6601"},
	}}

	first, newIDs := Reconcile(catalog.Registry{}, courses, specs)
	require.Equal(t, []catalog.CourseID{"CS-6601", "CS-7641"}, newIDs)

	second, newIDs := Reconcile(first, courses, specs)
	require.Empty(t, newIDs)
	diff := cmp.Diff(first, second)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestReconciler(t *testing.T) {
	prior := catalog.NewRegistry()
	prior.Courses["CS-6601"] = catalog.Course{
		ID:           "CS-6601",
		Name:         "Artificial Intelligence",
		IsDeprecated: true,
		Aliases:      []catalog.CourseID{},
	}
	prior.Courses["CS-6505"] = course("CS-6505", "Computability, Algorithms, and Complexity")

	tel := &telemetry.Recorder{}
	r := NewReconciler(prior, tel)

	newIDs := r.AddCourses([]catalog.Course{
		course("CS-6601", "Artificial Intelligence"),
		course("CS-7641", "Machine Learning"),
	})
	require.Equal(t, []catalog.CourseID{"CS-7641"}, newIDs)

	wg := sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.AddSpecialization(catalog.Specialization{
				ID:        fmt.Sprintf("spec-%d", i),
				Core:      []catalog.RequirementGroup{},
				Electives: []catalog.CourseID{"CS-7641"},
			})
		}()
	}
	wg.Wait()

	registry := r.Registry()
	require.Len(t, registry.Specializations, 16)
	require.Len(t, registry.Courses, 3)
	require.True(t, registry.Courses["CS-6601"].IsDeprecated)
	require.Equal(t, []catalog.CourseID{"CS-7641"}, r.NewCourses())
	require.Equal(t, []catalog.CourseID{"CS-6505"}, r.Unseen())

	// the returned registry is a copy
	registry.Courses["CS-9999"] = course("CS-9999", "Nothing")
	require.Len(t, r.Registry().Courses, 3)

	require.NotEmpty(t, tel.Reports("count", "new-courses"))
	require.Len(t, prior.Courses, 2)
}
