// Package reconcile merges freshly crawled entities into the persisted registry. The
// website is authoritative for descriptive fields, the curator is authoritative for
// classification fields.
package reconcile

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/telemetry"
	"slices"
	"sync"
)

// MergeCourses merges `fresh` into a copy of `prior` (which may be nil) and returns
// it together with the ids that were not in `prior`, in the order they were crawled.
// Courses are never removed.
func MergeCourses(prior map[catalog.CourseID]catalog.Course, fresh []catalog.Course) (map[catalog.CourseID]catalog.Course, []catalog.CourseID) {
	merged := make(map[catalog.CourseID]catalog.Course, len(prior)+len(fresh))
	for id, c := range prior {
		merged[id] = c.Clone()
	}

	newIDs := []catalog.CourseID{}
	for _, c := range fresh {
		c = c.Clone()
		existing, ok := merged[c.ID]
		if ok {
			c.Aliases = existing.Aliases
			c.IsDeprecated = existing.IsDeprecated
			c.IsFoundational = existing.IsFoundational
		} else if !slices.Contains(newIDs, c.ID) {
			newIDs = append(newIDs, c.ID)
		}
		if c.Aliases == nil {
			c.Aliases = []catalog.CourseID{}
		}
		merged[c.ID] = c
	}

	return merged, newIDs
}

// MergeSpecializations replaces the specializations of `prior` that were crawled
// again and leaves the others untouched.
func MergeSpecializations(prior map[string]catalog.Specialization, fresh []catalog.Specialization) map[string]catalog.Specialization {
	merged := make(map[string]catalog.Specialization, len(prior)+len(fresh))
	for id, s := range prior {
		merged[id] = s.Clone()
	}
	for _, s := range fresh {
		merged[s.ID] = s.Clone()
	}
	return merged
}

// Reconciler owns the in-memory registry during a crawl, merges may come from any
// goroutine but only one is applied at a time.
type Reconciler struct {
	mutex    sync.Mutex
	registry catalog.Registry
	seen     map[catalog.CourseID]bool
	newIDs   []catalog.CourseID
	tel      telemetry.API
}

// NewReconciler starts from the persisted registry, a zero Registry means there was none.
func NewReconciler(prior catalog.Registry, tel telemetry.API) *Reconciler {
	assert.NotNil(tel)
	return &Reconciler{
		registry: prior.Clone(),
		seen:     map[catalog.CourseID]bool{},
		tel:      telemetry.NewScopedAPI("reconciler", tel),
	}
}

// AddCourses merges crawled courses and returns the ids that were not known before.
func (r *Reconciler) AddCourses(fresh []catalog.Course) []catalog.CourseID {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	merged, newIDs := MergeCourses(r.registry.Courses, fresh)
	r.registry.Courses = merged
	for _, c := range fresh {
		r.seen[c.ID] = true
	}
	r.newIDs = catalog.AppendUnique(r.newIDs, newIDs...)

	r.tel.ReportCount("courses", int64(len(merged)))
	r.tel.ReportCount("new-courses", int64(len(newIDs)))
	return newIDs
}

// AddSpecialization replaces the specialization with the same id.
func (r *Reconciler) AddSpecialization(fresh catalog.Specialization) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.registry.Specializations = MergeSpecializations(
		r.registry.Specializations,
		[]catalog.Specialization{fresh},
	)
	r.tel.ReportDebug("merged specialization", fresh.ID, len(fresh.Core), len(fresh.Electives))
}

// Registry returns a copy of the current registry.
func (r *Reconciler) Registry() catalog.Registry {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.registry.Clone()
}

// NewCourses returns every id first observed through this reconciler.
func (r *Reconciler) NewCourses() []catalog.CourseID {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return slices.Clone(r.newIDs)
}

// Unseen returns the ids of persisted courses that were not crawled through this
// reconciler, sorted.
func (r *Reconciler) Unseen() []catalog.CourseID {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var unseen []catalog.CourseID
	for _, id := range r.registry.SortedCourseIDs() {
		if !r.seen[id] {
			unseen = append(unseen, id)
		}
	}
	return unseen
}

// Reconcile merges a whole crawl into `prior` in one step.
func Reconcile(prior catalog.Registry, courses []catalog.Course, specializations []catalog.Specialization) (catalog.Registry, []catalog.CourseID) {
	mergedCourses, newIDs := MergeCourses(prior.Courses, courses)
	return catalog.Registry{
		Courses:         mergedCourses,
		Specializations: MergeSpecializations(prior.Specializations, specializations),
	}, newIDs
}
