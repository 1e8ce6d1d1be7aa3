// Package store persists the registry as two pretty-printed json files.
package store

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/telemetry"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	report_store_load = "store.load"
	report_store_save = "store.save"
)

const (
	CoursesFile         = "courses.json"
	SpecializationsFile = "specializations.json"
)

type Store struct {
	dir string
	tel telemetry.API
}

func NewStore(dir string, tel telemetry.API) Store {
	assert.NotEmptyStr(dir)
	assert.NotNil(tel)
	return Store{
		dir: dir,
		tel: telemetry.NewScopedAPI("store", tel),
	}
}

// readJSON reads the file into `out`, it returns false if the file does not exist or
// cannot be read, which callers treat the same as if there was no file.
func (s Store) readJSON(name string, out any) bool {
	path := filepath.Join(s.dir, name)
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.tel.ReportDebug("no persisted file", path)
		return false
	}
	if err != nil {
		s.tel.ReportWarning(report_store_load, fmt.Errorf("read: %w", err), path)
		return false
	}
	err = json.Unmarshal(contents, out)
	if err != nil {
		s.tel.ReportWarning(report_store_load, fmt.Errorf("unmarshal: %w", err), path)
		return false
	}
	return true
}

// Load returns the persisted registry, missing or corrupt files produce empty maps.
func (s Store) Load() catalog.Registry {
	registry := catalog.NewRegistry()

	var courses map[catalog.CourseID]catalog.Course
	if s.readJSON(CoursesFile, &courses) && courses != nil {
		registry.Courses = courses
	}
	var specializations map[string]catalog.Specialization
	if s.readJSON(SpecializationsFile, &specializations) && specializations != nil {
		registry.Specializations = specializations
	}

	return registry
}

func (s Store) writeJSON(name string, value any) error {
	contents, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	err = os.WriteFile(tmp, append(contents, '\n'), 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Save writes both files, creating the directory if needed.
func (s Store) Save(registry catalog.Registry) error {
	err := os.MkdirAll(s.dir, 0777)
	if err != nil {
		s.tel.ReportBroken(report_store_save, fmt.Errorf("mkdir: %w", err), s.dir)
		return err
	}

	courses := registry.Courses
	if courses == nil {
		courses = map[catalog.CourseID]catalog.Course{}
	}
	err = s.writeJSON(CoursesFile, courses)
	if err != nil {
		s.tel.ReportBroken(report_store_save, err, CoursesFile)
		return fmt.Errorf("save courses: %w", err)
	}

	specializations := registry.Specializations
	if specializations == nil {
		specializations = map[string]catalog.Specialization{}
	}
	err = s.writeJSON(SpecializationsFile, specializations)
	if err != nil {
		s.tel.ReportBroken(report_store_save, err, SpecializationsFile)
		return fmt.Errorf("save specializations: %w", err)
	}
	return nil
}
