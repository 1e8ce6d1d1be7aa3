package crawler

import (
	"catalog-crawler/internal/extract"
	"catalog-crawler/pkg/configutil"
	"errors"
	"fmt"
	"net/url"
)

type SpecializationConfig struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Program string `json:"program"`
	Path    string `json:"path"`
}

type LabelsConfig struct {
	Core           []string `json:"core"`
	AfterCore      []string `json:"after_core"`
	Electives      []string `json:"electives"`
	AfterElectives []string `json:"after_electives"`
}

// Config is the `config.json5` of the crawler.
type Config struct {
	BaseUrl     string `json:"base_url"`
	CoursesPath string `json:"courses_path"`
	// requests per second
	RateLimit       float64                `json:"rate_limit"`
	SpecialTopics   []string               `json:"special_topics"`
	OutputDir       string                 `json:"output_dir"`
	Timezone        string                 `json:"timezone"`
	Schedule        string                 `json:"schedule"`
	Labels          LabelsConfig           `json:"labels"`
	Specializations []SpecializationConfig `json:"specializations"`
	History         configutil.Libsql      `json:"history"`
}

// Validate checks the keys that would otherwise fail in the middle of a crawl, unset
// keys are accepted since WithDefaults fills them in.
func (c Config) Validate() error {
	var errs []error
	if c.BaseUrl != "" {
		u, err := url.Parse(c.BaseUrl)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("base_url %q is not an absolute url", c.BaseUrl))
		}
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate_limit %v must not be negative", c.RateLimit))
	}

	seen := map[string]bool{}
	for i, s := range c.Specializations {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("specializations[%d]: missing id", i))
		} else if seen[s.ID] {
			errs = append(errs, fmt.Errorf("specializations[%d]: duplicate id %q", i, s.ID))
		}
		seen[s.ID] = true
		if s.Path == "" {
			errs = append(errs, fmt.Errorf("specializations[%d]: missing path", i))
		}
	}
	return errors.Join(errs...)
}

func (c Config) WithDefaults() Config {
	if c.RateLimit <= 0 {
		c.RateLimit = 2
	}
	if len(c.SpecialTopics) == 0 {
		c.SpecialTopics = []string{"8803"}
	}
	if c.OutputDir == "" {
		c.OutputDir = "<dev_state>/data"
	}
	if c.CoursesPath == "" {
		c.CoursesPath = "/"
	}
	return c
}

// ExtractLabels returns the configured section labels, unset ones fall back to the defaults.
func (c Config) ExtractLabels() extract.Labels {
	labels := extract.DefaultLabels()
	if len(c.Labels.Core) > 0 {
		labels.Core = c.Labels.Core
	}
	if len(c.Labels.AfterCore) > 0 {
		labels.AfterCore = c.Labels.AfterCore
	}
	if len(c.Labels.Electives) > 0 {
		labels.Electives = c.Labels.Electives
	}
	if len(c.Labels.AfterElectives) > 0 {
		labels.AfterElectives = c.Labels.AfterElectives
	}
	return labels
}
