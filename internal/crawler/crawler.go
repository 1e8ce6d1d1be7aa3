package crawler

import (
	"catalog-crawler/internal/catalog"
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/telemetry"
	"catalog-crawler/internal/extract"
	"catalog-crawler/internal/reconcile"
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_crawler_courses        = "crawler.courses"
	report_crawler_specialization = "crawler.specialization"
)

var tracer = otel.Tracer("catalog-crawler/internal/crawler")

// Fetcher returns the body of a page on the catalog site.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
	Resolve(path string) *url.URL
}

// Crawler walks the course listing and every configured specialization page.
type Crawler struct {
	fetcher    Fetcher
	recognizer extract.Recognizer
	extractor  extract.Extractor
	config     Config
	tel        telemetry.API
}

func NewCrawler(fetcher Fetcher, config Config, tel telemetry.API) Crawler {
	assert.NotNil(fetcher)
	assert.NotNil(tel)

	config = config.WithDefaults()
	recognizer := extract.NewRecognizer(config.SpecialTopics)
	return Crawler{
		fetcher:    fetcher,
		recognizer: recognizer,
		extractor: extract.NewExtractor(
			extract.NewClassifier(recognizer, tel),
			config.ExtractLabels(),
			tel,
		),
		config: config,
		tel:    telemetry.NewScopedAPI("crawler", tel),
	}
}

type Result struct {
	Registry   catalog.Registry
	NewCourses []catalog.CourseID
	// Failures is keyed by the page (the course listing path or a specialization id)
	// that could not be processed.
	Failures map[string]error
	// Specializations is the number of specializations that were crawled successfully.
	Specializations int
	Aliases         []reconcile.AliasSuggestion
}

// Err joins every failure, nil if there were none.
func (r Result) Err() error {
	var errs []error
	for _, err := range r.Failures {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Crawler) crawlCourses(ctx context.Context) ([]catalog.Course, error) {
	ctx, span := tracer.Start(ctx, "crawlCourses")
	defer span.End()

	doc, err := c.fetcher.Fetch(ctx, c.config.CoursesPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch course listing")
		c.tel.ReportBroken(report_crawler_courses, err)
		return nil, err
	}

	courses := extract.ParseCourseList(c.recognizer, doc, c.fetcher.Resolve(c.config.CoursesPath))
	span.SetAttributes(attribute.Int("courses", len(courses)))
	if len(courses) == 0 {
		c.tel.ReportWarning(report_crawler_courses, fmt.Errorf("no courses found on the listing page"))
	}
	return courses, nil
}

func (c Crawler) crawlSpecialization(ctx context.Context, spec SpecializationConfig) (catalog.Specialization, error) {
	ctx, span := tracer.Start(ctx, "crawlSpecialization", trace.WithAttributes(
		attribute.String("id", spec.ID),
		attribute.String("path", spec.Path),
	))
	defer span.End()

	doc, err := c.fetcher.Fetch(ctx, spec.Path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch specialization")
		return catalog.Specialization{}, err
	}

	return c.extractor.Specialization(doc, extract.SpecializationSource{
		ID:        spec.ID,
		Name:      spec.Name,
		ProgramID: spec.Program,
	}), nil
}

// Run crawls everything and merges it into `prior`. A page that fails only drops
// that page's contribution and is recorded in Result.Failures, the returned error is
// only set when ctx is done.
func (c Crawler) Run(ctx context.Context, prior catalog.Registry) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	reconciler := reconcile.NewReconciler(prior, c.tel)
	result := Result{Failures: map[string]error{}}

	courses, err := c.crawlCourses(ctx)
	if err != nil {
		result.Failures[c.config.CoursesPath] = err
	} else {
		reconciler.AddCourses(courses)
	}

	var failuresLock sync.Mutex
	var specializations int
	wg := sync.WaitGroup{}
	for _, spec := range c.config.Specializations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			extracted, err := c.crawlSpecialization(ctx, spec)
			if err != nil {
				c.tel.ReportBroken(report_crawler_specialization, err, spec.ID)

				failuresLock.Lock()
				defer failuresLock.Unlock()
				result.Failures[spec.ID] = fmt.Errorf("specialization %s: %w", spec.ID, err)
				return
			}
			reconciler.AddSpecialization(extracted)

			failuresLock.Lock()
			defer failuresLock.Unlock()
			specializations++
		}()
	}
	wg.Wait()

	result.Registry = reconciler.Registry()
	result.NewCourses = reconciler.NewCourses()
	result.Specializations = specializations
	if err == nil {
		result.Aliases = reconcile.SuggestAliases(result.Registry, result.NewCourses, reconciler.Unseen())
	}

	c.tel.ReportCount("failures", int64(len(result.Failures)))
	span.SetAttributes(
		attribute.Int("new_courses", len(result.NewCourses)),
		attribute.Int("failures", len(result.Failures)),
	)
	return result, ctx.Err()
}
