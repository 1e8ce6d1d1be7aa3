// Package history records every crawl run so that newly observed courses and failing
// pages can be reviewed later.
package history

import (
	"catalog-crawler/internal/components/assert"
	"catalog-crawler/internal/components/chrono"
	"catalog-crawler/internal/components/telemetry"
	"catalog-crawler/internal/crawler"
	"catalog-crawler/internal/db"
	"context"
	"fmt"
	"slices"
	"time"
)

const report_db_query = "db.query"

type History struct {
	qry    *db.Queries
	makeTx db.MakeTx
	time   chrono.API
	tel    telemetry.API
}

func NewHistory(qry *db.Queries, makeTx db.MakeTx, time chrono.API, tel telemetry.API) History {
	assert.NotNil(qry)
	assert.NotNil(makeTx)
	assert.NotNil(time)
	assert.NotNil(tel)
	return History{
		qry:    qry,
		makeTx: makeTx,
		time:   time,
		tel:    telemetry.NewScopedAPI("history", tel),
	}
}

// Start records the beginning of a run and returns its id.
func (h History) Start(ctx context.Context) (int64, error) {
	id, err := h.qry.CreateRun(ctx, h.time.Now().Unix())
	if err != nil {
		h.tel.ReportBroken(report_db_query, err, "CreateRun")
		return 0, err
	}
	return id, nil
}

// Finish records the outcome of a run.
func (h History) Finish(ctx context.Context, runID int64, result crawler.Result) error {
	tx, discard, commit, err := h.makeTx(ctx)
	if err != nil {
		h.tel.ReportBroken(report_db_query, fmt.Errorf("make tx: %w", err))
		return err
	}
	defer discard()

	for _, id := range result.NewCourses {
		err = tx.AddNewCourse(ctx, db.CrawlNewCourse{
			RunID:    runID,
			CourseID: string(id),
			Name:     result.Registry.Courses[id].Name,
		})
		if err != nil {
			h.tel.ReportBroken(report_db_query, err, "AddNewCourse", id)
			return err
		}
	}

	pages := make([]string, 0, len(result.Failures))
	for page := range result.Failures {
		pages = append(pages, page)
	}
	slices.Sort(pages)
	for _, page := range pages {
		err = tx.AddFailure(ctx, db.CrawlFailure{
			RunID:   runID,
			Page:    page,
			Message: result.Failures[page].Error(),
		})
		if err != nil {
			h.tel.ReportBroken(report_db_query, err, "AddFailure", page)
			return err
		}
	}

	err = tx.FinishRun(ctx, db.FinishRunParams{
		ID:                  runID,
		FinishedAt:          h.time.Now().Unix(),
		CourseCount:         int64(len(result.Registry.Courses)),
		SpecializationCount: int64(result.Specializations),
		FailureCount:        int64(len(result.Failures)),
	})
	if err != nil {
		h.tel.ReportBroken(report_db_query, err, "FinishRun")
		return err
	}

	return commit()
}

// Run is a recorded crawl run.
type Run struct {
	ID              int64
	StartedAt       time.Time
	Duration        time.Duration
	Finished        bool
	Courses         int64
	Specializations int64
	Failures        int64
}

// Recent returns the last `limit` runs, newest first.
func (h History) Recent(ctx context.Context, limit int64) ([]Run, error) {
	rows, err := h.qry.ListRuns(ctx, limit)
	if err != nil {
		h.tel.ReportBroken(report_db_query, err, "ListRuns")
		return nil, err
	}

	runs := make([]Run, len(rows))
	for i, row := range rows {
		started := time.Unix(row.StartedAt, 0).In(h.time.Location())
		run := Run{
			ID:              row.ID,
			StartedAt:       started,
			Finished:        row.FinishedAt.Valid,
			Courses:         row.CourseCount,
			Specializations: row.SpecializationCount,
			Failures:        row.FailureCount,
		}
		if row.FinishedAt.Valid {
			run.Duration = time.Unix(row.FinishedAt.Int64, 0).Sub(time.Unix(row.StartedAt, 0))
		}
		runs[i] = run
	}
	return runs, nil
}

// Details returns the new courses and failures of a run.
func (h History) Details(ctx context.Context, runID int64) ([]db.CrawlNewCourse, []db.CrawlFailure, error) {
	courses, err := h.qry.GetRunNewCourses(ctx, runID)
	if err != nil {
		h.tel.ReportBroken(report_db_query, err, "GetRunNewCourses")
		return nil, nil, err
	}
	failures, err := h.qry.GetRunFailures(ctx, runID)
	if err != nil {
		h.tel.ReportBroken(report_db_query, err, "GetRunFailures")
		return nil, nil, err
	}
	return courses, failures, nil
}
