package db

import (
	"context"
)

const createRun = `-- name: CreateRun :one
insert into crawl_run(started_at) values (?)
returning id
`

func (q *Queries) CreateRun(ctx context.Context, startedAt int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, createRun, startedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const finishRun = `-- name: FinishRun :exec
update crawl_run
set finished_at = ?, course_count = ?, specialization_count = ?, failure_count = ?
where id = ?
`

type FinishRunParams struct {
	FinishedAt          int64
	CourseCount         int64
	SpecializationCount int64
	FailureCount        int64
	ID                  int64
}

func (q *Queries) FinishRun(ctx context.Context, arg FinishRunParams) error {
	_, err := q.db.ExecContext(ctx, finishRun,
		arg.FinishedAt,
		arg.CourseCount,
		arg.SpecializationCount,
		arg.FailureCount,
		arg.ID,
	)
	return err
}

const addNewCourse = `-- name: AddNewCourse :exec
insert into crawl_new_course(run_id, course_id, name) values (?, ?, ?)
on conflict do nothing
`

func (q *Queries) AddNewCourse(ctx context.Context, arg CrawlNewCourse) error {
	_, err := q.db.ExecContext(ctx, addNewCourse, arg.RunID, arg.CourseID, arg.Name)
	return err
}

const addFailure = `-- name: AddFailure :exec
insert into crawl_failure(run_id, page, message) values (?, ?, ?)
`

func (q *Queries) AddFailure(ctx context.Context, arg CrawlFailure) error {
	_, err := q.db.ExecContext(ctx, addFailure, arg.RunID, arg.Page, arg.Message)
	return err
}

const listRuns = `-- name: ListRuns :many
select id, started_at, finished_at, course_count, specialization_count, failure_count
from crawl_run
order by started_at desc, id desc
limit ?
`

func (q *Queries) ListRuns(ctx context.Context, limit int64) ([]CrawlRun, error) {
	rows, err := q.db.QueryContext(ctx, listRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CrawlRun
	for rows.Next() {
		var i CrawlRun
		if err := rows.Scan(
			&i.ID,
			&i.StartedAt,
			&i.FinishedAt,
			&i.CourseCount,
			&i.SpecializationCount,
			&i.FailureCount,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRunNewCourses = `-- name: GetRunNewCourses :many
select run_id, course_id, name from crawl_new_course
where run_id = ?
order by course_id
`

func (q *Queries) GetRunNewCourses(ctx context.Context, runID int64) ([]CrawlNewCourse, error) {
	rows, err := q.db.QueryContext(ctx, getRunNewCourses, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CrawlNewCourse
	for rows.Next() {
		var i CrawlNewCourse
		if err := rows.Scan(&i.RunID, &i.CourseID, &i.Name); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRunFailures = `-- name: GetRunFailures :many
select run_id, page, message from crawl_failure
where run_id = ?
order by page
`

func (q *Queries) GetRunFailures(ctx context.Context, runID int64) ([]CrawlFailure, error) {
	rows, err := q.db.QueryContext(ctx, getRunFailures, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CrawlFailure
	for rows.Next() {
		var i CrawlFailure
		if err := rows.Scan(&i.RunID, &i.Page, &i.Message); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
