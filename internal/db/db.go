package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}

type CrawlRun struct {
	ID                  int64
	StartedAt           int64
	FinishedAt          sql.NullInt64
	CourseCount         int64
	SpecializationCount int64
	FailureCount        int64
}

type CrawlNewCourse struct {
	RunID    int64
	CourseID string
	Name     string
}

type CrawlFailure struct {
	RunID   int64
	Page    string
	Message string
}
