package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/repository/job"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// Schema is applied at startup; it is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS watermark_jobs (
		id          UUID PRIMARY KEY,
		filename    TEXT NOT NULL,
		source_key  TEXT NOT NULL,
		result_key  TEXT NOT NULL DEFAULT '',
		layout      TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL,
		error       TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)
`

type JobsRepository struct {
	db      *dbpg.DB
	retries retry.Strategy
}

func NewJobsRepository(db *dbpg.DB, retries retry.Strategy) *JobsRepository {
	return &JobsRepository{
		db:      db,
		retries: retries,
	}
}

func (r *JobsRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecWithRetry(ctx, r.retries, Schema); err != nil {
		return fmt.Errorf("failed to migrate jobs table: %w", err)
	}
	return nil
}

func (r *JobsRepository) Save(ctx context.Context, j *domain.Job) error {
	query := `
		INSERT INTO watermark_jobs (
			id, filename, source_key, result_key, layout,
			status, error, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecWithRetry(ctx, r.retries, query,
		j.ID,
		j.Filename,
		j.SourceKey,
		j.ResultKey,
		j.Layout,
		j.Status,
		j.Error,
		j.CreatedAt,
		j.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}

	return nil
}

func (r *JobsRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT id, filename, source_key, result_key, layout,
		       status, error, created_at, updated_at
		FROM watermark_jobs
		WHERE id = $1
	`

	row, err := r.db.QueryRowWithRetry(ctx, r.retries, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}

	var j domain.Job
	err = row.Scan(
		&j.ID,
		&j.Filename,
		&j.SourceKey,
		&j.ResultKey,
		&j.Layout,
		&j.Status,
		&j.Error,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, job.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	return &j, nil
}

// UpdateStatus records a status transition. resultKey and errMsg overwrite
// the stored values.
func (r *JobsRepository) UpdateStatus(ctx context.Context, id string, status domain.JobStatus, resultKey, errMsg string) error {
	query := `
		UPDATE watermark_jobs
		SET status = $1, result_key = $2, error = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecWithRetry(ctx, r.retries, query, status, resultKey, errMsg, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return job.ErrJobNotFound
	}

	return nil
}
