package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"photo-watermarker/internal/domain"
	repoJob "photo-watermarker/internal/repository/job"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type JobUsecase struct {
	repo     jobRepository
	fileRepo fileRepository
	producer jobProducer
	logger   *zlog.Zerolog
	retries  retry.Strategy
}

func NewJobUsecase(repo jobRepository, fileRepo fileRepository, producer jobProducer, logger *zlog.Zerolog, retries retry.Strategy) *JobUsecase {
	return &JobUsecase{
		repo:     repo,
		fileRepo: fileRepo,
		producer: producer,
		logger:   logger,
		retries:  retries,
	}
}

// Submit stores the upload, records a queued job and publishes it on the
// jobs topic. An empty layout means the worker's configured one.
func (u *JobUsecase) Submit(ctx context.Context, file io.Reader, filename, contentType string, size int64, layout domain.Layout) (*domain.Job, error) {
	if layout != "" && !layout.Known() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLayout, layout)
	}

	id := uuid.New().String()
	name := path.Base(filename)
	now := time.Now()

	j := &domain.Job{
		ID:        id,
		Filename:  name,
		SourceKey: domain.PathPrefixSource + id + "/" + name,
		Layout:    layout,
		Status:    domain.JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.fileRepo.PutObject(ctx, j.SourceKey, file, size, contentType); err != nil {
		u.logger.Error().Err(err).Str("filename", name).Msg("Failed to store source photo")
		return nil, fmt.Errorf("%w: %w", ErrStorageError, err)
	}

	if err := u.repo.Save(ctx, j); err != nil {
		if delErr := u.fileRepo.DeleteObject(ctx, j.SourceKey); delErr != nil {
			u.logger.Error().Err(delErr).Str("key", j.SourceKey).Msg("Failed to remove orphaned source photo")
		}
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	payload, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := u.producer.Send(ctx, u.retries, []byte(id), payload); err != nil {
		u.logger.Error().Err(err).Str("job_id", id).Msg("Failed to publish job")
		u.markFailed(ctx, id, "failed to enqueue job")
		return nil, fmt.Errorf("%w: %w", ErrMessageQueueError, err)
	}

	u.logger.Info().
		Str("job_id", id).
		Str("filename", name).
		Str("layout", string(layout)).
		Msg("Job queued")

	return j, nil
}

func (u *JobUsecase) Get(ctx context.Context, id string) (*domain.Job, error) {
	j, err := u.repo.GetByID(ctx, id)
	if errors.Is(err, repoJob.ErrJobNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return j, nil
}

// Result opens the watermarked photo of a completed job. The caller closes
// the reader.
func (u *JobUsecase) Result(ctx context.Context, id string) (*domain.Job, io.ReadCloser, error) {
	j, err := u.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	switch j.Status {
	case domain.JobCompleted:
	case domain.JobFailed:
		return j, nil, fmt.Errorf("%w: %s", ErrJobFailed, j.Error)
	default:
		return j, nil, ErrJobNotReady
	}

	reader, err := u.fileRepo.GetObject(ctx, j.ResultKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageError, err)
	}

	return j, reader, nil
}

func (u *JobUsecase) markFailed(ctx context.Context, id, reason string) {
	if err := u.repo.UpdateStatus(ctx, id, domain.JobFailed, "", reason); err != nil {
		u.logger.Error().Err(err).Str("job_id", id).Msg("Failed to update status")
	}
}
