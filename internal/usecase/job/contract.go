package job

import (
	"context"
	"io"

	"photo-watermarker/internal/domain"

	"github.com/wb-go/wbf/retry"
)

type jobRepository interface {
	Save(ctx context.Context, j *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, resultKey, errMsg string) error
}

type fileRepository interface {
	PutObject(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, key string) error
}

type jobProducer interface {
	Send(ctx context.Context, strategy retry.Strategy, key, value []byte) error
}
