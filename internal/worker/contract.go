package worker

import (
	"context"
	"io"

	"photo-watermarker/internal/domain"
)

type jobRepository interface {
	UpdateStatus(ctx context.Context, id string, status domain.JobStatus, resultKey, errMsg string) error
}

type fileRepository interface {
	PutObject(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
}

type watermarker interface {
	ProcessFileWithLayout(ctx context.Context, src, dst string, layout domain.Layout) error
}
