package watermark

import (
	"context"
	"io"

	"photo-watermarker/internal/domain"
)

type watermarkService interface {
	ProcessFileWithLayout(ctx context.Context, src, dst string, layout domain.Layout) error
}

type jobUsecase interface {
	Submit(ctx context.Context, file io.Reader, filename, contentType string, size int64, layout domain.Layout) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	Result(ctx context.Context, id string) (*domain.Job, io.ReadCloser, error)
}
