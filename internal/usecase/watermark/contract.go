package watermark

import (
	"context"

	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/usecase/processor"
)

type stageApplier interface {
	Apply(ctx context.Context, stage domain.Stage, c processor.Photo) error
}

type fileProcessor interface {
	ProcessFile(ctx context.Context, src, dst string) error
}
