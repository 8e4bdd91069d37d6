package processor

import (
	"context"

	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/usecase/processor/operations"
)

// Photo is the container the chain mutates.
type Photo = operations.Photo

type stageApplier interface {
	Apply(ctx context.Context, stage domain.Stage, c Photo) error
}
