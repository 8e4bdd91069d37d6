package processor

import (
	"context"
	"slices"

	"photo-watermarker/internal/domain"
)

// Chain is an ordered list of stages bound to one processor. It is read-only
// once built and may be shared across goroutines.
type Chain struct {
	layout domain.Layout
	stages []domain.Stage
	proc   stageApplier
}

// Process runs every stage in order against c and stops at the first error.
func (ch *Chain) Process(ctx context.Context, c Photo) error {
	for _, stage := range ch.stages {
		if err := ch.proc.Apply(ctx, stage, c); err != nil {
			return err
		}
	}
	return nil
}

func (ch *Chain) Stages() []domain.Stage {
	return slices.Clone(ch.stages)
}

func (ch *Chain) Layout() domain.Layout {
	return ch.layout
}
