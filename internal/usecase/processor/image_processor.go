package processor

import (
	"context"
	"fmt"
	"time"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/fonts"
	"photo-watermarker/internal/logo"
	"photo-watermarker/internal/usecase/processor/operations"

	"github.com/wb-go/wbf/zlog"
)

// ImageProcessor holds one instance of every stage operation. It keeps no
// per-photo state and is shared by all workers.
type ImageProcessor struct {
	shadower    *operations.Shadower
	squarer     *operations.Squarer
	watermarker *operations.Watermarker
	marginer    *operations.Marginer
	captioner   *operations.Captioner
	ratioPadder *operations.RatioPadder
	blurrer     *operations.BackgroundBlurrer
	logger      *zlog.Zerolog
}

func NewImageProcessor(cfg *config.Config, fontSet *fonts.Set, logos *logo.Cache, logger *zlog.Zerolog) *ImageProcessor {
	return &ImageProcessor{
		shadower:    operations.NewShadower(),
		squarer:     operations.NewSquarer(),
		watermarker: operations.NewWatermarker(fontSet, logos, cfg.Layout.Elements, cfg.FontPaddingLevel()),
		marginer:    operations.NewMarginer(cfg.Base.WhiteMargin.Width),
		captioner:   operations.NewCaptioner(fontSet),
		ratioPadder: operations.NewRatioPadder(),
		blurrer:     operations.NewBackgroundBlurrer(cfg.Base.WhiteMargin.Width),
		logger:      logger,
	}
}

// Apply runs a single stage against c.
func (p *ImageProcessor) Apply(ctx context.Context, stage domain.Stage, c Photo) error {
	start := time.Now()

	if err := p.applyOperation(ctx, stage, c); err != nil {
		p.logger.Error().
			Err(err).
			Str("stage", string(stage.Kind)).
			Msg("Stage failed")
		return fmt.Errorf("stage %s failed: %w", stage.Kind, err)
	}

	p.logger.Debug().
		Str("stage", string(stage.Kind)).
		Int("width", c.Width()).
		Int("height", c.Height()).
		Dur("took", time.Since(start)).
		Msg("Stage completed")

	return nil
}

func (p *ImageProcessor) applyOperation(ctx context.Context, stage domain.Stage, c Photo) error {
	switch stage.Kind {
	case domain.StageShadow:
		return p.shadower.Process(ctx, c)
	case domain.StageSquare:
		return p.squarer.Process(ctx, c)
	case domain.StageWatermark:
		return p.watermarker.Process(ctx, c, stage.Style)
	case domain.StageMargin:
		return p.marginer.Process(ctx, c, stage.Fill)
	case domain.StageSimple:
		return p.captioner.Process(ctx, c)
	case domain.StagePaddingToOriginalRatio:
		return p.ratioPadder.Process(ctx, c)
	case domain.StageBackgroundBlur:
		return p.blurrer.Process(ctx, c)
	case domain.StageBackgroundBlurWhiteBorder:
		return p.blurrer.ProcessWithWhiteBorder(ctx, c)
	case domain.StagePureWhiteMargin:
		return p.marginer.ProcessAll(ctx, c, stage.Fill)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownStage, stage.Kind)
	}
}
