package processor

import (
	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"
)

// BuildChain assembles the stages for cfg:
//
//	shadow (when enabled, never for square)
//	the layout stage (shadow for unknown layouts)
//	margin (when enabled, only for layouts with a watermark strip)
//	padding to the original ratio (when enabled, never for square)
func BuildChain(cfg *config.Config, proc stageApplier) *Chain {
	return BuildChainFor(cfg, cfg.Layout.Type, proc)
}

// BuildChainFor is BuildChain with the layout overridden.
func BuildChainFor(cfg *config.Config, layout domain.Layout, proc stageApplier) *Chain {
	var stages []domain.Stage

	if cfg.Base.Shadow.Enable && layout != domain.LayoutSquare {
		stages = append(stages, domain.Stage{Kind: domain.StageShadow})
	}

	layoutStage, ok := LayoutStage(cfg, layout)
	if !ok {
		layoutStage = domain.Stage{Kind: domain.StageShadow}
	}
	stages = append(stages, layoutStage)

	if cfg.Base.WhiteMargin.Enable && layout.HasWatermarkStrip() {
		fill := cfg.Layout.BackgroundColor
		if layoutStage.Style != nil {
			fill = layoutStage.Style.Background
		}
		stages = append(stages, domain.Stage{Kind: domain.StageMargin, Fill: fill})
	}

	if cfg.Base.PaddingWithOriginalRatio.Enable && layout != domain.LayoutSquare {
		stages = append(stages, domain.Stage{Kind: domain.StagePaddingToOriginalRatio})
	}

	return &Chain{
		layout: layout,
		stages: stages,
		proc:   proc,
	}
}
