package processor

import (
	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"
)

const (
	separatorGray = "#CBCBC9"
	standardBg    = "#ffffff"
	standardTop   = "#212121"
	standardBtm   = "#424242"
	darkBg        = "#212121"
	darkTop       = "#D32F2F"
	darkBtm       = "#d4d1cc"
)

type stageFactory func(cfg *config.Config) domain.Stage

var layoutStages = map[domain.Layout]stageFactory{
	domain.LayoutSquare:                    fixed(domain.StageSquare),
	domain.LayoutWatermarkLeftLogo:         preset(standardStyle(domain.LogoLeft)),
	domain.LayoutWatermarkRightLogo:        preset(standardStyle(domain.LogoRight)),
	domain.LayoutDarkWatermarkLeftLogo:     preset(darkStyle(domain.LogoLeft)),
	domain.LayoutDarkWatermarkRightLogo:    preset(darkStyle(domain.LogoRight)),
	domain.LayoutCustom:                    customWatermark,
	domain.LayoutSimple:                    fixed(domain.StageSimple),
	domain.LayoutBackgroundBlur:            fixed(domain.StageBackgroundBlur),
	domain.LayoutBackgroundBlurWhiteBorder: fixed(domain.StageBackgroundBlurWhiteBorder),
	domain.LayoutPureWhiteMargin:           pureWhiteMargin,
}

// LayoutStage returns the stage that draws layout. ok is false for layouts
// missing from the registry.
func LayoutStage(cfg *config.Config, layout domain.Layout) (stage domain.Stage, ok bool) {
	factory, ok := layoutStages[layout]
	if !ok {
		return domain.Stage{}, false
	}
	return factory(cfg), true
}

func fixed(kind domain.StageKind) stageFactory {
	return func(*config.Config) domain.Stage {
		return domain.Stage{Kind: kind}
	}
}

func preset(style domain.WatermarkStyle) stageFactory {
	return func(*config.Config) domain.Stage {
		s := style
		return domain.Stage{Kind: domain.StageWatermark, Style: &s}
	}
}

func standardStyle(pos domain.LogoPosition) domain.WatermarkStyle {
	return domain.WatermarkStyle{
		LogoEnabled:  true,
		LogoPosition: pos,
		Background:   standardBg,
		LineColor:    separatorGray,
		LeftTop:      domain.SlotStyle{Color: standardTop, Bold: true},
		LeftBottom:   domain.SlotStyle{Color: standardBtm},
		RightTop:     domain.SlotStyle{Color: standardTop, Bold: true},
		RightBottom:  domain.SlotStyle{Color: standardBtm},
	}
}

func darkStyle(pos domain.LogoPosition) domain.WatermarkStyle {
	return domain.WatermarkStyle{
		LogoEnabled:  true,
		LogoPosition: pos,
		Background:   darkBg,
		LineColor:    separatorGray,
		LeftTop:      domain.SlotStyle{Color: darkTop, Bold: true},
		LeftBottom:   domain.SlotStyle{Color: darkBtm},
		RightTop:     domain.SlotStyle{Color: darkTop, Bold: true},
		RightBottom:  domain.SlotStyle{Color: darkBtm},
	}
}

// customWatermark takes logo placement and colors from the config. Each slot
// uses the shared foreground color unless the element sets its own.
func customWatermark(cfg *config.Config) domain.Stage {
	slot := func(el domain.Element) domain.SlotStyle {
		c := el.Color
		if c == "" {
			c = cfg.Layout.ForegroundColor
		}
		return domain.SlotStyle{Color: c, Bold: el.Bold}
	}

	els := cfg.Layout.Elements
	return domain.Stage{
		Kind: domain.StageWatermark,
		Style: &domain.WatermarkStyle{
			LogoEnabled:  cfg.Logo.Enable,
			LogoPosition: cfg.Logo.Position,
			Background:   cfg.Layout.BackgroundColor,
			LineColor:    separatorGray,
			LeftTop:      slot(els.LeftTop),
			LeftBottom:   slot(els.LeftBottom),
			RightTop:     slot(els.RightTop),
			RightBottom:  slot(els.RightBottom),
		},
	}
}

func pureWhiteMargin(cfg *config.Config) domain.Stage {
	return domain.Stage{Kind: domain.StagePureWhiteMargin, Fill: cfg.Layout.BackgroundColor}
}
