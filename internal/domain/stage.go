package domain

type StageKind string

const (
	StageShadow                    StageKind = "shadow"
	StageSquare                    StageKind = "square"
	StageWatermark                 StageKind = "watermark"
	StageMargin                    StageKind = "margin"
	StageSimple                    StageKind = "simple"
	StagePaddingToOriginalRatio    StageKind = "padding_to_original_ratio"
	StageBackgroundBlur            StageKind = "background_blur"
	StageBackgroundBlurWhiteBorder StageKind = "background_blur_white_border"
	StagePureWhiteMargin           StageKind = "pure_white_margin"
)

type LogoPosition string

const (
	LogoLeft  LogoPosition = "left"
	LogoRight LogoPosition = "right"
)

type SlotStyle struct {
	Color string
	Bold  bool
}

// WatermarkStyle is the palette and placement used by the watermark strip.
type WatermarkStyle struct {
	LogoEnabled  bool
	LogoPosition LogoPosition
	Background   string
	LineColor    string
	LeftTop      SlotStyle
	LeftBottom   SlotStyle
	RightTop     SlotStyle
	RightBottom  SlotStyle
}

// Stage is one step of a processor chain. Style is set only for StageWatermark,
// Fill only for the margin stages.
type Stage struct {
	Kind  StageKind
	Style *WatermarkStyle
	Fill  string
}
