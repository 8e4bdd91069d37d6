package domain

type Layout string

const (
	LayoutSquare                    Layout = "square"
	LayoutWatermarkLeftLogo         Layout = "watermark_left_logo"
	LayoutWatermarkRightLogo        Layout = "watermark_right_logo"
	LayoutDarkWatermarkLeftLogo     Layout = "dark_watermark_left_logo"
	LayoutDarkWatermarkRightLogo    Layout = "dark_watermark_right_logo"
	LayoutCustom                    Layout = "custom"
	LayoutSimple                    Layout = "simple"
	LayoutBackgroundBlur            Layout = "background_blur"
	LayoutBackgroundBlurWhiteBorder Layout = "background_blur_white_border"
	LayoutPureWhiteMargin           Layout = "pure_white_margin"
)

// Layouts lists every layout in display order.
var Layouts = []Layout{
	LayoutWatermarkLeftLogo,
	LayoutWatermarkRightLogo,
	LayoutDarkWatermarkLeftLogo,
	LayoutDarkWatermarkRightLogo,
	LayoutCustom,
	LayoutSquare,
	LayoutSimple,
	LayoutBackgroundBlur,
	LayoutBackgroundBlurWhiteBorder,
	LayoutPureWhiteMargin,
}

var layoutNames = map[Layout]string{
	LayoutSquare:                    "1:1 padding",
	LayoutWatermarkLeftLogo:         "Standard",
	LayoutWatermarkRightLogo:        "Standard (logo right)",
	LayoutDarkWatermarkLeftLogo:     "Standard (dark red)",
	LayoutDarkWatermarkRightLogo:    "Standard (dark red, logo right)",
	LayoutCustom:                    "Standard (custom)",
	LayoutSimple:                    "Simple",
	LayoutBackgroundBlur:            "Blurred background",
	LayoutBackgroundBlurWhiteBorder: "Blurred background with white border",
	LayoutPureWhiteMargin:           "White margin",
}

// DisplayName returns a human readable name, or the raw value for unknown layouts.
func (l Layout) DisplayName() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return string(l)
}

func (l Layout) Known() bool {
	_, ok := layoutNames[l]
	return ok
}

// HasWatermarkStrip reports whether the layout appends a metadata strip below the photo.
func (l Layout) HasWatermarkStrip() bool {
	switch l {
	case LayoutWatermarkLeftLogo, LayoutWatermarkRightLogo,
		LayoutDarkWatermarkLeftLogo, LayoutDarkWatermarkRightLogo, LayoutCustom:
		return true
	default:
		return false
	}
}
