package operations

import (
	"context"
	"fmt"
	"image"

	"photo-watermarker/internal/composite"
	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/fonts"
)

const (
	// The strip is composed at a fixed height and scaled to the photo width.
	stripHeight      = 1000
	stripGap         = 200
	minColumnPadding = 200
	separatorWidth   = 20
	lineSpacing      = 100
)

// Watermarker appends the metadata strip below the photo: a logo, a left
// column of two text lines and a right column of two text lines.
type Watermarker struct {
	fonts        fontSource
	logos        logoSource
	elements     domain.Elements
	paddingLevel int
}

func NewWatermarker(fonts fontSource, logos logoSource, elements domain.Elements, paddingLevel int) *Watermarker {
	return &Watermarker{
		fonts:        fonts,
		logos:        logos,
		elements:     elements,
		paddingLevel: paddingLevel,
	}
}

// StripGeometry returns the strip height as a fraction of the strip width and
// the share of a column's height left blank above and below the text.
func StripGeometry(ratio float64, paddingLevel int) (heightRatio, paddingRatio float64) {
	level := float64(paddingLevel)
	if ratio >= 1 {
		return 0.04 + 0.02*level, 0.48 - 0.04*level
	}
	return 0.09 + 0.02*level, 0.6 - 0.04*level
}

func (w *Watermarker) Process(_ context.Context, c Photo, style *domain.WatermarkStyle) error {
	if style == nil {
		return fmt.Errorf("watermark stage: %w", ErrMissingStyle)
	}

	faces, err := w.fonts.Faces()
	if err != nil {
		return fmt.Errorf("failed to build font faces: %w", err)
	}
	defer faces.Close()

	heightRatio, paddingRatio := StripGeometry(c.Ratio(), w.paddingLevel)
	bg := composite.HexOr(style.Background, composite.White)
	strip := composite.Fill(int(stripHeight/heightRatio), stripHeight, bg)

	left := column(c, faces, w.elements.LeftTop, style.LeftTop, w.elements.LeftBottom, style.LeftBottom)
	right := column(c, faces, w.elements.RightTop, style.RightTop, w.elements.RightBottom, style.RightBottom)
	left, right = padColumns(left, right, paddingRatio)

	var logo *image.NRGBA
	if style.LogoEnabled {
		if l := w.logos.Get(c.Make()); l != nil {
			logo = composite.Padding(l, int(paddingRatio*float64(l.Bounds().Dy())), "tb", composite.Transparent)
		}
	}

	switch {
	case logo == nil:
		composite.AppendBySide(strip, []*image.NRGBA{left}, composite.SideLeft, stripGap, true)
		composite.AppendBySide(strip, []*image.NRGBA{right}, composite.SideRight, stripGap, false)
	case style.LogoPosition == domain.LogoRight:
		separator := composite.Fill(separatorWidth, stripHeight, composite.HexOr(style.LineColor, composite.White))
		separator = composite.Padding(separator, int(paddingRatio*stripHeight*0.8), "tb", composite.Transparent)
		composite.AppendBySide(strip, []*image.NRGBA{left}, composite.SideLeft, stripGap, true)
		composite.AppendBySide(strip, []*image.NRGBA{logo, separator, right}, composite.SideRight, stripGap, false)
	default:
		spacer := composite.Fill(separatorWidth, stripHeight, composite.Transparent)
		composite.AppendBySide(strip, []*image.NRGBA{spacer, logo, left}, composite.SideLeft, stripGap, false)
		composite.AppendBySide(strip, []*image.NRGBA{right}, composite.SideRight, stripGap, false)
	}

	scaled := composite.ResizeWithWidth(strip, c.Width())
	result := composite.Expand(c.Working(), composite.Insets{Bottom: scaled.Bounds().Dy()}, bg)
	composite.DrawOver(result, scaled, image.Pt(0, c.Height()))

	c.Update(composite.Flatten(result, bg))
	return nil
}

// column renders up to two lines, skipping None slots. It is nil when both
// slots are empty.
func column(c Photo, faces *fonts.Faces, top domain.Element, topStyle domain.SlotStyle, bottom domain.Element, bottomStyle domain.SlotStyle) *image.NRGBA {
	var parts []*image.NRGBA
	if !top.Skipped() {
		parts = append(parts, text(c, faces, top, topStyle))
	}
	if !bottom.Skipped() {
		if len(parts) > 0 {
			parts = append(parts, composite.Fill(separatorWidth/2, lineSpacing, composite.Transparent))
		}
		parts = append(parts, text(c, faces, bottom, bottomStyle))
	}
	return composite.Concatenate(parts, composite.Vertical, composite.AlignStart)
}

func text(c Photo, faces *fonts.Faces, el domain.Element, style domain.SlotStyle) *image.NRGBA {
	return composite.TextToImage(c.AttributeString(el), faces.Pick(style.Bold), composite.HexOr(style.Color, composite.Black))
}

// padColumns pads both columns top and bottom so that they end up the same
// height, which keeps their text at the same scale once each is fitted to
// the strip height.
func padColumns(left, right *image.NRGBA, paddingRatio float64) (*image.NRGBA, *image.NRGBA) {
	lh, rh := height(left), height(right)
	pad := max(minColumnPadding, int(float64(max(lh, rh))*paddingRatio))

	leftPad, rightPad := pad, pad
	if lh > rh {
		rightPad += (lh - rh) / 2
	} else if rh > lh {
		leftPad += (rh - lh) / 2
	}

	return composite.Padding(left, leftPad, "tb", composite.Transparent),
		composite.Padding(right, rightPad, "tb", composite.Transparent)
}

func height(img *image.NRGBA) int {
	if img == nil {
		return 0
	}
	return img.Bounds().Dy()
}
