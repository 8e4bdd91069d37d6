package composite

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Font is a face plus the face used for runes the first one cannot draw.
type Font struct {
	Face     font.Face
	Fallback font.Face
	// Has reports whether Face has a glyph for r. Nil means it has them all.
	Has func(r rune) bool
}

func (f Font) faceFor(r rune) font.Face {
	if f.Fallback == nil || f.Has == nil || f.Has(r) {
		return f.Face
	}
	return f.Fallback
}

func (f Font) metrics() (ascent, descent fixed.Int26_6) {
	m := f.Face.Metrics()
	ascent, descent = m.Ascent, m.Descent
	if f.Fallback != nil {
		fm := f.Fallback.Metrics()
		ascent = max(ascent, fm.Ascent)
		descent = max(descent, fm.Descent)
	}
	return ascent, descent
}

// inkBounds returns the union of the glyph ink boxes of text laid out from
// the origin, together with its total advance.
func inkBounds(text string, f Font) (fixed.Rectangle26_6, fixed.Int26_6) {
	var (
		bounds fixed.Rectangle26_6
		x      fixed.Int26_6
	)
	for _, r := range text {
		face := f.faceFor(r)
		gb, adv, ok := face.GlyphBounds(r)
		if ok {
			gb = gb.Add(fixed.Point26_6{X: x})
			bounds = bounds.Union(gb)
		}
		x += adv
	}
	return bounds, x
}

// TextToImage renders text onto a transparent bitmap that covers both its
// advance and every glyph's ink box, and is at least as tall as the font's
// ascent plus descent. An empty string renders as three spaces.
func TextToImage(text string, f Font, c color.Color) *image.NRGBA {
	if text == "" {
		text = "   "
	}

	ascent, descent := f.metrics()
	ink, advance := inkBounds(text, f)

	left := min(0, ink.Min.X).Floor()
	right := max(advance, ink.Max.X).Ceil()
	top := min(-ascent, ink.Min.Y).Floor()
	bottom := max(descent, ink.Max.Y).Ceil()

	w := max(right-left, 1)
	h := max(bottom-top, 1)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst: img,
		Src: image.NewUniform(c),
		Dot: fixed.P(-left, -top),
	}
	for _, r := range text {
		d.Face = f.faceFor(r)
		d.DrawString(string(r))
	}

	return img
}
