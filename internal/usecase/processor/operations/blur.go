package operations

import (
	"context"
	"image"

	"photo-watermarker/internal/composite"
)

const (
	backgroundPadding = 0.18
	backgroundBlur    = 35
	backgroundWhiten  = 0.1
)

// BackgroundBlurrer frames the photo with an enlarged, blurred and slightly
// whitened copy of itself.
type BackgroundBlurrer struct {
	borderWidth int
}

func NewBackgroundBlurrer(borderWidth int) *BackgroundBlurrer {
	return &BackgroundBlurrer{borderWidth: borderWidth}
}

func (b *BackgroundBlurrer) Process(_ context.Context, c Photo) error {
	c.Update(framed(c.Working(), c.Working()))
	return nil
}

// ProcessWithWhiteBorder adds a white border of borderWidth·min(w,h)/256
// first; the backdrop is blurred from the untouched source.
func (b *BackgroundBlurrer) ProcessWithWhiteBorder(_ context.Context, c Photo) error {
	pad := b.borderWidth * min(c.Width(), c.Height()) / 256
	bordered := composite.Padding(c.Working(), pad, "tblr", composite.White)

	c.Update(framed(bordered, c.Source()))
	return nil
}

func framed(fg, backdrop image.Image) *image.NRGBA {
	fb := fg.Bounds()
	w, h := fb.Dx(), fb.Dy()

	bg := composite.Blur(backdrop, backgroundBlur)
	bg = composite.Blend(bg, composite.White, backgroundWhiten)
	bg = composite.Resize(bg, int(float64(w)*(1+backgroundPadding)), int(float64(h)*(1+backgroundPadding)))

	composite.DrawOver(bg, fg, image.Pt(int(float64(w)*backgroundPadding/2), int(float64(h)*backgroundPadding/2)))
	return composite.Flatten(bg, composite.White)
}
