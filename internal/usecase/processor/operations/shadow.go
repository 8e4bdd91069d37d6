package operations

import (
	"context"
	"image"

	"photo-watermarker/internal/composite"
)

const shadowColor = "#6B696A"

type Shadower struct{}

func NewShadower() *Shadower {
	return &Shadower{}
}

// Process draws the photo over a blurred gray plate that is 2r larger on
// every side, where r = max(w,h)/512 and at least 1.
func (s *Shadower) Process(_ context.Context, c Photo) error {
	img := c.Working()
	w, h := c.Width(), c.Height()
	radius := max(max(w, h)/512, 1)

	plate := composite.Fill(w, h, composite.HexOr(shadowColor, composite.White))
	plate = composite.Padding(plate, radius*2, "tblr", composite.White)
	plate = composite.Blur(plate, float64(radius))

	composite.DrawOver(plate, img, image.Pt(radius, radius))
	c.Update(plate)
	return nil
}
