package operations

import (
	"context"
	"math"

	"photo-watermarker/internal/composite"
)

type RatioPadder struct{}

func NewRatioPadder() *RatioPadder {
	return &RatioPadder{}
}

// Process pads the working bitmap with white, split evenly between opposite
// sides, until its ratio matches the ratio of the source photo.
func (r *RatioPadder) Process(_ context.Context, c Photo) error {
	original := c.OriginalRatio()
	w, h := c.Width(), c.Height()

	var in composite.Insets
	if c.Ratio() < original {
		pad := int(math.Round(float64(h)*original)) - w
		in.Left = pad / 2
		in.Right = pad - in.Left
	} else {
		pad := int(math.Round(float64(w)/original)) - h
		in.Top = pad / 2
		in.Bottom = pad - in.Top
	}

	if in == (composite.Insets{}) {
		return nil
	}

	c.Update(composite.Expand(c.Working(), in, composite.White))
	return nil
}
