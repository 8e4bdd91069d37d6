package operations

import (
	"context"

	"photo-watermarker/internal/composite"
)

// Marginer adds flat borders of width percent of the shorter side.
type Marginer struct {
	width int
}

func NewMarginer(width int) *Marginer {
	return &Marginer{width: width}
}

func (m *Marginer) size(c Photo) int {
	return m.width * min(c.Width(), c.Height()) / 100
}

// Process borders the top, left and right; the watermark strip already
// closes the bottom.
func (m *Marginer) Process(_ context.Context, c Photo, fill string) error {
	c.Update(composite.Padding(c.Working(), m.size(c), "tlr", composite.HexOr(fill, composite.White)))
	return nil
}

// ProcessAll borders all four sides.
func (m *Marginer) ProcessAll(_ context.Context, c Photo, fill string) error {
	c.Update(composite.Padding(c.Working(), m.size(c), "tlrb", composite.HexOr(fill, composite.White)))
	return nil
}
