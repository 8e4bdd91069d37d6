package operations

import (
	"context"

	"photo-watermarker/internal/composite"
)

type Squarer struct{}

func NewSquarer() *Squarer {
	return &Squarer{}
}

func (s *Squarer) Process(_ context.Context, c Photo) error {
	c.Update(composite.Square(c.Working()))
	return nil
}
