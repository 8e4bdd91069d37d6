package operations

import (
	"image"

	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/fonts"
)

// Photo is the container a stage reads from and writes back to.
type Photo interface {
	Working() *image.NRGBA
	Source() *image.NRGBA
	Update(img *image.NRGBA)
	Width() int
	Height() int
	Ratio() float64
	OriginalRatio() float64
	Make() string
	Model() string
	AttributeString(el domain.Element) string
	ParamString() string
}

type fontSource interface {
	Faces() (*fonts.Faces, error)
}

type logoSource interface {
	Get(cameraMake string) *image.NRGBA
}
