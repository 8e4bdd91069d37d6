package composite

import (
	"image"

	"github.com/disintegration/imaging"
)

type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Concatenate stacks images along axis on a transparent canvas sized to their
// union. Align positions each image across the other axis. Nil entries are
// skipped; with nothing left the result is nil. Inputs are borrowed.
func Concatenate(images []*image.NRGBA, axis Axis, align Align) *image.NRGBA {
	var present []*image.NRGBA
	var sum, span int
	for _, img := range images {
		if img == nil {
			continue
		}
		present = append(present, img)
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if axis == Horizontal {
			sum += w
			span = max(span, h)
		} else {
			sum += h
			span = max(span, w)
		}
	}
	if len(present) == 0 {
		return nil
	}

	var canvas *image.NRGBA
	if axis == Horizontal {
		canvas = imaging.New(sum, span, Transparent)
	} else {
		canvas = imaging.New(span, sum, Transparent)
	}

	offset := 0
	for _, img := range present {
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		if axis == Horizontal {
			paste(canvas, img, image.Pt(offset, alignOffset(span, h, align)))
			offset += w
		} else {
			paste(canvas, img, image.Pt(alignOffset(span, w, align), offset))
			offset += h
		}
	}

	return canvas
}

func alignOffset(span, size int, align Align) int {
	switch align {
	case AlignCenter:
		return (span - size) / 2
	case AlignEnd:
		return span - size
	default:
		return 0
	}
}
