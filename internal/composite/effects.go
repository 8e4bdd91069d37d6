package composite

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Fill returns a w×h canvas of a single color.
func Fill(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(max(w, 1), max(h, 1), c)
}

// Over returns a copy of bg with img alpha-composited at pt.
func Over(bg, img image.Image, pt image.Point) *image.NRGBA {
	dst := imaging.Clone(bg)
	over(dst, img, pt)
	return dst
}

// Blend mixes c into img with the given weight (0 keeps img, 1 is solid c).
func Blend(img image.Image, c color.Color, weight float64) *image.NRGBA {
	b := img.Bounds()
	return imaging.Overlay(img, imaging.New(b.Dx(), b.Dy(), c), image.Pt(0, 0), weight)
}

// Flatten composites img over an opaque c, dropping the alpha channel.
func Flatten(img image.Image, c color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx(), b.Dy(), c)
	over(canvas, img, image.Pt(0, 0))
	return canvas
}

// Blur applies a gaussian blur. Images longer than 1024px are blurred at a
// reduced size and scaled back.
func Blur(img image.Image, sigma float64) *image.NRGBA {
	const workingSize = 1024

	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if longest <= workingSize {
		return imaging.Blur(img, sigma)
	}

	scale := float64(longest) / workingSize
	small := imaging.Resize(img, max(int(float64(b.Dx())/scale), 1), max(int(float64(b.Dy())/scale), 1), imaging.Linear)
	blurred := imaging.Blur(small, sigma/scale)
	return imaging.Resize(blurred, b.Dx(), b.Dy(), imaging.Linear)
}

// DrawOver composites img onto dst at pt in place.
func DrawOver(dst *image.NRGBA, img image.Image, pt image.Point) {
	over(dst, img, pt)
}

// Resize scales img to exactly w×h.
func Resize(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, max(w, 1), max(h, 1), imaging.Lanczos)
}
