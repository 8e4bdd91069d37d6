package composite

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ResizeWithHeight scales img to height h keeping its aspect ratio.
// The input is borrowed.
func ResizeWithHeight(img image.Image, h int) *image.NRGBA {
	b := img.Bounds()
	h = max(h, 1)
	w := max(int(math.Round(float64(b.Dx())*float64(h)/float64(b.Dy()))), 1)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// ResizeWithWidth scales img to width w keeping its aspect ratio.
// The input is borrowed.
func ResizeWithWidth(img image.Image, w int) *image.NRGBA {
	b := img.Bounds()
	w = max(w, 1)
	h := max(int(math.Round(float64(b.Dy())*float64(w)/float64(b.Dx()))), 1)
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
