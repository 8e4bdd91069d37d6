package composite

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Insets are per-side pixel counts.
type Insets struct {
	Top, Bottom, Left, Right int
}

// Padding grows img by size pixels on each side named in sides, a subset of
// "tblr", filling new area with fill. A nil image is passed through.
func Padding(img *image.NRGBA, size int, sides string, fill color.Color) *image.NRGBA {
	if img == nil {
		return nil
	}

	var in Insets
	if strings.Contains(sides, "t") {
		in.Top = size
	}
	if strings.Contains(sides, "b") {
		in.Bottom = size
	}
	if strings.Contains(sides, "l") {
		in.Left = size
	}
	if strings.Contains(sides, "r") {
		in.Right = size
	}

	return Expand(img, in, fill)
}

// Expand pastes img onto a fill-colored canvas grown by in. Negative insets
// count as zero.
func Expand(img image.Image, in Insets, fill color.Color) *image.NRGBA {
	b := img.Bounds()
	top, bottom := max(in.Top, 0), max(in.Bottom, 0)
	left, right := max(in.Left, 0), max(in.Right, 0)

	canvas := imaging.New(b.Dx()+left+right, b.Dy()+top+bottom, fill)
	paste(canvas, img, image.Pt(left, top))
	return canvas
}

// Square pads the shorter side of img with white so that it becomes 1:1.
func Square(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return imaging.Clone(img)
	}

	delta := w - h
	if delta < 0 {
		delta = -delta
		return Expand(img, Insets{Left: delta / 2, Right: delta - delta/2}, White)
	}
	return Expand(img, Insets{Top: delta / 2, Bottom: delta - delta/2}, White)
}

// paste copies img into dst at pt, replacing the pixels underneath.
func paste(dst draw.Image, img image.Image, pt image.Point) {
	b := img.Bounds()
	draw.Draw(dst, image.Rectangle{Min: pt, Max: pt.Add(b.Size())}, img, b.Min, draw.Src)
}

// over composites img onto dst at pt.
func over(dst draw.Image, img image.Image, pt image.Point) {
	b := img.Bounds()
	draw.Draw(dst, image.Rectangle{Min: pt, Max: pt.Add(b.Size())}, img, b.Min, draw.Over)
}
