package composite

import "image"

type Side int

const (
	SideLeft Side = iota
	SideRight
)

// AppendBySide draws images into bg flush to one edge, each scaled to the
// height of bg and separated by padding pixels. On the right side images keep
// their order but are laid out from the edge inwards. When start is set the
// run begins padding pixels away from the edge. Nil entries are skipped.
// bg is modified in place; images are borrowed.
func AppendBySide(bg *image.NRGBA, images []*image.NRGBA, side Side, padding int, start bool) {
	b := bg.Bounds()
	h := b.Dy()

	if side == SideRight {
		x := b.Max.X
		if start {
			x -= padding
		}
		for i := len(images) - 1; i >= 0; i-- {
			if images[i] == nil {
				continue
			}
			img := ResizeWithHeight(images[i], h)
			x -= img.Bounds().Dx()
			x -= padding
			over(bg, img, image.Pt(x, b.Min.Y))
		}
		return
	}

	x := b.Min.X
	if start {
		x += padding
	}
	for _, src := range images {
		if src == nil {
			continue
		}
		img := ResizeWithHeight(src, h)
		over(bg, img, image.Pt(x, b.Min.Y))
		x += img.Bounds().Dx()
		x += padding
	}
}
