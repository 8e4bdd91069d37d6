package operations

import (
	"context"
	"fmt"
	"image"
	"strings"

	"photo-watermarker/internal/composite"
)

const (
	simpleShotOnColor = "#212121"
	simpleModelColor  = "#D32F2F"
	simpleMakeColor   = "#212121"
	simpleParamColor  = "#9E9E9E"
)

var modelSeparators = strings.NewReplacer("/", " ", "_", " ")

// Captioner appends a white band with "Shot on <model> <make>" above the
// shooting parameters, centered below the photo.
type Captioner struct {
	fonts fontSource
}

func NewCaptioner(fonts fontSource) *Captioner {
	return &Captioner{fonts: fonts}
}

func (s *Captioner) Process(_ context.Context, c Photo) error {
	faces, err := s.fonts.Faces()
	if err != nil {
		return fmt.Errorf("failed to build font faces: %w", err)
	}
	defer faces.Close()

	bandRatio := 0.1
	if c.Ratio() >= 1 {
		bandRatio = 0.16
	}
	const paddingRatio = 0.5

	cameraMake, _, _ := strings.Cut(c.Make(), " ")
	hGap := composite.Fill(100, 20, composite.Transparent)
	first := composite.Concatenate([]*image.NRGBA{
		composite.TextToImage("Shot on", faces.Regular, composite.HexOr(simpleShotOnColor, composite.Black)),
		hGap,
		composite.TextToImage(modelSeparators.Replace(c.Model()), faces.Bold, composite.HexOr(simpleModelColor, composite.Black)),
		hGap,
		composite.TextToImage(cameraMake, faces.Bold, composite.HexOr(simpleMakeColor, composite.Black)),
	}, composite.Horizontal, composite.AlignEnd)

	second := composite.TextToImage(c.ParamString(), faces.Regular, composite.HexOr(simpleParamColor, composite.Black))
	caption := composite.Concatenate([]*image.NRGBA{
		first,
		composite.Fill(20, 100, composite.Transparent),
		second,
	}, composite.Vertical, composite.AlignCenter)

	w, h := c.Width(), c.Height()
	bandHeight := float64(h) * bandRatio
	caption = composite.ResizeWithHeight(caption, int(bandHeight*paddingRatio))
	if caption.Bounds().Dx() > w {
		caption = composite.ResizeWithWidth(caption, w)
	}

	cw, ch := caption.Bounds().Dx(), caption.Bounds().Dy()
	hPad := (w - cw) / 2
	vPad := max(int((bandHeight-float64(ch))/2), 0)
	band := composite.Expand(caption, composite.Insets{Top: vPad, Bottom: vPad, Left: hPad, Right: w - cw - hPad}, composite.Transparent)
	band = composite.Flatten(band, composite.White)

	result := composite.Concatenate([]*image.NRGBA{c.Working(), band}, composite.Vertical, composite.AlignEnd)
	c.Update(composite.Flatten(result, composite.White))
	return nil
}
