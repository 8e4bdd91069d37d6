package composite

import (
	"image"
	"image/color"
	"testing"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

func solid(w, h int, c color.Color) *image.NRGBA {
	return Fill(w, h, c)
}

func assertSize(t *testing.T, img image.Image, w, h int) {
	t.Helper()
	if got := img.Bounds().Size(); got != image.Pt(w, h) {
		t.Fatalf("size = %v, want %dx%d", got, w, h)
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		sides        string
		w, h, ox, oy int
	}{
		{"tlrb", 120, 70, 10, 10},
		{"tb", 100, 70, 0, 10},
		{"lr", 120, 50, 10, 0},
		{"t", 100, 60, 0, 10},
		{"r", 110, 50, 0, 0},
		{"", 100, 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.sides, func(t *testing.T) {
			got := Padding(solid(100, 50, red), 10, tt.sides, blue)
			assertSize(t, got, tt.w, tt.h)
			if c := got.NRGBAAt(tt.ox, tt.oy); c != red {
				t.Errorf("pixel at original offset = %v, want red", c)
			}
			if tt.ox > 0 || tt.oy > 0 {
				if c := got.NRGBAAt(0, 0); c != blue {
					t.Errorf("padding pixel = %v, want fill color", c)
				}
			}
		})
	}
}

func TestPaddingNil(t *testing.T) {
	if got := Padding(nil, 10, "tlrb", White); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestPaddingTransparentFill(t *testing.T) {
	got := Padding(solid(4, 4, red), 2, "l", Transparent)
	if c := got.NRGBAAt(0, 0); c.A != 0 {
		t.Errorf("fill alpha = %d, want 0", c.A)
	}
}

func TestConcatenateVerticalStart(t *testing.T) {
	a := solid(30, 20, red)
	b := solid(50, 10, blue)

	got := Concatenate([]*image.NRGBA{a, b}, Vertical, AlignStart)

	assertSize(t, got, 50, 30)
	if c := got.NRGBAAt(0, 0); c != red {
		t.Errorf("first image not at y=0: %v", c)
	}
	if c := got.NRGBAAt(0, 20); c != blue {
		t.Errorf("second image not at y=H1: %v", c)
	}
	if c := got.NRGBAAt(40, 5); c.A != 0 {
		t.Errorf("unused area not transparent: %v", c)
	}
}

func TestConcatenateAlign(t *testing.T) {
	a := solid(10, 40, red)
	b := solid(10, 20, blue)

	tests := []struct {
		align Align
		y     int
	}{
		{AlignStart, 0},
		{AlignCenter, 10},
		{AlignEnd, 20},
	}

	for _, tt := range tests {
		got := Concatenate([]*image.NRGBA{a, b}, Horizontal, tt.align)
		assertSize(t, got, 20, 40)
		if c := got.NRGBAAt(10, tt.y); c != blue {
			t.Errorf("align %d: pixel at y=%d = %v, want blue", tt.align, tt.y, c)
		}
	}
}

func TestConcatenateSkipsNil(t *testing.T) {
	got := Concatenate([]*image.NRGBA{nil, solid(5, 5, red), nil}, Vertical, AlignStart)
	assertSize(t, got, 5, 5)

	if Concatenate([]*image.NRGBA{nil}, Vertical, AlignStart) != nil {
		t.Error("expected nil for no images")
	}
}

func TestResizeRoundTrip(t *testing.T) {
	sizes := []image.Point{{400, 300}, {333, 777}, {101, 67}, {640, 361}}
	scales := []float64{0.5, 0.75, 1.3, 2}

	for _, size := range sizes {
		for _, scale := range scales {
			img := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
			back := ResizeWithWidth(ResizeWithWidth(img, int(float64(size.X)*scale)), size.X)
			b := back.Bounds()
			if b.Dx() != size.X || abs(b.Dy()-size.Y) > 1 {
				t.Errorf("%v scaled by %v: got %v", size, scale, b.Size())
			}
		}
	}
}

func TestResizeWithHeight(t *testing.T) {
	got := ResizeWithHeight(solid(400, 300, red), 150)
	assertSize(t, got, 200, 150)
}

func TestSquare(t *testing.T) {
	tests := []struct {
		w, h, side int
	}{
		{300, 200, 300},
		{200, 301, 301},
		{50, 50, 50},
	}

	for _, tt := range tests {
		got := Square(solid(tt.w, tt.h, red))
		assertSize(t, got, tt.side, tt.side)
	}

	got := Square(solid(300, 200, red))
	if c := got.NRGBAAt(0, 0); c != White {
		t.Errorf("pad = %v, want white", c)
	}
	if c := got.NRGBAAt(0, 50); c != red {
		t.Errorf("image not centered: %v", c)
	}
}

func TestAppendBySide(t *testing.T) {
	bg := solid(100, 10, White)
	AppendBySide(bg, []*image.NRGBA{solid(10, 10, red), nil, solid(20, 10, blue)}, SideLeft, 5, true)

	if c := bg.NRGBAAt(4, 5); c != White {
		t.Errorf("start padding = %v", c)
	}
	if c := bg.NRGBAAt(5, 5); c != red {
		t.Errorf("first image = %v", c)
	}
	if c := bg.NRGBAAt(20, 5); c != blue {
		t.Errorf("second image = %v", c)
	}

	bg = solid(100, 10, White)
	AppendBySide(bg, []*image.NRGBA{solid(10, 10, red), solid(20, 10, blue)}, SideRight, 5, false)

	// blue: [75,95), red: [60,70)
	if c := bg.NRGBAAt(94, 5); c != blue {
		t.Errorf("last image = %v", c)
	}
	if c := bg.NRGBAAt(65, 5); c != red {
		t.Errorf("first image = %v", c)
	}
	if c := bg.NRGBAAt(97, 5); c != White {
		t.Errorf("edge gap = %v", c)
	}
}

func TestAppendBySideScalesToHeight(t *testing.T) {
	bg := solid(100, 20, White)
	AppendBySide(bg, []*image.NRGBA{solid(10, 10, red)}, SideLeft, 0, false)

	if c := bg.NRGBAAt(19, 19); c.R < 200 || c.B > 50 {
		t.Errorf("image not scaled to background height: %v", c)
	}
}

func TestTextToImage(t *testing.T) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 48, Hinting: font.HintingFull})
	defer face.Close()

	black := color.NRGBA{A: 0xff}
	img := TextToImage("X-T4", Font{Face: face}, black)

	b := img.Bounds()
	if b.Dx() < 48 || b.Dy() < 40 {
		t.Fatalf("bitmap too small: %v", b.Size())
	}
	if !hasOpaquePixel(img) {
		t.Error("no glyph pixels drawn")
	}
	if img.NRGBAAt(b.Dx()-1, 0).A != 0 {
		t.Error("background not transparent")
	}

	empty := TextToImage("", Font{Face: face}, black)
	if empty.Bounds().Dx() <= 1 {
		t.Errorf("empty text width = %d", empty.Bounds().Dx())
	}
	if hasOpaquePixel(empty) {
		t.Error("empty text drew glyphs")
	}
}

func TestTextToImageKeepsOverhangingInk(t *testing.T) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 260})
	defer face.Close()

	tests := []string{"jf", "j", "Af"}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			bounds, advance := font.BoundString(face, text)
			want := max(advance, bounds.Max.X).Ceil() - min(0, bounds.Min.X).Floor()

			img := TextToImage(text, Font{Face: face}, red)
			if got := img.Bounds().Dx(); got < want {
				t.Errorf("width = %d, want at least %d (ink %v..%v)", got, want, bounds.Min.X, bounds.Max.X)
			}
			if m := face.Metrics(); img.Bounds().Dy() < (m.Ascent + m.Descent).Ceil() {
				t.Errorf("height = %d, want at least ascent plus descent", img.Bounds().Dy())
			}
			if !hasOpaquePixel(img) {
				t.Error("no glyph pixels drawn")
			}
		})
	}
}

func TestTextToImageFallback(t *testing.T) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	small := truetype.NewFace(f, &truetype.Options{Size: 10})
	large := truetype.NewFace(f, &truetype.Options{Size: 40})

	withFallback := Font{Face: small, Fallback: large, Has: func(r rune) bool { return r != 'W' }}
	a := TextToImage("W", withFallback, red)
	b := TextToImage("W", Font{Face: small}, red)

	if a.Bounds().Dx() <= b.Bounds().Dx() {
		t.Errorf("fallback face not used: %v vs %v", a.Bounds().Size(), b.Bounds().Size())
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#D32F2F")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}) {
		t.Errorf("got %v", c)
	}

	for _, bad := range []string{"", "D32F2F", "#GGGGGG"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) expected error", bad)
		}
	}

	if HexOr("nope", blue) != blue {
		t.Error("HexOr did not fall back")
	}
}

func TestFlatten(t *testing.T) {
	img := solid(2, 2, Transparent)
	got := Flatten(img, White)
	if c := got.NRGBAAt(0, 0); c != White {
		t.Errorf("got %v, want opaque white", c)
	}
}

func TestBlurKeepsSize(t *testing.T) {
	assertSize(t, Blur(solid(2000, 1500, red), 35), 2000, 1500)
	assertSize(t, Blur(solid(200, 150, red), 5), 200, 150)
}

func hasOpaquePixel(img *image.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A > 128 {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
