package fonts

import (
	"errors"
	"fmt"
	"io"
	"os"

	"photo-watermarker/internal/composite"
	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"

	"github.com/golang/freetype/truetype"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// parsed is a font file that can produce faces at any size.
type parsed interface {
	face(size float64) (font.Face, error)
	has(r rune) bool
}

type trueTypeFont struct{ f *truetype.Font }

func (t trueTypeFont) face(size float64) (font.Face, error) {
	return truetype.NewFace(t.f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

func (t trueTypeFont) has(r rune) bool {
	return t.f.Index(r) != 0
}

// openTypeFont covers CFF outlines, which freetype cannot read.
type openTypeFont struct{ f *opentype.Font }

func (o openTypeFont) face(size float64) (font.Face, error) {
	return opentype.NewFace(o.f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

func (o openTypeFont) has(r rune) bool {
	idx, err := o.f.GlyphIndex(nil, r)
	return err == nil && idx != 0
}

// Set holds the four parsed font files and the configured pixel sizes. It is
// read-only after Load and safe to share; faces are not, so every caller
// builds its own with Faces.
type Set struct {
	regular, bold       parsed
	altRegular, altBold parsed
	regularSize         float64
	boldSize            float64
}

// Load parses the fonts named by cfg. A missing primary font is replaced by
// its alternative; if both are missing the error wraps
// domain.ErrMissingResource.
func Load(cfg *config.Config, logger *zlog.Zerolog) (*Set, error) {
	s := &Set{
		regularSize: float64(cfg.FontPixelSize()),
		boldSize:    float64(cfg.BoldFontPixelSize()),
	}

	var err error
	s.regular, s.altRegular, err = loadPair(cfg.Base.Font, cfg.Base.AlternativeFont, logger)
	if err != nil {
		return nil, err
	}
	s.bold, s.altBold, err = loadPair(cfg.Base.BoldFont, cfg.Base.AlternativeBoldFont, logger)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func loadPair(primaryPath, altPath string, logger *zlog.Zerolog) (parsed, parsed, error) {
	primary, primaryErr := parseFile(primaryPath)
	alt, altErr := parseFile(altPath)

	switch {
	case primaryErr == nil && altErr == nil:
		return primary, alt, nil
	case primaryErr == nil:
		logger.Warn().Err(altErr).Str("font", altPath).Msg("Alternative font unavailable")
		return primary, nil, nil
	case altErr == nil:
		logger.Warn().Err(primaryErr).Str("font", primaryPath).Str("fallback", altPath).Msg("Font unavailable, using alternative")
		return alt, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: fonts %s and %s: %w", domain.ErrMissingResource, primaryPath, altPath, errors.Join(primaryErr, altErr))
	}
}

func parseFile(path string) (parsed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return parse(data)
}

// parse reads TrueType data, falling back to OpenType for CFF fonts.
func parse(data []byte) (parsed, error) {
	if f, err := truetype.Parse(data); err == nil {
		return trueTypeFont{f: f}, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return openTypeFont{f: f}, nil
}

// Faces are font faces for a single goroutine. Close releases them.
type Faces struct {
	Regular composite.Font
	Bold    composite.Font
	closers []io.Closer
}

// Pick returns the bold or regular font.
func (f *Faces) Pick(bold bool) composite.Font {
	if bold {
		return f.Bold
	}
	return f.Regular
}

func (f *Faces) Close() error {
	var errs []error
	for _, c := range f.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Faces builds faces at the configured sizes.
func (s *Set) Faces() (*Faces, error) {
	return s.FacesAt(s.regularSize, s.boldSize)
}

// FacesAt builds faces at explicit pixel sizes.
func (s *Set) FacesAt(regularSize, boldSize float64) (*Faces, error) {
	out := &Faces{}

	var err error
	if out.Regular, err = s.font(out, s.regular, s.altRegular, regularSize); err != nil {
		out.Close()
		return nil, err
	}
	if out.Bold, err = s.font(out, s.bold, s.altBold, boldSize); err != nil {
		out.Close()
		return nil, err
	}

	return out, nil
}

func (s *Set) font(out *Faces, primary, alt parsed, size float64) (composite.Font, error) {
	face, err := primary.face(size)
	if err != nil {
		return composite.Font{}, fmt.Errorf("failed to create font face: %w", err)
	}
	out.closers = append(out.closers, face)

	f := composite.Font{Face: face}
	if alt == nil {
		return f, nil
	}

	fallback, err := alt.face(size)
	if err != nil {
		return composite.Font{}, fmt.Errorf("failed to create fallback font face: %w", err)
	}
	out.closers = append(out.closers, fallback)

	f.Fallback = fallback
	f.Has = primary.has
	return f, nil
}
