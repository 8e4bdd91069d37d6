package container

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"photo-watermarker/internal/attribute"
	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/metadata"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

// Container is the unit of work for one photo: the decoded source, the
// working bitmap the stages replace, and the metadata read from the file.
// It is not safe for concurrent use.
type Container struct {
	path          string
	source        *image.NRGBA
	working       *image.NRGBA
	exif          map[string]string
	originalRatio float64
	equivalent    bool
	logger        *zlog.Zerolog
}

// Open decodes the photo at path upright and reads its metadata. Metadata
// errors are logged and leave the container with no tags.
func Open(ctx context.Context, path string, reader metadata.Reader, logger *zlog.Zerolog) (*Container, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	source := imaging.Clone(img)

	exif, err := reader.Read(ctx, path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to read metadata, continuing without it")
		exif = map[string]string{}
	}

	b := source.Bounds()
	return &Container{
		path:          path,
		source:        source,
		working:       source,
		exif:          exif,
		originalRatio: float64(b.Dx()) / float64(b.Dy()),
		logger:        logger,
	}, nil
}

func (c *Container) Path() string { return c.path }

func (c *Container) Filename() string { return filepath.Base(c.path) }

// Source is the decoded photo. It is never modified.
func (c *Container) Source() *image.NRGBA { return c.source }

func (c *Container) Working() *image.NRGBA { return c.working }

// Update replaces the working bitmap.
func (c *Container) Update(img *image.NRGBA) {
	c.working = img
}

func (c *Container) Width() int { return c.working.Bounds().Dx() }

func (c *Container) Height() int { return c.working.Bounds().Dy() }

// Ratio is width over height of the working bitmap.
func (c *Container) Ratio() float64 {
	return float64(c.Width()) / float64(c.Height())
}

// OriginalRatio is width over height of the source, before any stage ran.
func (c *Container) OriginalRatio() float64 { return c.originalRatio }

func (c *Container) Exif() map[string]string { return c.exif }

func (c *Container) Make() string {
	return c.AttributeString(domain.Element{Name: domain.FieldMake})
}

func (c *Container) Model() string {
	return c.AttributeString(domain.Element{Name: domain.FieldModel})
}

// UseEquivalentFocalLength makes Param prefer the 35mm equivalent focal length.
func (c *Container) UseEquivalentFocalLength(use bool) {
	c.equivalent = use
}

func (c *Container) AttributeString(el domain.Element) string {
	return attribute.Resolve(el, c.attributeSource())
}

func (c *Container) ParamString() string {
	return attribute.Param(c.attributeSource())
}

func (c *Container) attributeSource() attribute.Source {
	var w, h int
	if c.source != nil {
		w, h = c.source.Bounds().Dx(), c.source.Bounds().Dy()
	}
	return attribute.Source{
		Exif:                     c.exif,
		Filename:                 c.path,
		Width:                    w,
		Height:                   h,
		UseEquivalentFocalLength: c.equivalent,
	}
}

// Save encodes the working bitmap to path, picking the format from the
// extension, then copies the source tags onto it. A failed tag copy is logged
// and does not fail the save. copier may be nil.
func (c *Container) Save(ctx context.Context, path string, quality int, copier metadata.Copier) error {
	if err := imaging.Save(c.working, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}

	if copier == nil {
		return nil
	}
	if err := copier.CopyTags(ctx, c.path, path); err != nil {
		c.logger.Warn().Err(err).Str("source", c.path).Str("target", path).Msg("Failed to copy metadata")
	}

	return nil
}

// Close drops the bitmaps so they can be collected while the caller still
// holds the container.
func (c *Container) Close() {
	c.source = nil
	c.working = nil
	c.exif = nil
}
