package watermark

import (
	"fmt"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/fonts"
	"photo-watermarker/internal/logo"
	"photo-watermarker/internal/metadata"
	"photo-watermarker/internal/usecase/processor"

	"github.com/wb-go/wbf/zlog"
)

// NewFromConfig loads fonts and logos and wires exiftool, with the native EXIF
// reader as fallback, into a Service for cfg.
func NewFromConfig(cfg *config.Config, logger *zlog.Zerolog) (*Service, error) {
	fontSet, err := fonts.Load(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	logos, err := logo.NewCache(cfg.Logo.Directory, cfg.Logo.Default, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load logos: %w", err)
	}

	exiftool := metadata.NewExiftool(cfg.Exiftool.Path, cfg.Exiftool.DateFormat, cfg.Exiftool.Timeout, cfg.DefaultRetryStrategy(), logger)
	reader := metadata.NewChain(logger, exiftool, metadata.NewNative())

	proc := processor.NewImageProcessor(cfg, fontSet, logos, logger)

	logger.Info().
		Str("layout", string(cfg.Layout.Type)).
		Int("quality", cfg.Base.Quality).
		Bool("shadow", cfg.Base.Shadow.Enable).
		Bool("white_margin", cfg.Base.WhiteMargin.Enable).
		Bool("padding_with_original_ratio", cfg.Base.PaddingWithOriginalRatio.Enable).
		Msg("Watermark pipeline configured")

	return NewService(cfg, proc, reader, exiftool, logger), nil
}
