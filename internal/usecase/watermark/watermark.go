package watermark

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/container"
	"photo-watermarker/internal/domain"
	"photo-watermarker/internal/metadata"
	"photo-watermarker/internal/usecase/processor"

	"github.com/wb-go/wbf/zlog"
)

// Service turns one photo into its watermarked copy. The default chain is
// built once from the config and shared by all callers.
type Service struct {
	cfg    *config.Config
	proc   stageApplier
	chain  *processor.Chain
	reader metadata.Reader
	copier metadata.Copier
	logger *zlog.Zerolog
}

func NewService(cfg *config.Config, proc stageApplier, reader metadata.Reader, copier metadata.Copier, logger *zlog.Zerolog) *Service {
	return &Service{
		cfg:    cfg,
		proc:   proc,
		chain:  processor.BuildChain(cfg, proc),
		reader: reader,
		copier: copier,
		logger: logger,
	}
}

// ProcessFile runs the configured layout on src and writes the result to dst.
func (s *Service) ProcessFile(ctx context.Context, src, dst string) error {
	return s.process(ctx, s.chain, src, dst)
}

// ProcessFileWithLayout is ProcessFile with the layout overridden. An empty
// layout uses the configured one.
func (s *Service) ProcessFileWithLayout(ctx context.Context, src, dst string, layout domain.Layout) error {
	if layout == "" || layout == s.chain.Layout() {
		return s.process(ctx, s.chain, src, dst)
	}
	return s.process(ctx, processor.BuildChainFor(s.cfg, layout, s.proc), src, dst)
}

func (s *Service) Layout() domain.Layout {
	return s.chain.Layout()
}

func (s *Service) process(ctx context.Context, chain *processor.Chain, src, dst string) error {
	if !Supported(src) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, src)
	}

	start := time.Now()

	c, err := container.Open(ctx, src, s.reader, s.logger)
	if err != nil {
		return err
	}
	defer c.Close()

	c.UseEquivalentFocalLength(s.cfg.Base.FocalLength.UseEquivalentFocalLength)

	if err := chain.Process(ctx, c); err != nil {
		return fmt.Errorf("failed to process %s: %w", src, err)
	}

	if err := c.Save(ctx, dst, s.cfg.Base.Quality, s.copier); err != nil {
		return err
	}

	s.logger.Info().
		Str("source", src).
		Str("target", dst).
		Str("layout", string(chain.Layout())).
		Int("width", c.Width()).
		Int("height", c.Height()).
		Dur("took", time.Since(start)).
		Msg("Photo watermarked")

	return nil
}

// Supported reports whether path has one of the accepted image extensions.
func Supported(path string) bool {
	return domain.SupportedExtensions[strings.ToLower(filepath.Ext(path))]
}
