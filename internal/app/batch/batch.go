package batch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/usecase/watermark"

	"github.com/wb-go/wbf/zlog"
)

// App watermarks every supported photo of the input directory into the
// output directory.
type App struct {
	cfg    *config.Config
	batch  *watermark.Batch
	logger *zlog.Zerolog
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	svc, err := watermark.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:    cfg,
		batch:  watermark.NewBatch(svc, cfg.Worker.Concurrency, logger),
		logger: logger,
	}, nil
}

// Run processes the input directory until done or interrupted. The returned
// error is non-nil when the batch could not start or any file failed.
func (a *App) Run() (*watermark.Report, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, err := watermark.Collect(a.cfg.Base.InputDirectory)
	if err != nil {
		return nil, err
	}

	a.logger.Info().
		Str("input", a.cfg.Base.InputDirectory).
		Str("output", a.cfg.Base.OutputDirectory).
		Int("files", len(files)).
		Msg("Starting batch")

	report, err := a.batch.Run(ctx, files, a.cfg.Base.OutputDirectory)
	if err != nil {
		return nil, err
	}

	for _, f := range report.Failed {
		a.logger.Warn().Err(f.Err).Str("path", f.Path).Msg("Photo skipped")
	}

	if !report.Success {
		return report, fmt.Errorf("%d of %d photos failed: %w", len(report.Failed), len(files), report.Err())
	}
	return report, nil
}
