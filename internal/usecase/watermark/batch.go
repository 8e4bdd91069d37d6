package watermark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/wb-go/wbf/zlog"
)

type FileError struct {
	Path string
	Err  error
}

// Report summarizes a batch run. Success is false when any file failed.
type Report struct {
	Success   bool
	Processed []string
	Failed    []FileError
	Bytes     uint64
	Took      time.Duration
}

func (r *Report) Err() error {
	if r.Success {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// Batch processes many files over a fixed pool of goroutines.
type Batch struct {
	files       fileProcessor
	concurrency int
	logger      *zlog.Zerolog
}

func NewBatch(files fileProcessor, concurrency int, logger *zlog.Zerolog) *Batch {
	return &Batch{
		files:       files,
		concurrency: max(concurrency, 1),
		logger:      logger,
	}
}

// Collect lists the supported images directly under dir, sorted by name.
func Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)

	return files, nil
}

// Run writes every file to outDir under its own name. Individual failures,
// panics included, are recorded in the report and never stop the batch.
func (b *Batch) Run(ctx context.Context, files []string, outDir string) (*Report, error) {
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	start := time.Now()
	b.logger.Info().
		Int("files", len(files)).
		Int("concurrency", b.concurrency).
		Str("output", outDir).
		Msg("Batch started")

	jobs := make(chan string)
	report := &Report{}
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for src := range jobs {
				dst := filepath.Join(outDir, filepath.Base(src))
				err := b.safeProcessFile(ctx, id, src, dst)

				mu.Lock()
				if err != nil {
					report.Failed = append(report.Failed, FileError{Path: src, Err: err})
				} else {
					report.Processed = append(report.Processed, dst)
					if info, statErr := os.Stat(dst); statErr == nil {
						report.Bytes += uint64(info.Size())
					}
				}
				mu.Unlock()
			}
		}(i)
	}

feed:
	for _, f := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- f:
		}
	}
	close(jobs)
	wg.Wait()

	slices.Sort(report.Processed)
	slices.SortFunc(report.Failed, func(a, b FileError) int {
		return strings.Compare(a.Path, b.Path)
	})

	if ctx.Err() != nil {
		for _, f := range files {
			if !b.seen(report, f, outDir) {
				report.Failed = append(report.Failed, FileError{Path: f, Err: ctx.Err()})
			}
		}
	}

	report.Success = len(report.Failed) == 0
	report.Took = time.Since(start)

	b.logger.Info().
		Int("processed", len(report.Processed)).
		Int("failed", len(report.Failed)).
		Str("written", humanize.Bytes(report.Bytes)).
		Dur("took", report.Took).
		Msg("Batch finished")

	return report, nil
}

func (b *Batch) safeProcessFile(ctx context.Context, workerID int, src, dst string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Int("worker_id", workerID).
				Interface("panic", r).
				Str("path", src).
				Msg("Panic recovered while processing file")
			err = fmt.Errorf("%w %s: %v", ErrPanic, src, r)
		}
	}()

	if err := b.files.ProcessFile(ctx, src, dst); err != nil {
		b.logger.Error().
			Err(err).
			Int("worker_id", workerID).
			Str("path", src).
			Msg("Failed to process file")
		return err
	}
	return nil
}

func (b *Batch) seen(r *Report, src, outDir string) bool {
	dst := filepath.Join(outDir, filepath.Base(src))
	if _, ok := slices.BinarySearch(r.Processed, dst); ok {
		return true
	}
	return slices.ContainsFunc(r.Failed, func(f FileError) bool { return f.Path == src })
}
