package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"photo-watermarker/internal/broker"
	kafka_impl "photo-watermarker/internal/broker/kafka"
	"photo-watermarker/internal/config"
	"photo-watermarker/internal/domain"
	repo_job "photo-watermarker/internal/repository/job"
	minio_repo "photo-watermarker/internal/repository/job/cloud/minio"
	postgres_repo "photo-watermarker/internal/repository/job/db/postgres"
	"photo-watermarker/internal/usecase/watermark"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/segmentio/kafka-go"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

// Worker consumes watermark jobs, renders them with the shared pipeline and
// publishes a JobResult per job.
type Worker struct {
	cfg         *config.Config
	logger      *zlog.Zerolog
	db          *dbpg.DB
	broker      broker.Consumer
	results     broker.Producer
	files       fileRepository
	jobs        jobRepository
	watermarker watermarker
	tempDir     string
	concurrency int
	wg          sync.WaitGroup
}

func NewWorker(cfg *config.Config, logger *zlog.Zerolog) (*Worker, error) {
	retries := cfg.DefaultRetryStrategy()
	dbOpts := &dbpg.Options{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}
	db, err := dbpg.New(cfg.DBDSN(), []string{}, dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fileRepo, err := minio_repo.NewMinIORepository(cfg, retries, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file repository: %w", err)
	}

	jobRepo := postgres_repo.NewJobsRepository(db, retries)
	if err := jobRepo.Migrate(context.Background()); err != nil {
		return nil, err
	}

	svc, err := watermark.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := kafka_impl.NewKafkaClient(cfg)

	logger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.JobsTopic).
		Str("group", cfg.Kafka.GroupID).
		Int("concurrency", cfg.Worker.Concurrency).
		Msg("Worker configuration")

	w := New(cfg, client, client, fileRepo, jobRepo, svc, logger)
	w.db = db
	return w, nil
}

// New assembles a Worker from already connected dependencies.
func New(cfg *config.Config, consumer broker.Consumer, results broker.Producer, files fileRepository, jobs jobRepository, wm watermarker, logger *zlog.Zerolog) *Worker {
	return &Worker{
		cfg:         cfg,
		logger:      logger,
		broker:      consumer,
		results:     results,
		files:       files,
		jobs:        jobs,
		watermarker: wm,
		tempDir:     cfg.Server.TempDirectory,
		concurrency: max(cfg.Worker.Concurrency, 1),
	}
}

func (w *Worker) Run() error {
	w.logger.Info().Int("concurrency", w.concurrency).Msg("Starting worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			w.logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal, stopping worker...")
			cancel()
		case <-ctx.Done():
		}
	}()

	messages := make(chan kafka.Message, w.concurrency*2)
	go w.broker.StartConsuming(ctx, messages, w.cfg.DefaultRetryStrategy())

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processWorker(ctx, id, messages)
		}(i)
	}

	w.logger.Info().Msg("Worker started successfully")
	<-ctx.Done()

	w.logger.Info().Msg("Shutting down worker gracefully...")
	w.wg.Wait()

	if w.db != nil && w.db.Master != nil {
		w.db.Master.Close()
	}
	if err := w.broker.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close consumer")
	}
	if any(w.results) != any(w.broker) {
		if err := w.results.Close(); err != nil {
			w.logger.Error().Err(err).Msg("Failed to close producer")
		}
	}

	w.logger.Info().Msg("Worker stopped gracefully")
	return nil
}

func (w *Worker) processWorker(ctx context.Context, id int, messages <-chan kafka.Message) {
	w.logger.Debug().Int("worker_id", id).Msg("Worker goroutine started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Int("worker_id", id).Msg("Worker goroutine stopping")
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			start := time.Now()
			if err := w.safeProcessMessage(ctx, id, msg); err != nil {
				w.logger.Error().
					Err(err).
					Int("worker_id", id).
					Int64("offset", msg.Offset).
					Msg("Failed to process message")
				continue
			}
			if err := w.broker.Commit(ctx, msg); err != nil {
				w.logger.Error().
					Err(err).
					Int("worker_id", id).
					Int64("offset", msg.Offset).
					Msg("Failed to commit message after successful processing")
				continue
			}
			w.logger.Debug().
				Int("worker_id", id).
				Int64("offset", msg.Offset).
				Dur("duration", time.Since(start)).
				Msg("Message processed and committed successfully")
		}
	}
}

func (w *Worker) safeProcessMessage(ctx context.Context, workerID int, msg kafka.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Int("worker_id", workerID).
				Interface("panic", r).
				Int64("offset", msg.Offset).
				Msg("Panic recovered while processing message")
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.processMessage(ctx, msg)
}

// processMessage returns an error only when the message should stay
// uncommitted.
// A job that fails to render is recorded as failed and acknowledged, and so
// is a message whose job row no longer exists.
func (w *Worker) processMessage(ctx context.Context, msg kafka.Message) error {
	var job domain.Job
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		w.logger.Error().Err(err).Str("message", string(msg.Value)).Int64("offset", msg.Offset).Msg("Failed to unmarshal job, skipping")
		return nil
	}

	w.logger.Info().
		Str("job_id", job.ID).
		Str("filename", job.Filename).
		Str("layout", string(job.Layout)).
		Int64("offset", msg.Offset).
		Msg("Processing job started")

	if err := w.jobs.UpdateStatus(ctx, job.ID, domain.JobProcessing, "", ""); err != nil {
		if errors.Is(err, repo_job.ErrJobNotFound) {
			w.logger.Warn().Str("job_id", job.ID).Int64("offset", msg.Offset).Msg("Job not found, skipping")
			return nil
		}
		return fmt.Errorf("failed to mark job %s processing: %w", job.ID, err)
	}

	result := w.render(ctx, &job)

	if err := w.jobs.UpdateStatus(ctx, job.ID, result.Status, result.ResultKey, result.Error); err != nil {
		if errors.Is(err, repo_job.ErrJobNotFound) {
			w.logger.Warn().Str("job_id", job.ID).Int64("offset", msg.Offset).Msg("Job removed while processing, result dropped")
			return nil
		}
		return fmt.Errorf("failed to record job %s result: %w", job.ID, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := w.results.Send(ctx, w.cfg.DefaultRetryStrategy(), []byte(job.ID), payload); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to publish job result")
	}

	return nil
}

func (w *Worker) render(ctx context.Context, job *domain.Job) *domain.JobResult {
	fail := func(err error, msg string) *domain.JobResult {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg(msg)
		return &domain.JobResult{ID: job.ID, Status: domain.JobFailed, Error: fmt.Sprintf("%s: %v", msg, err)}
	}

	dir, err := os.MkdirTemp(w.tempDir, "job-*")
	if err != nil {
		return fail(err, "Failed to create work directory")
	}
	defer os.RemoveAll(dir)

	name := filepath.Base(job.Filename)
	src := filepath.Join(dir, "source-"+name)
	dst := filepath.Join(dir, name)

	if err := w.download(ctx, job.SourceKey, src); err != nil {
		return fail(err, "Failed to fetch source photo")
	}

	if err := w.watermarker.ProcessFileWithLayout(ctx, src, dst, job.Layout); err != nil {
		return fail(err, "Failed to watermark photo")
	}

	resultKey := domain.PathPrefixResult + job.ID + "/" + name
	if err := w.upload(ctx, dst, resultKey); err != nil {
		return fail(err, "Failed to store result")
	}

	w.logger.Info().
		Str("job_id", job.ID).
		Str("result_key", resultKey).
		Msg("Job completed")

	return &domain.JobResult{ID: job.ID, Status: domain.JobCompleted, ResultKey: resultKey}
}

func (w *Worker) download(ctx context.Context, key, path string) error {
	r, err := w.files.GetObject(ctx, key)
	if err != nil {
		return err
	}
	defer r.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	return nil
}

func (w *Worker) upload(ctx context.Context, path, key string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to detect type of %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open result %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat result %s: %w", path, err)
	}

	w.logger.Debug().
		Str("key", key).
		Str("mime", mtype.String()).
		Str("size", humanize.Bytes(uint64(info.Size()))).
		Msg("Uploading result")

	return w.files.PutObject(ctx, key, f, info.Size(), mtype.String())
}
