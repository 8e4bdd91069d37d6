package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"photo-watermarker/internal/config"
	"photo-watermarker/internal/repository/job"

	"github.com/dustin/go-humanize"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type FileRepository struct {
	client  *minio.Client
	bucket  string
	retries retry.Strategy
	logger  *zlog.Zerolog
}

// NewMinIORepository connects to the configured endpoint and creates the
// bucket when it does not exist yet.
func NewMinIORepository(cfg *config.Config, retries retry.Strategy, logger *zlog.Zerolog) (*FileRepository, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	r := &FileRepository{
		client:  client,
		bucket:  cfg.Minio.Bucket,
		retries: retries,
		logger:  logger,
	}

	if err := r.ensureBucket(context.Background()); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *FileRepository) ensureBucket(ctx context.Context) error {
	return retry.Do(func() error {
		exists, err := r.client.BucketExists(ctx, r.bucket)
		if err != nil {
			return fmt.Errorf("%w: failed to check bucket %s: %w", job.ErrStorageError, r.bucket, err)
		}
		if exists {
			return nil
		}
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("%w: failed to create bucket %s: %w", job.ErrStorageError, r.bucket, err)
		}
		r.logger.Info().Str("bucket", r.bucket).Msg("Bucket created")
		return nil
	}, r.retries)
}

// PutObject stores size bytes from data under key. The reader is consumed
// once, so only the first attempt can send it.
func (r *FileRepository) PutObject(ctx context.Context, key string, data io.Reader, size int64, contentType string) error {
	_, err := r.client.PutObject(ctx, r.bucket, key, data, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%w: failed to put %s: %w", job.ErrStorageError, key, err)
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("key", key).
		Str("size", humanize.Bytes(uint64(max(size, 0)))).
		Msg("Object stored")

	return nil
}

func (r *FileRepository) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	var obj *minio.Object
	err := retry.Do(func() error {
		o, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return err
		}
		if _, err := o.Stat(); err != nil {
			o.Close()
			return err
		}
		obj = o
		return nil
	}, r.retries)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", job.ErrObjectNotFound, key)
		}
		return nil, fmt.Errorf("%w: failed to get %s: %w", job.ErrStorageError, key, err)
	}

	return obj, nil
}

func (r *FileRepository) DeleteObject(ctx context.Context, key string) error {
	err := retry.Do(func() error {
		return r.client.RemoveObject(ctx, r.bucket, key, minio.RemoveObjectOptions{})
	}, r.retries)
	if err != nil {
		return fmt.Errorf("%w: failed to delete %s: %w", job.ErrStorageError, key, err)
	}
	return nil
}
