package metadata

import (
	"context"
	"errors"
	"fmt"

	"github.com/wb-go/wbf/zlog"
)

// Chain tries each reader in order and returns the first successful result.
type Chain struct {
	readers []Reader
	logger  *zlog.Zerolog
}

func NewChain(logger *zlog.Zerolog, readers ...Reader) *Chain {
	return &Chain{
		readers: readers,
		logger:  logger,
	}
}

func (c *Chain) Read(ctx context.Context, path string) (map[string]string, error) {
	var errs []error
	for i, r := range c.readers {
		tags, err := r.Read(ctx, path)
		if err == nil {
			return tags, nil
		}
		c.logger.Debug().Err(err).Str("path", path).Int("reader", i).Msg("Metadata reader failed, trying next")
		errs = append(errs, err)
	}

	return nil, fmt.Errorf("%w: %w", ErrAllReadersFailed, errors.Join(errs...))
}
