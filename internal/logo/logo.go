package logo

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"photo-watermarker/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

// Cache maps camera makes to decoded logos. The directory is indexed once and
// every logo is decoded at most once per process; entries are never
// invalidated. Returned images are shared and must not be modified.
type Cache struct {
	mu       sync.Mutex
	index    map[string]string
	images   map[string]*image.NRGBA
	fallback *image.NRGBA
	logger   *zlog.Zerolog
}

// NewCache indexes dir by lower-cased file stem and decodes defaultPath.
// A default that cannot be decoded is reported as domain.ErrMissingResource.
// A missing directory only leaves the index empty.
func NewCache(dir, defaultPath string, logger *zlog.Zerolog) (*Cache, error) {
	fallback, err := decode(defaultPath)
	if err != nil {
		return nil, fmt.Errorf("%w: default logo %s: %w", domain.ErrMissingResource, defaultPath, err)
	}

	c := &Cache{
		index:    make(map[string]string),
		images:   make(map[string]*image.NRGBA),
		fallback: fallback,
		logger:   logger,
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("Logo directory unavailable, using default logo only")
		return c, nil
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
		if _, exists := c.index[stem]; !exists {
			c.index[stem] = filepath.Join(dir, name)
		}
	}

	logger.Debug().Str("dir", dir).Int("logos", len(c.index)).Msg("Logo directory indexed")
	return c, nil
}

// Get returns the logo whose file stem matches cameraMake, then its first word,
// case-insensitively. Anything else gets the default logo.
func (c *Cache) Get(cameraMake string) *image.NRGBA {
	key := strings.ToLower(strings.TrimSpace(cameraMake))
	if key == "" {
		return c.fallback
	}

	candidates := []string{key}
	if first, _, found := strings.Cut(key, " "); found {
		candidates = append(candidates, first)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, stem := range candidates {
		if img, ok := c.images[stem]; ok {
			return img
		}

		path, ok := c.index[stem]
		if !ok {
			continue
		}

		img, err := decode(path)
		if err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("Failed to decode logo, using default")
			c.images[stem] = c.fallback
			return c.fallback
		}

		c.images[stem] = img
		return img
	}

	return c.fallback
}

func decode(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logo: %w", err)
	}
	return imaging.Clone(img), nil
}
