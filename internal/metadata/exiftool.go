package metadata

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Exiftool runs the exiftool binary once per read and once per tag copy.
type Exiftool struct {
	path       string
	dateFormat string
	timeout    time.Duration
	retries    retry.Strategy
	logger     *zlog.Zerolog
}

func NewExiftool(path, dateFormat string, timeout time.Duration, retries retry.Strategy, logger *zlog.Zerolog) *Exiftool {
	return &Exiftool{
		path:       path,
		dateFormat: dateFormat,
		timeout:    timeout,
		retries:    retries,
		logger:     logger,
	}
}

func (e *Exiftool) Read(ctx context.Context, path string) (map[string]string, error) {
	var out []byte
	err := retry.Do(func() error {
		var runErr error
		out, runErr = e.run(ctx, "-d", e.dateFormat, path)
		return runErr
	}, e.retries)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", path, err)
	}

	tags := ParseOutput(out)
	if len(tags) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoMetadata)
	}

	e.logger.Debug().Str("path", path).Int("tags", len(tags)).Msg("Metadata read with exiftool")
	return tags, nil
}

// CopyTags copies every tag of src onto dst and resets the orientation, since
// bitmaps are rotated upright when they are decoded.
func (e *Exiftool) CopyTags(ctx context.Context, src, dst string) error {
	err := retry.Do(func() error {
		_, runErr := e.run(ctx, "-tagsfromfile", src, "-overwrite_original", "-Orientation#=1", dst)
		return runErr
	}, e.retries)
	if err != nil {
		return fmt.Errorf("failed to copy metadata from %s to %s: %w", src, dst, err)
	}

	return nil
}

func (e *Exiftool) run(ctx context.Context, args ...string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v: %s", ErrToolFailed, e.path, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return out, nil
}

// ParseOutput turns exiftool "Key : Value" lines into a map. Whitespace and
// slashes are removed from keys, non-ASCII characters from values. Lines
// without a colon are ignored; later duplicates win.
func ParseOutput(out []byte) map[string]string {
	tags := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		key = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) || r == '/' {
				return -1
			}
			return r
		}, key)
		if key == "" {
			continue
		}

		tags[key] = stripNonASCII(strings.TrimSpace(value))
	}

	return tags
}

func stripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}
