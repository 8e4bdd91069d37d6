package metadata

import "context"

// Reader extracts a flat tag map from an image file. Keys follow the
// exiftool naming with whitespace and slashes removed (eg. "DateTimeOriginal").
type Reader interface {
	Read(ctx context.Context, path string) (map[string]string, error)
}

// Copier copies metadata tags from src onto dst in place.
type Copier interface {
	CopyTags(ctx context.Context, src, dst string) error
}
