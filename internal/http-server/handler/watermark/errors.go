package watermark

import "errors"

var (
	ErrInvalidFileFormat = errors.New("invalid file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrFileRequired      = errors.New("file is required")
)
