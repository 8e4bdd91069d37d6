package watermark

import "errors"

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoInput         = errors.New("no input files")
	ErrPanic           = errors.New("panic while processing file")
)
