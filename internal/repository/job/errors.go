package job

import "errors"

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrObjectNotFound = errors.New("object not found")
	ErrStorageError   = errors.New("storage error")
)
