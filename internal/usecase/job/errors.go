package job

import "errors"

var (
	ErrJobNotFound       = errors.New("job not found")
	ErrJobNotReady       = errors.New("job not completed")
	ErrJobFailed         = errors.New("job failed")
	ErrUnknownLayout     = errors.New("unknown layout")
	ErrStorageError      = errors.New("storage error")
	ErrDatabaseError     = errors.New("database error")
	ErrMessageQueueError = errors.New("message queue error")
)
