package metadata

import "errors"

var (
	ErrToolFailed       = errors.New("metadata tool failed")
	ErrNoMetadata       = errors.New("no metadata found")
	ErrAllReadersFailed = errors.New("all metadata readers failed")
)
