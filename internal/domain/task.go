package domain

import "time"

type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

type Job struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	SourceKey string    `json:"source_key"`
	ResultKey string    `json:"result_key"`
	Layout    Layout    `json:"layout,omitempty"`
	Status    JobStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type JobResult struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	ResultKey string    `json:"result_key,omitempty"`
	Error     string    `json:"error,omitempty"`
}

const (
	PathPrefixSource = "source/"
	PathPrefixResult = "watermarked/"
)

const (
	DefaultMaxUploadSize = 64 << 20
	DefaultConcurrency   = 5
	DefaultJPEGQuality   = 100
)

// SupportedExtensions are the input file extensions, compared lower-cased.
var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}
