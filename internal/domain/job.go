package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobType distinguishes single-date jobs from date-range jobs.
type JobType string

const (
	JobTypeSingle JobType = "single"
	JobTypeRange  JobType = "range"
)

// JobStatus represents the current state of a DownloadJob.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// FileStatus represents the outcome of a single file download attempt.
type FileStatus string

const (
	FileStatusCompleted FileStatus = "completed"
	FileStatusFailed    FileStatus = "failed"
)

// DownloadJob is a user-submitted request to download one or more NSE data
// sources for a single date or a date range. Dates are carried in the wire
// format DD/MM/YYYY.
type DownloadJob struct {
	ID             uuid.UUID `json:"id"`
	JobType        JobType   `json:"job_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date,omitempty"`
	DataSources    []string  `json:"data_sources"`
	Status         JobStatus `json:"status"`
	Progress       int       `json:"progress"`
	TotalFiles     int       `json:"total_files"`
	CompletedFiles int       `json:"completed_files"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DownloadedFile records the outcome of one attempted file download.
// DownloadDate is the calendar date the file represents, not the time the
// attempt was made.
type DownloadedFile struct {
	ID           uuid.UUID  `json:"id"`
	JobID        uuid.UUID  `json:"job_id"`
	FileName     string     `json:"file_name"`
	FileType     string     `json:"file_type"`
	FilePath     string     `json:"file_path"`
	FileSize     int64      `json:"file_size"`
	DownloadDate string     `json:"download_date"`
	Status       FileStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// JobUpdate carries a partial job mutation. Nil fields are left untouched
// by the store.
type JobUpdate struct {
	Status         *JobStatus
	Progress       *int
	CompletedFiles *int
	ErrorMessage   *string
}
