package domain

// CreateJobRequest represents the request body for creating a new download job.
// Date-format, range and future-date rules beyond what the tags can express are
// enforced by the validation package.
type CreateJobRequest struct {
	JobType     JobType  `json:"job_type" validate:"required,oneof=single range"`
	StartDate   string   `json:"start_date" validate:"required"`
	EndDate     string   `json:"end_date" validate:"required_if=JobType range"`
	DataSources []string `json:"data_sources" validate:"required,min=1,dive,oneof=nifty50 indices stocks marketActivity options"`
}

// FieldError describes a single validation failure on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SystemStats is an aggregate view over all jobs and downloaded files.
type SystemStats struct {
	TotalJobs  int   `json:"total_jobs"`
	TotalFiles int   `json:"total_files"`
	TotalBytes int64 `json:"total_bytes"`
}
