package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsedata/downloader/internal/domain"
)

// JobStore defines the persistence operations the executor and the HTTP
// layer need. Implementations must provide read-after-write consistency for
// a single job; cross-job transactions are not required.
type JobStore interface {
	CreateJob(ctx context.Context, job *domain.DownloadJob) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.DownloadJob, error)
	UpdateJob(ctx context.Context, id uuid.UUID, update domain.JobUpdate) (*domain.DownloadJob, error)
	ListJobs(ctx context.Context) ([]*domain.DownloadJob, error)

	CreateDownloadedFile(ctx context.Context, file *domain.DownloadedFile) error
	ListFilesByJob(ctx context.Context, jobID uuid.UUID) ([]*domain.DownloadedFile, error)
	ListRecentFiles(ctx context.Context, limit int) ([]*domain.DownloadedFile, error)

	Stats(ctx context.Context) (*domain.SystemStats, error)
}
