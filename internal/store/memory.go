package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nsedata/downloader/internal/domain"
	errpkg "github.com/nsedata/downloader/internal/errors"
)

// MemoryStore keeps all jobs and file records in process memory. It is the
// default backend and the test double.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  map[uuid.UUID]*domain.DownloadJob
	files map[uuid.UUID]*domain.DownloadedFile
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:  make(map[uuid.UUID]*domain.DownloadJob),
		files: make(map[uuid.UUID]*domain.DownloadedFile),
	}
}

// CreateJob adds a new job record.
func (s *MemoryStore) CreateJob(ctx context.Context, job *domain.DownloadJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

// GetJob retrieves a job by ID.
func (s *MemoryStore) GetJob(ctx context.Context, id uuid.UUID) (*domain.DownloadJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, errpkg.ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

// UpdateJob merges the non-nil fields of update into the job and refreshes
// UpdatedAt.
func (s *MemoryStore) UpdateJob(ctx context.Context, id uuid.UUID, update domain.JobUpdate) (*domain.DownloadJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, errpkg.ErrJobNotFound
	}

	applyUpdate(job, update)
	cp := *job
	return &cp, nil
}

// ListJobs returns all jobs, newest first.
func (s *MemoryStore) ListJobs(ctx context.Context) ([]*domain.DownloadJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*domain.DownloadJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		cp := *job
		jobs = append(jobs, &cp)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// CreateDownloadedFile adds a new file record.
func (s *MemoryStore) CreateDownloadedFile(ctx context.Context, file *domain.DownloadedFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *file
	s.files[file.ID] = &cp
	return nil
}

// ListFilesByJob returns all file records belonging to a job, oldest first.
func (s *MemoryStore) ListFilesByJob(ctx context.Context, jobID uuid.UUID) ([]*domain.DownloadedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var files []*domain.DownloadedFile
	for _, f := range s.files {
		if f.JobID == jobID {
			cp := *f
			files = append(files, &cp)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.Before(files[j].CreatedAt)
	})
	return files, nil
}

// ListRecentFiles returns up to limit file records, newest first.
func (s *MemoryStore) ListRecentFiles(ctx context.Context, limit int) ([]*domain.DownloadedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files := make([]*domain.DownloadedFile, 0, len(s.files))
	for _, f := range s.files {
		cp := *f
		files = append(files, &cp)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// Stats aggregates totals over all stored jobs and files.
func (s *MemoryStore) Stats(ctx context.Context) (*domain.SystemStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.SystemStats{
		TotalJobs:  len(s.jobs),
		TotalFiles: len(s.files),
	}
	for _, f := range s.files {
		stats.TotalBytes += f.FileSize
	}
	return stats, nil
}

func applyUpdate(job *domain.DownloadJob, update domain.JobUpdate) {
	if update.Status != nil {
		job.Status = *update.Status
	}
	if update.Progress != nil {
		job.Progress = *update.Progress
	}
	if update.CompletedFiles != nil {
		job.CompletedFiles = *update.CompletedFiles
	}
	if update.ErrorMessage != nil {
		job.ErrorMessage = *update.ErrorMessage
	}
	job.UpdatedAt = time.Now()
}
