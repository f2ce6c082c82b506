package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nsedata/downloader/internal/dates"
	"github.com/nsedata/downloader/internal/domain"
	"github.com/nsedata/downloader/internal/executor"
	"github.com/nsedata/downloader/internal/metrics"
	"github.com/nsedata/downloader/internal/store"
	"github.com/nsedata/downloader/internal/validation"
)

// ValidationError carries field-level detail for a rejected job request.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// JobService validates and creates download jobs, spawns their execution,
// and serves the read-only projections the HTTP layer exposes.
type JobService struct {
	store    store.JobStore
	executor *executor.Executor
	logger   *slog.Logger

	runCtx    context.Context
	cancelRun context.CancelFunc
	wg        sync.WaitGroup
}

// NewJobService creates a JobService. Jobs spawned by CreateJob run until
// they finish or Shutdown cancels them.
func NewJobService(st store.JobStore, exec *executor.Executor, logger *slog.Logger) *JobService {
	runCtx, cancel := context.WithCancel(context.Background())
	return &JobService{
		store:     st,
		executor:  exec,
		logger:    logger,
		runCtx:    runCtx,
		cancelRun: cancel,
	}
}

// CreateJob validates the request, persists a Pending job with its
// precomputed file total, and starts execution in the background. The
// created job record is returned immediately.
func (s *JobService) CreateJob(ctx context.Context, req *domain.CreateJobRequest) (*domain.DownloadJob, error) {
	if fieldErrs := validation.ValidateCreateJob(req, time.Now()); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	dateCount, err := s.dateCount(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	job := &domain.DownloadJob{
		ID:          uuid.New(),
		JobType:     req.JobType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		DataSources: req.DataSources,
		Status:      domain.JobStatusPending,
		TotalFiles:  executor.TotalFiles(req.DataSources, dateCount),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	metrics.JobsCreated.Inc()

	s.logger.Info("job created",
		"job_id", job.ID,
		"job_type", job.JobType,
		"sources", job.DataSources,
		"total_files", job.TotalFiles,
	)

	s.spawn(job.ID)
	return job, nil
}

// spawn starts job execution fire-and-forget, with a supervised boundary:
// a panic in the executor marks the job Failed instead of crashing the
// process.
func (s *JobService) spawn(jobID uuid.UUID) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("job execution panicked", "job_id", jobID, "panic", r)
				failed := domain.JobStatusFailed
				msg := fmt.Sprintf("panic: %v", r)
				if _, err := s.store.UpdateJob(context.Background(), jobID, domain.JobUpdate{Status: &failed, ErrorMessage: &msg}); err != nil {
					s.logger.Error("failed to mark panicked job failed", "job_id", jobID, "error", err)
				}
			}
		}()

		if err := s.executor.Run(s.runCtx, jobID); err != nil {
			s.logger.Error("job execution failed", "job_id", jobID, "error", err)
		}
	}()
}

func (s *JobService) dateCount(req *domain.CreateJobRequest) (int, error) {
	if req.JobType != domain.JobTypeRange {
		return 1, nil
	}
	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return 0, fmt.Errorf("parse start date: %w", err)
	}
	end, err := dates.Parse(req.EndDate)
	if err != nil {
		return 0, fmt.Errorf("parse end date: %w", err)
	}
	return len(dates.Expand(start, end)), nil
}

// GetJob returns a job by id.
func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*domain.DownloadJob, error) {
	return s.store.GetJob(ctx, id)
}

// ListJobs returns all jobs, newest first.
func (s *JobService) ListJobs(ctx context.Context) ([]*domain.DownloadJob, error) {
	return s.store.ListJobs(ctx)
}

// ListRecentFiles returns the most recent downloaded-file records.
func (s *JobService) ListRecentFiles(ctx context.Context, limit int) ([]*domain.DownloadedFile, error) {
	return s.store.ListRecentFiles(ctx, limit)
}

// Stats returns aggregate totals over jobs and files.
func (s *JobService) Stats(ctx context.Context) (*domain.SystemStats, error) {
	return s.store.Stats(ctx)
}

// Shutdown cancels running jobs (cancellation is observed at task
// boundaries) and waits for their goroutines, bounded by ctx.
func (s *JobService) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down job service")
	s.cancelRun()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("job service shutdown completed")
		return nil
	case <-ctx.Done():
		s.logger.Warn("job service shutdown timed out")
		return ctx.Err()
	}
}
