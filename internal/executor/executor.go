package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nsedata/downloader/internal/archive"
	"github.com/nsedata/downloader/internal/dates"
	"github.com/nsedata/downloader/internal/domain"
	errpkg "github.com/nsedata/downloader/internal/errors"
	"github.com/nsedata/downloader/internal/fetch"
	"github.com/nsedata/downloader/internal/metrics"
	"github.com/nsedata/downloader/internal/nse"
	"github.com/nsedata/downloader/internal/store"
)

// URLResolver resolves the remote URL for a (source, date) pair. Production
// wiring uses nse.URL; tests point it at a local server.
type URLResolver func(source nse.Source, date time.Time) (string, error)

// Executor runs download jobs to completion: it plans the task list,
// fetches every file, extracts options archives, and records per-file
// outcomes and job progress through the store.
//
// Individual file failures never fail the job; a job only ends Failed when
// an error escapes the per-task handling (bad job record, cancellation).
type Executor struct {
	store       store.JobStore
	fetcher     *fetch.Fetcher
	extractor   *archive.Extractor
	resolveURL  URLResolver
	baseDir     string
	concurrency int
	logger      *slog.Logger
}

// NewExecutor creates an Executor. concurrency bounds parallel downloads
// within one job; 1 gives strictly sequential execution.
func NewExecutor(
	st store.JobStore,
	fetcher *fetch.Fetcher,
	extractor *archive.Extractor,
	resolveURL URLResolver,
	baseDir string,
	concurrency int,
	logger *slog.Logger,
) *Executor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Executor{
		store:       st,
		fetcher:     fetcher,
		extractor:   extractor,
		resolveURL:  resolveURL,
		baseDir:     baseDir,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run executes the job with the given id. A missing job is a benign race
// (the record vanished between creation and execution) and is a silent
// no-op. Any other error marks the job Failed with the error message.
func (e *Executor) Run(ctx context.Context, jobID uuid.UUID) error {
	job, err := e.store.GetJob(ctx, jobID)
	if errors.Is(err, errpkg.ErrJobNotFound) {
		e.logger.Warn("job vanished before execution", "job_id", jobID)
		return nil
	}
	if err != nil {
		err = fmt.Errorf("load job: %w", err)
		e.markFailed(jobID, err)
		metrics.JobsFailed.Inc()
		return err
	}

	if err := e.execute(ctx, job); err != nil {
		e.markFailed(jobID, err)
		metrics.JobsFailed.Inc()
		return err
	}

	metrics.JobsCompleted.Inc()
	return nil
}

func (e *Executor) execute(ctx context.Context, job *domain.DownloadJob) error {
	running := domain.JobStatusRunning
	if _, err := e.store.UpdateJob(ctx, job.ID, domain.JobUpdate{Status: &running}); err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}

	e.logger.Info("job started",
		"job_id", job.ID,
		"job_type", job.JobType,
		"sources", job.DataSources,
		"total_files", job.TotalFiles,
	)

	dts, err := e.jobDates(job)
	if err != nil {
		return err
	}

	plan := BuildPlan(job.DataSources, dts)
	tracker := &progressTracker{total: job.TotalFiles}

	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for _, task := range plan {
		// cooperative cancellation, checked at task boundaries only
		if err := ctx.Err(); err != nil {
			break
		}
		task := task
		g.Go(func() error {
			e.runTask(ctx, job, task, tracker)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	completed := domain.JobStatusCompleted
	progress := 100
	if _, err := e.store.UpdateJob(ctx, job.ID, domain.JobUpdate{Status: &completed, Progress: &progress}); err != nil {
		return fmt.Errorf("mark job completed: %w", err)
	}

	e.logger.Info("job completed", "job_id", job.ID, "files", len(plan))
	return nil
}

func (e *Executor) jobDates(job *domain.DownloadJob) ([]time.Time, error) {
	start, err := dates.Parse(job.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse start date: %w", err)
	}
	if job.JobType != domain.JobTypeRange {
		return []time.Time{start}, nil
	}

	end, err := dates.Parse(job.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse end date: %w", err)
	}
	return dates.Expand(start, end), nil
}

// runTask attempts one file download. Failures are recorded and swallowed:
// a failed attempt still advances completedFiles and progress.
func (e *Executor) runTask(ctx context.Context, job *domain.DownloadJob, task Task, tracker *progressTracker) {
	start := time.Now()
	metrics.DownloadsTotal.Inc()

	fileName, filePath, size, err := e.download(ctx, task)
	if err != nil {
		metrics.DownloadsFailed.Inc()
		e.logger.Error("download failed",
			"job_id", job.ID,
			"source", task.Source,
			"date", dates.Format(task.Date),
			"error", err,
		)
		e.recordOutcome(job, task, &domain.DownloadedFile{
			FileName: fmt.Sprintf("%s_%s_failed", task.Source, dates.Format(task.Date)),
			Status:   domain.FileStatusFailed,
		}, tracker)
		return
	}

	metrics.DownloadsSuccess.Inc()
	metrics.DownloadDuration.Observe(time.Since(start).Seconds())
	metrics.DownloadBytes.Add(float64(size))

	e.logger.Info("download completed",
		"job_id", job.ID,
		"source", task.Source,
		"file", fileName,
		"bytes", size,
	)
	e.recordOutcome(job, task, &domain.DownloadedFile{
		FileName: fileName,
		FilePath: filePath,
		FileSize: size,
		Status:   domain.FileStatusCompleted,
	}, tracker)
}

func (e *Executor) download(ctx context.Context, task Task) (fileName, filePath string, size int64, err error) {
	cfg, err := nse.Lookup(task.Source)
	if err != nil {
		return "", "", 0, err
	}
	targetDir := filepath.Join(e.baseDir, cfg.Folder)

	url, err := e.resolveURL(task.Source, task.Date)
	if err != nil {
		return "", "", 0, err
	}

	remoteName, err := nse.RemoteFileName(task.Source, task.Date)
	if err != nil {
		return "", "", 0, err
	}
	remotePath := filepath.Join(targetDir, remoteName)

	size, err = e.fetcher.Fetch(ctx, url, remotePath)
	if err != nil {
		return "", "", 0, err
	}

	if !cfg.IsZip {
		return remoteName, remotePath, size, nil
	}

	extracted, err := e.extractor.Extract(remotePath, targetDir, task.Date)
	if err != nil {
		return "", "", 0, err
	}
	return filepath.Base(extracted), extracted, size, nil
}

// recordOutcome persists the file record and the job's progress. All
// progress writes for a job serialize through the tracker mutex so that
// completedFiles and progress stay monotonic under concurrent downloads.
func (e *Executor) recordOutcome(job *domain.DownloadJob, task Task, file *domain.DownloadedFile, tracker *progressTracker) {
	file.ID = uuid.New()
	file.JobID = job.ID
	file.FileType = string(task.Source)
	file.DownloadDate = dates.Format(task.Date)
	file.CreatedAt = time.Now()

	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	// the store context is deliberately not the task context: outcomes of
	// finished downloads are persisted even during shutdown
	ctx := context.Background()

	if err := e.store.CreateDownloadedFile(ctx, file); err != nil {
		e.logger.Error("failed to record file", "job_id", job.ID, "file", file.FileName, "error", err)
	}

	tracker.completed++
	completed := tracker.completed
	progress := tracker.percent()
	if _, err := e.store.UpdateJob(ctx, job.ID, domain.JobUpdate{CompletedFiles: &completed, Progress: &progress}); err != nil {
		e.logger.Error("failed to update progress", "job_id", job.ID, "error", err)
	}
}

func (e *Executor) markFailed(jobID uuid.UUID, cause error) {
	failed := domain.JobStatusFailed
	msg := cause.Error()
	if _, err := e.store.UpdateJob(context.Background(), jobID, domain.JobUpdate{Status: &failed, ErrorMessage: &msg}); err != nil {
		e.logger.Error("failed to mark job failed", "job_id", jobID, "error", err)
	}
	e.logger.Error("job failed", "job_id", jobID, "error", cause)
}

type progressTracker struct {
	mu        sync.Mutex
	total     int
	completed int
}

// percent rounds half away from zero, so 1/3 complete reports 33 and 2/3
// reports 67.
func (t *progressTracker) percent() int {
	total := t.total
	if total <= 0 {
		total = 1
	}
	return int(math.Round(float64(t.completed) / float64(total) * 100))
}
