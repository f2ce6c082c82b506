package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nsedata/downloader/internal/domain"
	errpkg "github.com/nsedata/downloader/internal/errors"
	"github.com/nsedata/downloader/internal/service"
)

const defaultFilesLimit = 10

// JobServiceI defines the job-related business logic the handlers need.
type JobServiceI interface {
	CreateJob(ctx context.Context, req *domain.CreateJobRequest) (*domain.DownloadJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*domain.DownloadJob, error)
	ListJobs(ctx context.Context) ([]*domain.DownloadJob, error)
	ListRecentFiles(ctx context.Context, limit int) ([]*domain.DownloadedFile, error)
	Stats(ctx context.Context) (*domain.SystemStats, error)
}

// JobHandler handles HTTP requests for download jobs.
type JobHandler struct {
	jobService JobServiceI
	logger     *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService JobServiceI, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		logger:     logger,
	}
}

// CreateJob handles POST /download-jobs.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.jobService.CreateJob(ctx, &req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.logger.Warn("job request rejected", "fields", len(verr.Fields))
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"message": "validation error",
				"errors":  verr.Fields,
			})
			return
		}
		h.logger.Error("failed to create job", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// GetJob handles GET /download-jobs/{jobID}.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid job ID")
		return
	}

	job, err := h.jobService.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, errpkg.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("failed to get job", "job_id", jobID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /download-jobs.
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.ListJobs(r.Context())
	if err != nil {
		h.logger.Error("failed to list jobs", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// ListFiles handles GET /downloaded-files?limit=N.
func (h *JobHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	limit := defaultFilesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	files, err := h.jobService.ListRecentFiles(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list files", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// Stats handles GET /stats.
func (h *JobHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.jobService.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"message": message,
	})
}
