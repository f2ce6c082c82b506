package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/nsedata/downloader/internal/domain"
	errpkg "github.com/nsedata/downloader/internal/errors"
)

const (
	jobsBucket  = "jobs"
	filesBucket = "files"
)

// BoltStore persists jobs and file records in a bbolt database. Records are
// JSON-encoded and keyed by their UUID string.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (or creates) the database at path and ensures the
// required buckets exist.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{jobsBucket, filesBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	slog.Info("bolt store opened", "path", path)
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// CreateJob adds a new job record.
func (s *BoltStore) CreateJob(ctx context.Context, job *domain.DownloadJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket([]byte(jobsBucket)), job.ID, job)
	})
}

// GetJob retrieves a job by ID.
func (s *BoltStore) GetJob(ctx context.Context, id uuid.UUID) (*domain.DownloadJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var job domain.DownloadJob
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(jobsBucket)).Get([]byte(id.String()))
		if data == nil {
			return errpkg.ErrJobNotFound
		}
		return json.Unmarshal(data, &job)
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob merges the non-nil fields of update into the stored job inside a
// single write transaction.
func (s *BoltStore) UpdateJob(ctx context.Context, id uuid.UUID, update domain.JobUpdate) (*domain.DownloadJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var job domain.DownloadJob
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(jobsBucket))
		data := bucket.Get([]byte(id.String()))
		if data == nil {
			return errpkg.ErrJobNotFound
		}
		if err := json.Unmarshal(data, &job); err != nil {
			return fmt.Errorf("unmarshal job: %w", err)
		}
		applyUpdate(&job, update)
		return putJSON(bucket, id, &job)
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns all jobs, newest first.
func (s *BoltStore) ListJobs(ctx context.Context) ([]*domain.DownloadJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var jobs []*domain.DownloadJob
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(jobsBucket)).ForEach(func(_, v []byte) error {
			var job domain.DownloadJob
			if err := json.Unmarshal(v, &job); err != nil {
				return fmt.Errorf("unmarshal job: %w", err)
			}
			jobs = append(jobs, &job)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// CreateDownloadedFile adds a new file record.
func (s *BoltStore) CreateDownloadedFile(ctx context.Context, file *domain.DownloadedFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return putJSON(tx.Bucket([]byte(filesBucket)), file.ID, file)
	})
}

// ListFilesByJob returns all file records belonging to a job, oldest first.
func (s *BoltStore) ListFilesByJob(ctx context.Context, jobID uuid.UUID) ([]*domain.DownloadedFile, error) {
	files, err := s.allFiles(ctx)
	if err != nil {
		return nil, err
	}

	var out []*domain.DownloadedFile
	for _, f := range files {
		if f.JobID == jobID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// ListRecentFiles returns up to limit file records, newest first.
func (s *BoltStore) ListRecentFiles(ctx context.Context, limit int) ([]*domain.DownloadedFile, error) {
	files, err := s.allFiles(ctx)
	if err != nil {
		return nil, err
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
func (s *BoltStore) Stats(ctx context.Context) (*domain.SystemStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := &domain.SystemStats{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		stats.TotalJobs = tx.Bucket([]byte(jobsBucket)).Stats().KeyN
		return tx.Bucket([]byte(filesBucket)).ForEach(func(_, v []byte) error {
			var file domain.DownloadedFile
			if err := json.Unmarshal(v, &file); err != nil {
				return fmt.Errorf("unmarshal file: %w", err)
			}
			stats.TotalFiles++
			stats.TotalBytes += file.FileSize
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *BoltStore) allFiles(ctx context.Context) ([]*domain.DownloadedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var files []*domain.DownloadedFile
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(filesBucket)).ForEach(func(_, v []byte) error {
			var file domain.DownloadedFile
			if err := json.Unmarshal(v, &file); err != nil {
				return fmt.Errorf("unmarshal file: %w", err)
			}
			files = append(files, &file)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func putJSON(bucket *bbolt.Bucket, id uuid.UUID, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return bucket.Put([]byte(id.String()), data)
}
