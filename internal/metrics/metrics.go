package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_jobs_created_total",
		Help: "Total number of download jobs created",
	})

	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_jobs_completed_total",
		Help: "Total number of download jobs completed",
	})

	JobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_jobs_failed_total",
		Help: "Total number of download jobs failed",
	})

	DownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_downloads_total",
		Help: "Total number of file download attempts",
	})

	DownloadsSuccess = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_downloads_success_total",
		Help: "Total number of successful file downloads",
	})

	DownloadsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_downloads_failed_total",
		Help: "Total number of failed file downloads",
	})

	DownloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nse_downloader_download_duration_seconds",
		Help:    "File download duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	DownloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nse_downloader_download_bytes_total",
		Help: "Total bytes downloaded",
	})
)
