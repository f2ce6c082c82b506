package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration settings.
type Config struct {
	Environment string `envconfig:"ENV" default:"development"`

	HTTPPort    int           `envconfig:"HTTP_PORT" default:"8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	// FetchTimeout bounds a single file download, not the whole job.
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
	// MaxConcurrentDownloads bounds parallel downloads within one job;
	// 1 keeps task execution strictly sequential.
	MaxConcurrentDownloads int `envconfig:"MAX_CONCURRENT_DOWNLOADS" default:"1"`

	DownloadDir  string `envconfig:"DOWNLOAD_DIR" default:"./data"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	BoltPath     string `envconfig:"BOLT_PATH" default:"./nse-downloader.db"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Validate checks the configuration for invalid or missing values.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive: %s", c.FetchTimeout)
	}

	if c.MaxConcurrentDownloads <= 0 {
		return fmt.Errorf("max concurrent downloads must be positive: %d", c.MaxConcurrentDownloads)
	}

	if c.DownloadDir == "" {
		return fmt.Errorf("download directory cannot be empty")
	}

	switch c.StoreBackend {
	case "memory", "bolt":
	default:
		return fmt.Errorf("unknown store backend: %q", c.StoreBackend)
	}

	if c.StoreBackend == "bolt" && c.BoltPath == "" {
		return fmt.Errorf("bolt path cannot be empty")
	}

	return nil
}
