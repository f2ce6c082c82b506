package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	h "github.com/nsedata/downloader/internal/api/http"
	"github.com/nsedata/downloader/internal/archive"
	cfgpkg "github.com/nsedata/downloader/internal/config"
	"github.com/nsedata/downloader/internal/executor"
	"github.com/nsedata/downloader/internal/fetch"
	"github.com/nsedata/downloader/internal/nse"
	svc "github.com/nsedata/downloader/internal/service"
	"github.com/nsedata/downloader/internal/store"
)

func main() {

	cfg, err := cfgpkg.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	cfgpkg.SetupLogger(cfg)
	slog.Info("configuration loaded successfully",
		"store_backend", cfg.StoreBackend,
		"download_dir", cfg.DownloadDir,
		"max_concurrent_downloads", cfg.MaxConcurrentDownloads,
	)

	jobStore, closeStore, err := buildStore(cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	logger := slog.Default()
	fetcher := fetch.NewFetcher(cfg.FetchTimeout, logger)
	extractor := archive.NewExtractor(logger)
	exec := executor.NewExecutor(
		jobStore,
		fetcher,
		extractor,
		nse.URL,
		cfg.DownloadDir,
		cfg.MaxConcurrentDownloads,
		logger,
	)
	jobService := svc.NewJobService(jobStore, exec, logger)

	router := h.NewRouter(jobService, logger)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  cfg.HTTPTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	if err := jobService.Shutdown(shutdownCtx); err != nil {
		slog.Error("job service shutdown failed", "error", err)
	} else {
		slog.Info("server stopped gracefully")
	}
}

func buildStore(cfg *cfgpkg.Config) (store.JobStore, func(), error) {
	if cfg.StoreBackend == "bolt" {
		boltStore, err := store.NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return boltStore, func() {
			if err := boltStore.Close(); err != nil {
				slog.Error("failed to close bolt store", "error", err)
			}
		}, nil
	}
	return store.NewMemoryStore(), func() {}, nil
}
