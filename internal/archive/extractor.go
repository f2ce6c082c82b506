package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	errpkg "github.com/nsedata/downloader/internal/errors"
	"github.com/nsedata/downloader/internal/nse"
)

// Extractor pulls the options bhavcopy csv out of a downloaded fo<date>.zip.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract scans archivePath for the options csv entry (case-insensitive,
// name contains "op", ".csv" suffix), writes it to
// targetDir/op<DDMMYYYY>.csv and then removes the archive. The archive is
// deleted only after the extracted file has been written and closed.
func (e *Extractor) Extract(archivePath, targetDir string, date time.Time) (string, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive %s: %w", archivePath, err)
	}

	entry := findOptionsEntry(reader.File)
	if entry == nil {
		reader.Close()
		return "", fmt.Errorf("%w: %s", errpkg.ErrNoMatchingEntry, archivePath)
	}

	extractPath := filepath.Join(targetDir, nse.OptionsCSVName(date))
	if err := writeEntry(entry, extractPath); err != nil {
		reader.Close()
		return "", err
	}
	reader.Close()

	if err := os.Remove(archivePath); err != nil {
		return "", fmt.Errorf("remove archive: %w", err)
	}

	e.logger.Debug("archive extracted",
		"archive", archivePath,
		"extracted", extractPath,
	)
	return extractPath, nil
}

func findOptionsEntry(files []*zip.File) *zip.File {
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if strings.Contains(name, "op") && strings.HasSuffix(name, ".csv") {
			return f
		}
	}
	return nil
}

func writeEntry(entry *zip.File, destPath string) error {
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open archive entry: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(destPath)
		return fmt.Errorf("extract entry: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("close extracted file: %w", err)
	}
	return nil
}
