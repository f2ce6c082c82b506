package archive

import (
	"archive/zip"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errpkg "github.com/nsedata/downloader/internal/errors"
)

var testDate = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	zw := zip.NewWriter(file)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fo15012024.zip")
	writeZip(t, archivePath, map[string]string{
		"readme.txt":     "ignore me",
		"op15012024.csv": "INSTRUMENT,SYMBOL\nOPTIDX,NIFTY\n",
	})

	e := NewExtractor(newTestLogger())
	got, err := e.Extract(archivePath, dir, testDate)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "op15012024.csv"), got)

	data, err := os.ReadFile(got)
	assert.NoError(t, err)
	assert.Equal(t, "INSTRUMENT,SYMBOL\nOPTIDX,NIFTY\n", string(data))

	// the archive must be gone once extraction succeeded
	assert.NoFileExists(t, archivePath)
}

func TestExtractor_Extract_CaseInsensitiveMatch(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fo15012024.zip")
	writeZip(t, archivePath, map[string]string{
		"OP15012024.CSV": "a,b\n",
	})

	e := NewExtractor(newTestLogger())
	got, err := e.Extract(archivePath, dir, testDate)
	assert.NoError(t, err)
	assert.FileExists(t, got)
}

func TestExtractor_Extract_NoMatchingEntry(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fo15012024.zip")
	writeZip(t, archivePath, map[string]string{
		"futures.csv": "not options data",
	})

	e := NewExtractor(newTestLogger())
	_, err := e.Extract(archivePath, dir, testDate)
	assert.ErrorIs(t, err, errpkg.ErrNoMatchingEntry)

	// the archive is kept when extraction fails
	assert.FileExists(t, archivePath)
}

func TestExtractor_Extract_CorruptArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fo15012024.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("<html>not a zip</html>"), 0o644))

	e := NewExtractor(newTestLogger())
	_, err := e.Extract(archivePath, dir, testDate)
	assert.Error(t, err)
}
