package fetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_Fetch(t *testing.T) {
	content := "SYMBOL,SERIES,DATE\nRELIANCE,EQ,15-Jan-2024\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		io.WriteString(w, content)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, newTestLogger())
	dest := filepath.Join(t.TempDir(), "stock", "sec_bhavdata_full_15012024.csv")

	size, err := f.Fetch(context.Background(), server.URL, dest)
	assert.NoError(t, err)
	assert.Equal(t, int64(len(content)), size)

	data, err := os.ReadFile(dest)
	assert.NoError(t, err)
	assert.Equal(t, content, string(data))

	info, err := os.Stat(dest)
	assert.NoError(t, err)
	assert.Equal(t, size, info.Size())
}

func TestFetcher_Fetch_CreatesParentDirs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "data")
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, newTestLogger())
	dest := filepath.Join(t.TempDir(), "a", "b", "c", "file.csv")

	_, err := f.Fetch(context.Background(), server.URL, dest)
	assert.NoError(t, err)
	assert.FileExists(t, dest)
}

func TestFetcher_Fetch_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(5*time.Second, newTestLogger())
	dest := filepath.Join(t.TempDir(), "file.csv")

	_, err := f.Fetch(context.Background(), server.URL, dest)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
	assert.NoFileExists(t, dest)
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	f := NewFetcher(20*time.Millisecond, newTestLogger())
	dest := filepath.Join(t.TempDir(), "file.csv")

	_, err := f.Fetch(context.Background(), server.URL, dest)
	assert.Error(t, err)
}

func TestFetcher_Fetch_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(5*time.Second, newTestLogger())
	_, err := f.Fetch(ctx, server.URL, filepath.Join(t.TempDir(), "file.csv"))
	assert.ErrorIs(t, err, context.Canceled)
}
