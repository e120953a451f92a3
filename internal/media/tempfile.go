// Package media covers request-scoped file handling: temp files for uploads,
// OCR extraction, and audio transcoding.
package media

import (
	"fmt"
	"log/slog"
	"os"
)

// WriteTemp writes data to a fresh temporary file and returns its path with
// a cleanup func. Callers defer cleanup so the file is removed on every exit
// path, including validation and remote-call failures.
func WriteTemp(pattern string, data []byte) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("temp file cleanup failed", "path", path, "error", err)
		}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return path, cleanup, nil
}

// TempPath reserves a temporary file path for an output that another process
// will write, returning the path and a cleanup func.
func TempPath(pattern string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("temp file cleanup failed", "path", path, "error", err)
		}
	}
	return path, cleanup, nil
}
