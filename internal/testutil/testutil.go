// Package testutil provides shared helpers for package tests: a slog handler
// that records log output and fixture file writers.
//
// Typical usage:
//
//	func TestMyCollect(t *testing.T) {
//	    logs := testutil.NewCaptureHandler()
//	    logger := slog.New(logs)
//	    corpus := testutil.WriteFile(t, t.TempDir(), "corpus.txt", "కా")
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to dir/name and returns the full path. The test
// fails immediately if the file cannot be written.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	err = os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}

	return path
}

// ReadFile returns the contents of path, failing the test on error.
func ReadFile(tb testing.TB, path string) string {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}
