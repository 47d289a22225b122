package testutil

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestWriteFile_CreatesNestedDirs(t *testing.T) {
	dir := t.TempDir()

	path := WriteFile(t, dir, filepath.Join("a", "b", "corpus.txt"), "కా")
	if got := ReadFile(t, path); got != "కా" {
		t.Errorf("ReadFile = %q, want %q", got, "కా")
	}
}

func TestCaptureHandler_RecordsAndCounts(t *testing.T) {
	h := NewCaptureHandler()
	logger := slog.New(h)

	logger.Warn("segmentation failure", slog.Int("line", 3))
	logger.Warn("segmentation failure", slog.Int("line", 4))
	logger.Info("done")

	if got := h.Count(slog.LevelWarn, "segmentation failure"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}

	if got := h.Attrs(1)["line"]; got != int64(4) {
		t.Errorf("Attrs(1)[line] = %v, want 4", got)
	}

	if len(h.Records()) != 3 {
		t.Errorf("Records() len = %d, want 3", len(h.Records()))
	}
}
