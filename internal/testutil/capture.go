package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// CaptureHandler is a slog.Handler that keeps every record it receives.
// It is safe for concurrent use.
type CaptureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewCaptureHandler returns an empty CaptureHandler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{}
}

func (c *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (c *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	c.records = append(c.records, r.Clone())
	c.mu.Unlock()

	return nil
}

func (c *CaptureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return c }
func (c *CaptureHandler) WithGroup(_ string) slog.Handler      { return c }

// Records returns a copy of the captured records.
func (c *CaptureHandler) Records() []slog.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]slog.Record(nil), c.records...)
}

// Count returns how many records with the given message and level were seen.
func (c *CaptureHandler) Count(level slog.Level, msg string) int {
	n := 0

	for _, r := range c.Records() {
		if r.Level == level && r.Message == msg {
			n++
		}
	}

	return n
}

// Attrs returns the attributes of the i-th record keyed by name.
func (c *CaptureHandler) Attrs(i int) map[string]any {
	m := make(map[string]any)

	c.Records()[i].Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})

	return m
}
