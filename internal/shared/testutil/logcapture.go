package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// CapturedLog is one log record seen by a LogCapture.
type CapturedLog struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogCapture is a slog.Handler that keeps every record in memory so tests
// can assert on what was logged.
type LogCapture struct {
	t     testing.TB
	attrs []slog.Attr
	store *logStore
}

type logStore struct {
	mu   sync.Mutex
	logs []CapturedLog
}

// NewLogger returns a logger writing into a fresh LogCapture.
func NewLogger(t testing.TB) (*slog.Logger, *LogCapture) {
	capture := &LogCapture{t: t, store: &logStore{}}
	return slog.New(capture), capture
}

// Enabled implements slog.Handler. Every level is captured.
func (c *LogCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler.
func (c *LogCapture) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(c.attrs)+r.NumAttrs())
	for _, a := range c.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	c.store.mu.Lock()
	c.store.logs = append(c.store.logs, CapturedLog{Level: r.Level, Message: r.Message, Attrs: attrs})
	c.store.mu.Unlock()

	if c.t != nil {
		c.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler. Derived handlers share the same store.
func (c *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(c.attrs)+len(attrs))
	merged = append(merged, c.attrs...)
	merged = append(merged, attrs...)
	return &LogCapture{t: c.t, attrs: merged, store: c.store}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (c *LogCapture) WithGroup(string) slog.Handler {
	return c
}

// Logs returns a copy of every captured record.
func (c *LogCapture) Logs() []CapturedLog {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	out := make([]CapturedLog, len(c.store.logs))
	copy(out, c.store.logs)
	return out
}

// Find returns the records at level whose message contains msg.
func (c *LogCapture) Find(level slog.Level, msg string) []CapturedLog {
	var found []CapturedLog
	for _, l := range c.Logs() {
		if l.Level == level && strings.Contains(l.Message, msg) {
			found = append(found, l)
		}
	}
	return found
}

// AssertLogged fails the test unless a record at level contains msg.
func AssertLogged(t testing.TB, c *LogCapture, level slog.Level, msg string) {
	t.Helper()
	if len(c.Find(level, msg)) > 0 {
		return
	}
	t.Errorf("no %s log containing %q", level, msg)
	for _, l := range c.Logs() {
		t.Logf("  [%s] %s %v", l.Level, l.Message, l.Attrs)
	}
}

// AssertNoErrors fails the test if anything was logged at error level.
func AssertNoErrors(t testing.TB, c *LogCapture) {
	t.Helper()
	for _, l := range c.Logs() {
		if l.Level >= slog.LevelError {
			t.Errorf("unexpected error log: %s %v", l.Message, l.Attrs)
		}
	}
}
