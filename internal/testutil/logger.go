// Package testutil provides test helpers for logging and SQL round trips.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogCapture is a slog logger for tests. Every record is echoed to t.Log
// and kept so assertions can inspect what was logged.
type LogCapture struct {
	*slog.Logger

	t   testing.TB
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewTestLogger returns a debug-level LogCapture bound to t. Output only
// shows on failure or with -v.
func NewTestLogger(t testing.TB) *LogCapture {
	t.Helper()
	c := &LogCapture{t: t}
	c.Logger = slog.New(slog.NewTextHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return c
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	c.buf.Write(p)
	c.mu.Unlock()
	c.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Lines returns the captured records in text-handler form, one per line.
func (c *LogCapture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := strings.TrimRight(c.buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Contains reports whether any captured record contains s.
func (c *LogCapture) Contains(s string) bool {
	for _, line := range c.Lines() {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
