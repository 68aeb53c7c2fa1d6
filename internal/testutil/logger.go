// Package testutil provides test utilities for structured logging.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// LogBuffer collects text-formatted log output for assertions.
// Safe for concurrent use by handlers running on several goroutines.
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureLogger returns a logger at the given level and the buffer it writes to.
func NewCaptureLogger(level slog.Level) (*slog.Logger, *LogBuffer) {
	lb := &LogBuffer{}
	return slog.New(slog.NewTextHandler(lb, &slog.HandlerOptions{Level: level})), lb
}

func (lb *LogBuffer) Write(p []byte) (int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.Write(p)
}

// String returns everything logged so far.
func (lb *LogBuffer) String() string {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return lb.buf.String()
}

// Lines returns the logged records that contain every substring in match.
func (lb *LogBuffer) Lines(match ...string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(lb.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		keep := true
		for _, m := range match {
			if !strings.Contains(line, m) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}
