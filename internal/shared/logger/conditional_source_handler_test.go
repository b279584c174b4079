package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, levels ...slog.Level) *slog.Logger {
	base := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewConditionalSourceHandler(base, levels...))
}

func TestConditionalSourceHandler_OnlyListedLevels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(l *slog.Logger)
		wantSource bool
	}{
		{"debug", func(l *slog.Logger) { l.Debug("record read") }, false},
		{"info", func(l *slog.Logger) { l.Info("record read") }, false},
		{"warn", func(l *slog.Logger) { l.Warn("record read") }, true},
		{"error", func(l *slog.Logger) { l.Error("record read") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newTestLogger(&buf, slog.LevelWarn, slog.LevelError))

			assert.Equal(t, tt.wantSource, bytes.Contains(buf.Bytes(), []byte("source=")), buf.String())
		})
	}
}

func TestConditionalSourceHandler_PointsAtCaller(t *testing.T) {
	var buf bytes.Buffer
	newTestLogger(&buf, slog.LevelError).Error("upload failed")

	assert.Contains(t, buf.String(), "conditional_source_handler_test.go")
}

func TestConditionalSourceHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelWarn).
		With("collection", "tblTickets").
		WithGroup("store")

	l.Warn("search failed", "status", 502)

	out := buf.String()
	assert.Contains(t, out, "collection=tblTickets")
	assert.Contains(t, out, "store.status=502")
	assert.Contains(t, out, "source=")
}
