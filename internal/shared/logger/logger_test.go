package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namuve/frontdesk/internal/shared/config"
)

func TestInit_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontdesk.log")

	err := Init(&config.LoggerConfig{Level: "warn", Format: "json", OutputPath: path}, "release")
	require.NoError(t, err)
	t.Cleanup(func() { Logger = nil })

	Info("dropped below level")
	Warn("store call failed", "collection", "tblTickets")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.NotContains(t, out, "dropped below level")
	assert.Contains(t, out, `"msg":"store call failed"`)
	assert.Contains(t, out, `"collection":"tblTickets"`)
	assert.Contains(t, out, `"source"`)
}

func TestInit_UnknownLevelDefaultsToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontdesk.log")

	require.NoError(t, Init(&config.LoggerConfig{Level: "loud", Format: "json", OutputPath: path}, "release"))
	t.Cleanup(func() { Logger = nil })

	Debug("hidden")
	Info("visible")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.True(t, strings.Contains(string(data), "visible"))
}

func TestSlogLogger_WithKeepsAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontdesk.log")
	require.NoError(t, Init(&config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, "release"))
	t.Cleanup(func() { Logger = nil })

	l := NewLogger().Named("orchestrator").With("ticket_type", "Visit")
	l.Infow("ticket created", "business_id", 65)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"logger":"orchestrator"`)
	assert.Contains(t, out, `"ticket_type":"Visit"`)
	assert.Contains(t, out, `"business_id":65`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestInit_UnwritableOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frontdesk.log")
	assert.Error(t, Init(&config.LoggerConfig{OutputPath: path}, "release"))
}
