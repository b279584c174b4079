package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/namuve/frontdesk/internal/shared/config"
)

var (
	Logger      *slog.Logger
	atomicLevel *slog.LevelVar
)

// Init builds the process logger. serverMode "debug" adds source locations to every level.
func Init(cfg *config.LoggerConfig, serverMode string) error {
	writer, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}

	atomicLevel = new(slog.LevelVar)
	atomicLevel.Set(parseLevel(cfg.Level))

	sourceLevels := []slog.Level{slog.LevelWarn, slog.LevelError}
	if serverMode == "debug" {
		sourceLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	}

	Logger = slog.New(newHandler(cfg.Format, writer, atomicLevel, sourceLevels))
	slog.SetDefault(Logger)
	return nil
}

// parseLevel falls back to info for empty or unknown names.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(path string) (io.Writer, error) {
	switch strings.ToLower(path) {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	}
}

// newHandler returns the JSON handler for format "json" and a tint console
// handler otherwise. Colour is only used on a terminal.
func newHandler(format string, w io.Writer, level slog.Leveler, sourceLevels []slog.Level) slog.Handler {
	var base slog.Handler
	if format == "json" {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		base = tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  time.DateTime,
			NoColor:     !isTerminal(w),
			ReplaceAttr: tintErrAttr,
		})
	}
	return NewConditionalSourceHandler(base, sourceLevels...)
}

// tintErrAttr renders error values with tint's highlighted error formatting.
func tintErrAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return a
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Get returns the process logger, building a console logger at info level
// when Init has not run (tests, the schema command).
func Get() *slog.Logger {
	if Logger == nil {
		Logger = slog.New(newHandler("console", os.Stdout, slog.LevelInfo,
			[]slog.Level{slog.LevelWarn, slog.LevelError}))
		slog.SetDefault(Logger)
	}
	return Logger
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
