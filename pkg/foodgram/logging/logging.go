// Package logging configures colored structured logging with tint.
// When a log file is configured the same stream is also written through
// lumberjack for rotation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs the default slog logger. level is one of debug, info,
// warn, error (default info). file enables a rotating file sink when set.
func Setup(level, file string) {
	var w io.Writer = os.Stderr
	noColor := false
	if file != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    64, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		})
		noColor = true
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      parseLevel(level),
			TimeFormat: time.Kitchen,
			NoColor:    noColor,
		}),
	))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
