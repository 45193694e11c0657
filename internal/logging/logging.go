// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup installs the global logger. Debug gin mode gets a human readable
// console writer, everything else logs JSON lines to stdout.
func Setup(level, ginMode string) zerolog.Logger {
	return SetupWriter(os.Stdout, level, ginMode)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, ginMode string) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if strings.EqualFold(strings.TrimSpace(ginMode), "debug") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

func parseLevel(raw string) zerolog.Level {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	level, err := zerolog.ParseLevel(trimmed)
	if err != nil || trimmed == "" {
		return zerolog.InfoLevel
	}
	return level
}
