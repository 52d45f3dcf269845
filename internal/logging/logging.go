// Package logging builds the zerolog loggers used across the review tools.
//
// Logs always go to stderr. On the serve path stdout carries the JSON-RPC
// stream and must never receive log lines.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "TOFMS_LOG_LEVEL"
	EnvFormat = "TOFMS_LOG_FORMAT"
)

// ParseLevel maps debug, info, warn and error to zerolog levels. Anything
// else, including the empty string, is info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a timestamped logger writing to w. When console is set the
// output is the human-readable zerolog console format instead of JSON.
func New(w io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// FromEnv builds the stderr logger from TOFMS_LOG_LEVEL and TOFMS_LOG_FORMAT.
// The console format is used when stderr is a terminal or the format is
// "console"; "json" forces JSON.
func FromEnv() zerolog.Logger {
	level := ParseLevel(os.Getenv(EnvLevel))
	var console bool
	switch strings.ToLower(os.Getenv(EnvFormat)) {
	case "console":
		console = true
	case "json":
		console = false
	default:
		fd := os.Stderr.Fd()
		console = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return New(os.Stderr, level, console)
}

// Component tags every event from the returned logger with its component.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
