// Package logging provides the core's ambient structured logger: a single
// package-level *slog.Logger discarding everything until Init is called.
// Grounded on cmd/hiveexplorer/logger/logger.go, minus the log-file
// rotation/retention-days machinery — this core has no long-running daemon
// producing a log directory to prune, just a CLI invocation writing to a
// stream its caller chooses.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// L is the logger every package in this module logs through. It discards
// all output until Init enables it.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool       // if false, all logging is discarded
	Writer  io.Writer  // destination when enabled; default os.Stderr
	Level   slog.Level // minimum level; default LevelInfo
}

// DefaultOptions returns logging disabled (discard), matching the
// library's default before any CLI flag enables it.
func DefaultOptions() Options {
	return Options{Enabled: false}
}

// Init configures L. Call once, from cmd/schemectl's root command, before
// any core operation logs.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level}))
}

// Debug logs at debug level through L.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at info level through L.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at warn level through L.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at error level through L.
func Error(msg string, args ...any) { L.Error(msg, args...) }
