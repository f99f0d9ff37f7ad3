// Package logging provides the structured logger used throughout the
// driver and CLI. It is adapted from the teacher's
// pkg/test/utils/logger.go: the same Logger interface and charmbracelet/log
// backing, minus the *testing.T output-buffering concern (there is no
// parallel test harness output to interleave here, just a one-shot CLI run).
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dustinkirkland/golang-petname"
)

// Logger is the logging surface the driver and expanders use. It mirrors
// the teacher's testutils.Logger shape, minus the test-buffering methods
// that don't apply outside a *testing.T harness.
type Logger interface {
	Log(message string)
	// LogWithArgs formats message printf-style with args before logging it.
	LogWithArgs(message string, args ...interface{})
	Debug(message string)
	// DebugWithArgs formats message printf-style with args before logging it.
	DebugWithArgs(message string, args ...interface{})
	Error(message string)
	// ErrorWithArgs formats message printf-style with args before logging it.
	ErrorWithArgs(message string, args ...interface{})
	WithGroup(group string) Logger
}

// Level selects the verbosity of a new Logger, mirroring the CLI's
// --log_level flag ("debug" or "info").
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
)

// runLogger is the concrete Logger. Each process run is tagged once with a
// short, memorable correlation name generated via golang-petname -- the same
// library kuttl itself uses to name ephemeral per-run namespaces, borrowed
// here purely as a log-correlation tag with no cluster meaning.
type runLogger struct {
	logger *slog.Logger
	runTag string
}

// New creates a Logger at the given verbosity, tagged with a freshly
// generated run-correlation name.
func New(level Level) Logger {
	return newWithRunTag(level, petname.Generate(2, "-"))
}

func newWithRunTag(level Level, runTag string) Logger {
	opts := log.Options{
		ReportTimestamp: true,
	}
	if level == LevelDebug {
		opts.Level = log.DebugLevel
	} else {
		opts.Level = log.InfoLevel
	}
	handler := log.NewWithOptions(os.Stdout, opts)
	logger := slog.New(handler).With("run", runTag)
	return &runLogger{logger: logger, runTag: runTag}
}

func (r *runLogger) Log(message string) {
	r.logger.Info(message)
}

func (r *runLogger) LogWithArgs(message string, args ...interface{}) {
	r.logger.Info(fmt.Sprintf(message, args...))
}

func (r *runLogger) Debug(message string) {
	r.logger.Debug(message)
}

func (r *runLogger) DebugWithArgs(message string, args ...interface{}) {
	r.logger.Debug(fmt.Sprintf(message, args...))
}

func (r *runLogger) Error(message string) {
	r.logger.Error(message)
}

func (r *runLogger) ErrorWithArgs(message string, args ...interface{}) {
	r.logger.Error(fmt.Sprintf(message, args...))
}

func (r *runLogger) WithGroup(group string) Logger {
	return &runLogger{logger: r.logger.WithGroup(group), runTag: r.runTag}
}

// ParseLevel maps the CLI's --log_level flag value to a Level, defaulting to
// LevelInfo for anything other than "debug".
func ParseLevel(flag string) Level {
	if flag == "debug" {
		return LevelDebug
	}
	return LevelInfo
}
