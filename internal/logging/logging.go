// Package logging builds the zerolog loggers used across datagrid and carries
// them through context.Context.
package logging

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Log output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// logDirPerm and logFilePerm are the permissions used when creating log files.
const (
	logDirPerm  = 0o750
	logFilePerm = 0o600
)

// Config describes where and how to log.
type Config struct {
	// Level is a zerolog level name. Unknown names fall back to info.
	Level string

	// Format is "console" (human readable) or "json".
	Format string

	// File, when set, receives logs in addition to the console writer.
	File string
}

// Result is a constructed logger plus the file it writes to, if any.
type Result struct {
	Logger zerolog.Logger

	// FilePath is the log file in use, empty when logging only to the console.
	FilePath string

	// FallbackReason explains why file logging was requested but not used.
	FallbackReason string

	file *os.File
}

// UsingFile reports whether the logger writes to a file.
func (r *Result) UsingFile() bool {
	return r.file != nil
}

// Close closes the log file handle, if any.
func (r *Result) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger creates a logger writing to console (stderr-like) and optionally
// to cfg.File. A log file that cannot be opened is not fatal: the logger falls
// back to console output and records the reason.
func NewLogger(cfg Config, console io.Writer) *Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Format == FormatJSON {
		writers = append(writers, console)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: time.RFC3339,
		})
	}

	result := &Result{}
	if cfg.File != "" {
		f, openErr := openLogFile(cfg.File)
		if openErr != nil {
			result.FallbackReason = openErr.Error()
		} else {
			result.file = f
			result.FilePath = cfg.File
			writers = append(writers, f)
		}
	}

	result.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return result
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePerm)
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
