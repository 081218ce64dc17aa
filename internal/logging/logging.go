// Package logging configures the process-wide zerolog logger and provides the
// severity levels used by launch code, including ACTION_STOPPED for operations
// that were aborted but handled.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the rotated log file inside the log directory
const LogFile = "lml.log"

// Severity of a log line
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityActionStopped // Operation aborted and reported; not itself an error
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityActionStopped:
		return "ACTION_STOPPED"
	default:
		return "UNKNOWN"
	}
}

func (s Severity) level() zerolog.Level {
	switch s {
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityWarn, SeverityActionStopped:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Options configures Init
type Options struct {
	LogDir  string    // Directory for the rotated log file; empty disables file logging
	Level   string    // zerolog level name, default "info"
	Console io.Writer // Optional human-readable output (e.g. os.Stderr with --verbose)
}

// Init replaces the global logger. The returned closer flushes the log file.
func Init(opts Options) (io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
		level = parsed
	}

	var writers []io.Writer
	var file *lumberjack.Logger
	if opts.LogDir != "" {
		if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   filepath.Join(opts.LogDir, LogFile),
			MaxSize:    1,
			MaxBackups: 2,
		}
		writers = append(writers, file)
	}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: "15:04:05"})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()

	if file == nil {
		return io.NopCloser(nil), nil
	}
	return file, nil
}

// Log writes msg with the given severity to the global logger
func Log(sev Severity, msg string) {
	log.WithLevel(sev.level()).Str("severity", sev.String()).Msg(msg)
}

// Logf is Log with formatting
func Logf(sev Severity, format string, args ...any) {
	Log(sev, fmt.Sprintf(format, args...))
}
