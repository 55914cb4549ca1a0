// Package cli provides the command-line interface for gittyup.
// This file configures the zerolog logger used by all commands.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gittyup/gittyup/internal/config"
	"github.com/gittyup/gittyup/internal/errors"
	"github.com/gittyup/gittyup/internal/logging"
)

// logFileName is the rotating log file under ~/.gittyup/logs.
const logFileName = "gittyup.log"

// logFileWriter holds the log file writer for cleanup purposes.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// InitLogger creates and configures a zerolog.Logger based on verbosity
// flags.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Warn level (errors and warnings only)
//   - default: Info level (normal operation)
//
// Output format is determined by the terminal:
//   - TTY with colors enabled: Console writer with timestamps
//   - Non-TTY or NO_COLOR set: JSON output to stderr
//
// The logger also writes to ~/.gittyup/logs/gittyup.log with rotation when
// logCfg.Enabled is set. If the log file cannot be created, the logger
// continues with console-only output.
func InitLogger(verbose, quiet bool, logCfg config.LoggingConfig) zerolog.Logger {
	console := selectOutput()

	writer := console
	if logCfg.Enabled {
		if fileWriter, err := createLogFileWriter(logCfg); err == nil {
			logFileWriter = fileWriter
			writer = zerolog.MultiLevelWriter(console, fileWriter)
		}
	}

	logger := zerolog.New(writer).
		Level(selectLevel(verbose, quiet)).
		With().Timestamp().Logger().
		Hook(logging.NewSensitiveDataHook())
	log.Logger = logger
	return logger
}

// InitLoggerWithWriter creates a logger with a custom writer. This is
// primarily intended for testing.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(selectLevel(verbose, quiet)).
		With().Timestamp().Logger().
		Hook(logging.NewSensitiveDataHook())
}

// CloseLogFile closes the global log file writer if it was opened. Called
// during application shutdown.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput determines the appropriate output writer based on terminal
// capabilities and environment settings.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	return os.Stderr
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering so
// it can be used as a drop-in replacement.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer for the CLI log,
// wrapped with a filtering writer so credentials never reach disk.
func createLogFileWriter(logCfg config.LoggingConfig) (io.WriteCloser, error) {
	logDir, err := config.LogDir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    logCfg.MaxSizeMB,
		MaxBackups: logCfg.BackupCount,
		Compress:   true,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

// LogFilePath returns the path to the CLI log file, useful for displaying
// the log location to users.
func LogFilePath() (string, error) {
	logDir, err := config.LogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(logDir, logFileName), nil
}
