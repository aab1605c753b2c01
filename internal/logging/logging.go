// Package logging configures the process-wide slog logger.
//
// Logging is a side channel only: nothing in the engine or the UI depends on
// it, and tests run with Discard.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
)

// Options selects the sinks and encoding of the default logger.
type Options struct {
	Debug  bool
	Format string // config.LogFormatJSON or config.LogFormatText

	// Console receives every record. Defaults to os.Stdout.
	Console io.Writer

	// FilePath is the file sink. Empty uses DefaultFilePath;
	// config.LogFileDisabled turns the file sink off.
	FilePath string
}

// Setup installs the default slog logger and returns the file sink to close
// on exit (nil when no file is open). A file that cannot be opened is
// reported on stderr and skipped; the console sink keeps working.
func Setup(opts Options) (io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	writers := []io.Writer{console}

	var logFile *os.File
	if opts.FilePath != config.LogFileDisabled {
		logPath := opts.FilePath
		var err error
		if logPath == "" {
			logPath, err = DefaultFilePath()
		}
		if err == nil {
			// O_TRUNC resets logs on restart to prevent indefinite growth.
			logFile, err = os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		} else {
			writers = append(writers, logFile)
		}
	}

	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	handler, err := NewHandler(io.MultiWriter(writers...), opts.Format, &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	})
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	slog.SetDefault(slog.New(handler))

	slog.Debug(config.MsgLoggingReady,
		config.LogKeyComponent, config.CompLogging,
		config.LogKeyFormat, formatOrDefault(opts.Format))

	if logFile == nil {
		return nil, nil
	}
	return logFile, nil
}

// NewHandler builds a handler writing to w in the requested format.
// The text format stamps records the way the clock displays time.
func NewHandler(w io.Writer, format string, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch formatOrDefault(format) {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(w, opts), nil
	case config.LogFormatText:
		textOpts := slog.HandlerOptions{}
		if opts != nil {
			textOpts = *opts
		}
		textOpts.ReplaceAttr = clockTimestamps(textOpts.ReplaceAttr)
		return slog.NewTextHandler(w, &textOpts), nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrLogFormat, format)
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// DefaultFilePath determines the platform-specific cache directory for logs.
func DefaultFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

var logTimeFormatter = engine.NewFormatter(nil)

// clockTimestamps rewrites the top-level time attribute as
// "[" + config.LogTimePattern + "]".
func clockTimestamps(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
			if s, err := logTimeFormatter.Format(engine.NewInstant(a.Value.Time()), config.LogTimePattern); err == nil {
				a = slog.String(slog.TimeKey, "["+s+"]")
			}
		}
		if next != nil {
			return next(groups, a)
		}
		return a
	}
}

func formatOrDefault(format string) string {
	if format == "" {
		return config.DefaultLogFormat
	}
	return format
}
