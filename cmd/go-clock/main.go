package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-clock/internal/config"
	"github.com/tartampluch/go-clock/internal/engine"
	"github.com/tartampluch/go-clock/internal/logging"
	"github.com/tartampluch/go-clock/internal/ui"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	logFile := flag.String(config.FlagLogFile, "", config.FlagDescLogFile)
	logFormat := flag.String(config.FlagLogFormat, config.DefaultLogFormat, config.FlagDescLogFormat)

	var opts ui.Options
	flag.StringVar(&opts.Timezone, config.FlagTimezone, "", config.FlagDescTimezone)
	flag.StringVar(&opts.Show, config.FlagShow, "", config.FlagDescShow)
	flag.StringVar(&opts.TimePattern, config.FlagTimeFormat, "", config.FlagDescTimeFormat)
	flag.StringVar(&opts.DatePattern, config.FlagDateFormat, "", config.FlagDescDateFormat)
	flag.BoolVar(&opts.Serve, config.FlagServe, false, config.FlagDescServe)
	flag.StringVar(&opts.Port, config.FlagPort, "", config.FlagDescPort)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// Reject bad overrides before any window shows up.
	if err := validateOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, config.MsgFlagError, config.ErrInvalidFlags, err)
		return config.ExitCodeError
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// We configure structured logging (slog) early to capture startup issues.
	logCloser, err := logging.Setup(logging.Options{
		Debug:    *debugMode,
		Format:   *logFormat,
		FilePath: *logFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgFlagError, config.ErrInvalidFlags, err)
		return config.ExitCodeError
	}
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run initializes the Fyne application, wires dependencies, and starts the UI loop.
func run(ctx context.Context, opts ui.Options) error {
	// Initialize Fyne App.
	a := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	if opts != (ui.Options{}) {
		slog.Info(config.MsgPreferenceApply,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyTimezone, opts.Timezone,
			config.LogKeyShow, opts.Show,
			config.LogKeyPort, opts.Port,
		)
	}

	gui := ui.NewClockApp(a, ctx, opts)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Start the Application (blocks until main window closes).
	gui.Run()

	return nil
}

// validateOptions checks command line overrides. Empty values are not
// overrides and always pass.
func validateOptions(opts ui.Options) error {
	var errs []error

	if opts.Timezone != "" {
		if _, err := engine.LoadTimezone(opts.Timezone); err != nil {
			errs = append(errs, err)
		}
	}
	if opts.Show != "" {
		if _, err := ui.ParseShow(opts.Show); err != nil {
			errs = append(errs, err)
		}
	}

	f := engine.NewFormatter(nil)
	for _, p := range []string{opts.TimePattern, opts.DatePattern} {
		if err := f.Validate(p); err != nil {
			errs = append(errs, err)
		}
	}

	if opts.Port != "" {
		if port, err := strconv.Atoi(opts.Port); err != nil || port < config.MinPort || port > config.MaxPort {
			errs = append(errs, fmt.Errorf("%s: %q", config.ErrPortInvalid, opts.Port))
		}
	}

	return errors.Join(errs...)
}

// printVersion outputs the build information to stdout and exits.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}
