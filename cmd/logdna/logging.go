package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/logdna/logdna-cli/internal/utils"
	"github.com/mattn/go-isatty"
)

// logLevel is raised to debug by --verbose.
var logLevel = new(slog.LevelVar)

// setupLogging sends warnings to stderr and everything to the log file. The
// returned func closes the file. A log file that can't be opened is not
// fatal for a CLI; stderr logging still works.
func setupLogging(logFile string) func() {
	logLevel.Set(slog.LevelWarn)

	stderrHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})

	file, err := openLogFile(logFile)
	if err != nil {
		slog.SetDefault(slog.New(stderrHandler))
		slog.Debug("log file unavailable", "error", err)
		return func() {}
	}

	interceptor := utils.NewLogInterceptor(file)
	fileHandler := slog.NewTextHandler(interceptor, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		// Do not include time as it is added by the log interceptor.
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stderrHandler, fileHandler)))
	return func() {
		interceptor.Close()
		file.Close()
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
