// Package log builds the logger used by sapcli and the adt package.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"sapcli/internal/config"
)

// NewLogger returns a logger configured by cfg. The returned file, if any,
// is the log output and must be closed by the caller.
func NewLogger(cfg config.LogConfig) (*log.Logger, *os.File, error) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LogConfig, w io.Writer) (*log.Logger, *os.File, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           log.WarnLevel,
	})

	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		logger.SetLevel(level)
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	case "", "text":
		logger.SetFormatter(log.TextFormatter)
	default:
		return nil, nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	var f *os.File
	if cfg.Path != "" {
		var err error
		f, err = os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logger.SetOutput(f)
	}

	return logger, f, nil
}
