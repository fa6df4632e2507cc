package log

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"sapcli/internal/config"
)

func TestGoodNewLogger(t *testing.T) {
	for _, c := range []config.LogConfig{
		{},
		{Level: "debug", Format: "json"},
		{Level: "info", Format: "logfmt"},
		{Path: filepath.Join(t.TempDir(), "sapcli.log")},
	} {
		_, f, err := NewLogger(c)
		if err != nil {
			t.Errorf("NewLogger(%v) => _, _, %v, want _, _, nil", c, err)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestBadNewLogger(t *testing.T) {
	for _, c := range []config.LogConfig{
		{Level: "chatty"},
		{Format: "xml"},
		{Path: "\x00"},
	} {
		_, f, err := NewLogger(c)
		if err == nil {
			t.Errorf("NewLogger(%v) => _, _, nil, want _, _, error", c)
		}
		if f != nil {
			f.Close()
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := newLogger(config.LogConfig{}, &buf)
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want %v", logger.GetLevel(), log.WarnLevel)
	}

	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info message logged at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn message missing: %q", buf.String())
	}
}
