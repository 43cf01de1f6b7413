package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_SilentWithoutLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	built, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if built.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected no-op logger when no level is configured")
	}
}

func TestNew_ReadsEnvironment(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "WARN")
	built, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if built.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled at warn level")
	}
	if !built.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn to be enabled")
	}
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatalf("expected an unknown level to fail")
	}
}

func TestNewLogger_WritesConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	built, err := newLogger("debug", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	built.Named("form").Debug("row replaced")

	line := buf.String()
	for _, fragment := range []string{"DEBUG", "form", "row replaced"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
}

func TestNewLogger_PlainLevelsOffTerminal(t *testing.T) {
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open %s: %v", os.DevNull, err)
	}
	defer devNull.Close()
	if isTerminal(devNull) {
		t.Fatalf("expected %s not to be a terminal", os.DevNull)
	}

	path := filepath.Join(t.TempDir(), "formlist.log")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if isTerminal(file) {
		t.Fatalf("expected a regular file not to be a terminal")
	}
	built, err := newLogger("info", file)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	built.Info("saved")
	if err := file.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(out), "INFO") {
		t.Fatalf("expected a plain INFO level in %q", out)
	}
	if strings.Contains(string(out), "\x1b[") {
		t.Fatalf("expected no color escapes in %q", out)
	}
}

func TestInitialize_InstallsLogger(t *testing.T) {
	t.Cleanup(func() { current.Store(nil) })

	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected the default logger to be silent")
	}
	if err := Initialize("error"); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected the installed logger to log errors")
	}
}
