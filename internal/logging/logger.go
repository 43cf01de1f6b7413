package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar names the level used when none is passed explicitly
// ("debug", "info", "warn", "error"). Unset means silent.
const LogLevelEnvVar = "FORMLIST_LOG_LEVEL"

var current atomic.Pointer[zap.Logger]

// Initialize replaces the process logger. An empty level falls back to
// FORMLIST_LOG_LEVEL; when neither is set the logger is a no-op.
func Initialize(level string) error {
	built, err := New(level)
	if err != nil {
		return err
	}
	current.Store(built)
	return nil
}

// New builds a stderr console logger without installing it.
func New(level string) (*zap.Logger, error) {
	return newLogger(level, os.Stderr)
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeCaller = zapcore.ShortCallerEncoder
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return zap.New(core, zap.AddCaller()), nil
}

// isTerminal reports whether f is an interactive terminal. Character devices
// such as /dev/null are not.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// GetLogger returns the process logger, a no-op until Initialize succeeds.
func GetLogger() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Named scopes the process logger to a component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = GetLogger().Sync()
}
