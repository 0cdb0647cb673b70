package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	logger, err := New(false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug should be disabled by default")
	}

	logger, err = New(true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug should be enabled with debug=true")
	}
}

func TestNewFile_NopWithoutDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcdir.log")

	logger, err := NewFile(false, path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	logger.Info("ignored")

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No log file should be created without debug")
	}
}

func TestNewFile_WritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "calcdir.log")

	logger, err := NewFile(true, path)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	logger.Debug("catalog loaded", zap.Int("calculators", 9))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "catalog loaded") {
		t.Errorf("Log should contain the message, got %q", data)
	}
}
