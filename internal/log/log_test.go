package log

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithFields(Fields{"stage": "faces"}).Debug("stage finished")

	out := buf.String()
	if !strings.Contains(out, "stage finished") {
		t.Errorf("message missing from %q", out)
	}
	if !strings.Contains(out, "faces") {
		t.Errorf("field missing from %q", out)
	}
	if !strings.Contains(out, "log_test.go") {
		t.Errorf("caller missing from %q", out)
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Errorf("level: got %s, want warning", logger.GetLevel())
	}

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info written at warn level: %q", buf.String())
	}
}

func TestNew_DefaultLevel(t *testing.T) {
	logger, err := New(Options{Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level: got %s, want info", logger.GetLevel())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "chatty"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestNew_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vision.log")
	logger, err := New(Options{File: file, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("engine ready")

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "engine ready") {
		t.Errorf("log file content: %q", data)
	}
}

func TestCallerFormatter(t *testing.T) {
	got := CallerFormatter(&runtime.Frame{
		File:     "/src/internal/vision/engine.go",
		Line:     42,
		Function: "github.com/ironsheep/vision-mcp/internal/vision.(*Engine).Detect",
	})
	if got != " [engine.go:42][Detect()]" {
		t.Errorf("got %q", got)
	}
}
