package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFileLoggerText(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "tidycat-logging-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "run.log")
	logger, err := NewFileLogger(FileLoggerConfig{Path: path, Format: FormatText, Level: InfoLevel})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Debug("should be filtered", nil)
	logger.Info("deleted duplicate", Fields{"path": "/data/b.txt"})
	logger.Error("delete failed", errors.New("permission denied"), Fields{"path": "/data/c.txt"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	content := string(data)

	if strings.Contains(content, "should be filtered") {
		t.Error("debug entry should be filtered at info level")
	}
	if !strings.Contains(content, "deleted duplicate") || !strings.Contains(content, "path=/data/b.txt") {
		t.Errorf("missing info entry, got:\n%s", content)
	}
	if !strings.Contains(content, `error="permission denied"`) {
		t.Errorf("missing error detail, got:\n%s", content)
	}
}

func TestFileLoggerJSON(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "tidycat-logging-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "run.log")
	logger, err := NewFileLogger(FileLoggerConfig{Path: path, Format: FormatJSON, Level: DebugLevel})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Info("copied file", Fields{"src": "/y/a.txt", "dst": "/x/a.txt"})
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	var entry struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log line is not valid JSON: %v", err)
	}
	if entry.Level != "info" || entry.Message != "copied file" {
		t.Errorf("entry = %+v, want info/copied file", entry)
	}
	if entry.Fields["src"] != "/y/a.txt" {
		t.Errorf("fields = %v, want src=/y/a.txt", entry.Fields)
	}
}

func TestFileLoggerCreatesDirectory(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "tidycat-logging-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "nested", "deeper", "run.log")
	logger, err := NewFileLogger(FileLoggerConfig{Path: path, Format: FormatText, Level: InfoLevel})
	if err != nil {
		t.Fatalf("NewFileLogger() should create parent dirs, got %v", err)
	}
	logger.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file should exist: %v", err)
	}
}
