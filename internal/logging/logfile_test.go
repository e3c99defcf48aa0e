package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateLogFilename(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected string
	}{
		{
			name:     "basic timestamp",
			time:     time.Date(2026, 3, 13, 9, 51, 5, 123000000, time.UTC),
			expected: "azmlops-20260313-095105-123.log",
		},
		{
			name:     "midnight",
			time:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "azmlops-20260101-000000-000.log",
		},
		{
			name:     "end of day",
			time:     time.Date(2026, 12, 31, 23, 59, 59, 999000000, time.UTC),
			expected: "azmlops-20261231-235959-999.log",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateLogFilename(tt.time); got != tt.expected {
				t.Errorf("GenerateLogFilename() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewLogFile_None(t *testing.T) {
	lf, err := NewLogFile(&LogConfig{Output: "none", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLogFile() error = %v", err)
	}
	defer lf.Close()

	if lf.Path != "" {
		t.Errorf("Path should be empty for 'none' output, got %q", lf.Path)
	}
	if lf.Writer() == nil {
		t.Error("Writer should not be nil")
	}
}

func TestNewLogFile_Stderr(t *testing.T) {
	lf, err := NewLogFile(&LogConfig{Output: "-", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLogFile() error = %v", err)
	}
	defer lf.Close()

	if lf.Writer() != os.Stderr {
		t.Error("Writer should be os.Stderr")
	}
}

func TestNewLogFile_AutoGenerate(t *testing.T) {
	dir := t.TempDir()
	lf, err := NewLogFile(&LogConfig{Dir: dir})
	if err != nil {
		t.Fatalf("NewLogFile() error = %v", err)
	}
	defer lf.Close()

	if lf.Path == "" {
		t.Fatal("Path should not be empty for auto-generated output")
	}
	if filepath.Dir(lf.Path) != dir {
		t.Errorf("Path should be in dir %q, got %q", dir, filepath.Dir(lf.Path))
	}
	if _, err := os.Stat(lf.Path); os.IsNotExist(err) {
		t.Errorf("Log file was not created: %s", lf.Path)
	}
}

func TestCleanupOldLogFiles(t *testing.T) {
	dir := t.TempDir()

	oldTime := time.Now().AddDate(0, 0, -10)
	newTime := time.Now().AddDate(0, 0, -3)

	oldFile := filepath.Join(dir, "azmlops-20260101-120000-000.log")
	if err := os.WriteFile(oldFile, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(oldFile, oldTime, oldTime); err != nil {
		t.Fatal(err)
	}

	newFile := filepath.Join(dir, "azmlops-20260110-120000-000.log")
	if err := os.WriteFile(newFile, []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(newFile, newTime, newTime); err != nil {
		t.Fatal(err)
	}

	otherFile := filepath.Join(dir, "other.log")
	if err := os.WriteFile(otherFile, []byte("other"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(otherFile, oldTime, oldTime); err != nil {
		t.Fatal(err)
	}

	if err := CleanupOldLogFiles(dir, 7); err != nil {
		t.Fatalf("CleanupOldLogFiles() error = %v", err)
	}

	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Errorf("old log file should have been deleted: %s", oldFile)
	}
	if _, err := os.Stat(newFile); os.IsNotExist(err) {
		t.Errorf("new log file should have been kept: %s", newFile)
	}
	if _, err := os.Stat(otherFile); os.IsNotExist(err) {
		t.Errorf("non-matching file should have been kept: %s", otherFile)
	}
}

func TestCleanupOldLogFiles_ZeroRetention(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "azmlops-20260101-120000-000.log")
	if err := os.WriteFile(file, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CleanupOldLogFiles(dir, 0); err != nil {
		t.Fatalf("CleanupOldLogFiles() error = %v", err)
	}
	if _, err := os.Stat(file); os.IsNotExist(err) {
		t.Errorf("file should have been kept with 0 retention: %s", file)
	}
}
