package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediapair/internal/config"
	"mediapair/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "dragdrop")
	logger.Info("gesture released", logging.List("video"), logging.String("note", "two words"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO dragdrop: gesture released") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, "list=video") {
		t.Fatalf("expected list field, got %q", content)
	}
	if !strings.Contains(content, `note="two words"`) {
		t.Fatalf("expected quoted value, got %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")
	logger, err := logging.New(logging.Options{Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") {
		t.Fatalf("info line should be filtered, got %q", content)
	}
	if !strings.Contains(content, "WARN shown") {
		t.Fatalf("expected warn line, got %q", content)
	}
}

func TestJSONLoggerWritesStructuredFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("committed", logging.Int("pairs", 3))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["msg"] != "committed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry["pairs"] != float64(3) {
		t.Fatalf("unexpected pairs: %v", entry["pairs"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFileLoggerWritesOnlyToLogDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFileLogger(&cfg)
	if err != nil {
		t.Fatalf("NewFileLogger returned error: %v", err)
	}
	logger.Info("buffer started")

	if content := readLog(t, cfg.LogFilePath()); !strings.Contains(content, "buffer started") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestWithContextAddsGestureAndCommitIDs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	base, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithGestureID(context.Background(), "g-1")
	ctx = logging.WithCommitID(ctx, "c-9")
	logging.WithContext(ctx, base).Info("tagged")

	content := readLog(t, logPath)
	if !strings.Contains(content, "gesture_id=g-1") || !strings.Contains(content, "commit_id=c-9") {
		t.Fatalf("expected context ids, got %q", content)
	}
	if _, ok := logging.GestureIDFromContext(context.Background()); ok {
		t.Fatal("empty context should carry no gesture id")
	}
}

func TestWarnFillsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.Warn(logger, "pair_unmatched", "subtitle dropped",
		logging.Impact("subtitle not saved"),
		logging.Error(errors.New("no video")),
	)

	content := readLog(t, logPath)
	for _, want := range []string{"event_type=pair_unmatched", "error_hint=", `impact="subtitle not saved"`, `error="no video"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestFailKeepsCallerHint(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "fail.log")
	logger, err := logging.New(logging.Options{OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.Fail(logger, "commit_failed", "commit failed", logging.Hint("retry"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "error_hint=retry") || strings.Count(content, "error_hint=") != 1 {
		t.Fatalf("expected the caller hint only once, got %q", content)
	}
	if strings.Contains(content, "impact=") {
		t.Fatalf("errors carry no default impact, got %q", content)
	}
	logging.Fail(nil, "ignored", "nil logger is a no-op")
}

func TestNopLoggerIsSilent(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should never be enabled")
	}
}
