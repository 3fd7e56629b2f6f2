package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photodate/internal/config"
	"photodate/internal/logging"
)

func TestConsoleLoggerFormatsPathFirst(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "workflow").Info("timestamps applied",
		logging.String("target", "2019-01-04 16:00:00"),
		logging.Path("2019.01.02-05 Поездка/IMG_20190104_160000.jpg"),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "INFO [workflow] timestamps applied path=") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if strings.Index(line, "path=") > strings.Index(line, "target=") {
		t.Fatalf("expected path before other fields: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "debug",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigWritesRunFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg, "0f8fad5b-d9cb-469f-a165-70867728950e")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("file record", logging.Path("a/b.jpg"))

	matches, err := filepath.Glob(filepath.Join(cfg.Paths.LogDir, logging.LogFilePattern))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one run log file, got %v (%v)", matches, err)
	}
	if !strings.Contains(filepath.Base(matches[0]), "0f8fad5b") {
		t.Fatalf("expected run id prefix in file name, got %s", matches[0])
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record); err != nil {
		t.Fatalf("expected a JSON record, got %q: %v", data, err)
	}
	if record["run_id"] != "0f8fad5b-d9cb-469f-a165-70867728950e" || record["path"] != "a/b.jpg" {
		t.Fatalf("unexpected record fields: %v", record)
	}
}

func TestRunFileKeepsDebugRecords(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	cfg.Logging.Level = "error"

	logger, err := logging.NewFromConfig(&cfg, "run-quiet")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("date already set", logging.Path("2018.07.14 Beach/a.jpg"))

	matches, err := filepath.Glob(filepath.Join(cfg.Paths.LogDir, logging.LogFilePattern))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one run log file, got %v (%v)", matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(data), "date already set") {
		t.Fatalf("expected debug record in run log, got %q", data)
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "photodate-20200101-000000.log")
	current := filepath.Join(dir, "photodate-20200102-000000.log")
	unrelated := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, current, unrelated} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		stale := time.Now().AddDate(0, 0, -90)
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), 30, logging.RetentionTarget{
		Dir:     dir,
		Pattern: logging.LogFilePattern,
		Exclude: []string{current},
	})
	if removed != 1 {
		t.Fatalf("expected one removal, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be pruned", old)
	}
	for _, keep := range []string{current, unrelated} {
		if _, err := os.Stat(keep); err != nil {
			t.Fatalf("expected %s to remain: %v", keep, err)
		}
	}
	if got := logging.CleanupOldLogs(nil, 0, logging.RetentionTarget{Dir: dir}); got != 0 {
		t.Fatalf("expected retention 0 to disable pruning, got %d", got)
	}
}
