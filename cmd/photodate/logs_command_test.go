package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLogsWithoutRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No run logs yet.")
}

func TestLogsShowsLatestRun(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(env.cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	older := filepath.Join(env.cfg.Paths.LogDir, "photodate-20260301-080000-aaaa1111.log")
	newer := filepath.Join(env.cfg.Paths.LogDir, "photodate-20260302-080000-bbbb2222.log")
	if err := os.WriteFile(older, []byte("old line\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(newer, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, newer)
	requireContains(t, out, "two\nthree")
	requireNotContains(t, out, "one")

	out, _, err = runCLI(t, []string{"logs", "aaaa"}, env.configPath)
	if err != nil {
		t.Fatalf("logs by run: %v", err)
	}
	requireContains(t, out, "old line")

	if _, _, err := runCLI(t, []string{"logs", "ffff"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}
