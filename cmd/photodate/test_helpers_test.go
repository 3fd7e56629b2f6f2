package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photodate/internal/config"
	"photodate/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	archive    string
}

// setupCLITestEnv writes a config whose state lives in a temp directory and
// whose exiftool binary does not exist, so runs use the built-in reader.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t,
		testsupport.WithExiftoolOptional(),
		testsupport.WithExiftoolBinary(filepath.Join(t.TempDir(), "no-exiftool")),
	)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		archive:    t.TempDir(),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
state_dir = %q
log_dir = %q

[exiftool]
binary = %q
required = %t

[journal]
enabled = %t

[logging]
level = "warn"
retention_days = 0
`,
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		cfg.Exiftool.Binary,
		cfg.Exiftool.Required,
		cfg.Journal.Enabled,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
