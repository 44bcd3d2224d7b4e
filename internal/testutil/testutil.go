// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// configEnv lists the environment variables that point the CLI at user state.
var configEnv = []string{
	"TPA_SEED_CONFIG",
	"TPA_SEED_TEMPLATE_DIR",
	"TPA_SEED_INSTALL_COMMAND",
}

// IsolateHome points HOME at a fresh temp directory and clears the CLI's
// environment overrides. It returns the default config file path inside it.
func IsolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range configEnv {
		t.Setenv(name, "")
	}
	return filepath.Join(home, ".tpa-seed", "config.yaml")
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteTree writes files, keyed by slash-separated path, under root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
}
