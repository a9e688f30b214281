// Package testutil isolates shellgen tests from the caller's real
// environment.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points every path shellgen consults at per-test
// temporary directories, so tests never touch the user's home
// directory or real dotfiles. It returns the temp root; sources/,
// home/ and target/ exist underneath it.
//
// Cleanup is handled by t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	// Tilde expansion and chezmoi both resolve against HOME.
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	// Default --target for commands that honor the env fallback.
	t.Setenv("SHELLGEN_TARGET", filepath.Join(tmpDir, "target"))

	dirs := []string{
		filepath.Join(tmpDir, "home"),
		filepath.Join(tmpDir, "target"),
		filepath.Join(tmpDir, "sources"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}
	return tmpDir
}

// WriteFile writes content at dir/name, creating parent directories,
// and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
