package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleRegistryYAML is a two-entry YAML registry used across package tests.
const SampleRegistryYAML = `oids:
  - name: p256
    arcs: [1, 2, 840, 10045, 3, 1, 7]
    description: NIST P-256
  - name: ed25519
    arcs: [1, 3, 101, 112]
    description: Ed25519 signature algorithm
`

// WriteFiles creates a temp directory holding the given files and returns
// its path. The directory is removed when the test ends.
func WriteFiles(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}
