package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/oidkit/internal/oid"
	"github.com/roach88/oidkit/internal/registry"
	"github.com/roach88/oidkit/internal/testutil"
)

// createTestStore creates a new store in a temp directory for testing.
// Import IDs come from a sequential generator.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator(10)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// entry builds a registry entry, failing the test on invalid arcs.
func entry(t *testing.T, name, description string, arcs ...uint32) registry.Entry {
	t.Helper()
	id, err := oid.New(arcs...)
	if err != nil {
		t.Fatalf("oid.New(%v) failed: %v", arcs, err)
	}
	return registry.Entry{Name: name, OID: id, Description: description}
}

// createTestRegistry builds a registry from entries.
func createTestRegistry(t *testing.T, entries ...registry.Entry) *registry.Registry {
	t.Helper()
	reg, err := registry.New(entries)
	if err != nil {
		t.Fatalf("registry.New() failed: %v", err)
	}
	return reg
}
