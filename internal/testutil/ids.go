// Package testutil provides deterministic helpers shared by package tests.
package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined import IDs for testing.
//
// This enables deterministic test execution and golden output comparison.
// It satisfies store.IDGenerator.
//
// Thread-safety: FixedIDGenerator is safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewFixedIDGenerator("import-1", "import-2")
//	gen.Generate() // "import-1"
//	gen.Generate() // "import-2"
//	gen.Generate() // panic: all IDs exhausted
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// NewSequentialIDGenerator creates a generator that yields n IDs of the form
// "00000000-0000-7000-8000-00000000000N", shaped like UUIDv7 strings.
func NewSequentialIDGenerator(n int) *FixedIDGenerator {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("00000000-0000-7000-8000-%012d", i+1)
	}
	return NewFixedIDGenerator(ids...)
}

// Generate returns the next predetermined ID.
//
// Panics if all IDs have been consumed, so a test that imports more often
// than it planned for fails loudly.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedIDGenerator: all IDs exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
