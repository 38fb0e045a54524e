// Package testutil provides shared helpers for store and lifecycle tests.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Loboguar4/TaskForge/internal/logging"
	"github.com/Loboguar4/TaskForge/internal/storage"
	"github.com/Loboguar4/TaskForge/internal/store"
)

// Clock is a manually advanced time source for deterministic timer tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at the given instant.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the clock's current instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// OpenStore opens a fresh store backed by a file in a temp directory
// and returns it with its backing path, so tests can reopen it.
func OpenStore(t *testing.T) (*store.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.yaml")
	return ReopenStore(t, path), path
}

// ReopenStore opens a store over an existing (or absent) task file.
func ReopenStore(t *testing.T, path string) *store.Store {
	t.Helper()

	st, err := store.Open(storage.NewFileStore(path), logging.Nop())
	if err != nil {
		t.Fatalf("Failed to open store at %s: %v", path, err)
	}
	return st
}
