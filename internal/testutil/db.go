// Package testutil provides test utilities for database setup.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/patchview/internal/history"
)

// NewTestStore creates a history store backed by a temporary database.
// The store is closed and the database removed when the test finishes.
func NewTestStore(t *testing.T, maxEntries int) *history.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path, maxEntries)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}
