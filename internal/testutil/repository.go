package testutil

import (
	"testing"

	"revstore/internal/blob"
	"revstore/internal/store"
)

// NewTestBlobStore creates a new in-memory blob store for testing.
func NewTestBlobStore() blob.Store {
	return blob.NewMemoryStore()
}

// NewTestRepository creates a repository wired with a stub clock, sequential
// IDs, and a silent logger. The clock is returned so tests can advance time
// between commits.
func NewTestRepository(t *testing.T) (*store.Repository, *StubClock) {
	t.Helper()
	clock := FixedClock()
	repo := store.NewRepository(NewTestBlobStore(), clock, NewStubIDGenerator(), store.NewNopLogger())
	return repo, clock
}
