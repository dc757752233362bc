package store

import (
	"errors"
	"fmt"
)

// ConflictKind classifies why a single mutation could not be applied.
type ConflictKind string

const (
	// ConflictPathExists means a create/add mutation targeted an occupied path.
	ConflictPathExists ConflictKind = "path_already_exists"
	// ConflictPathMissing means a remove mutation targeted a path with no live entry.
	ConflictPathMissing ConflictKind = "path_does_not_exist"
	// ConflictOutOfSync means a remove carried a stale expected revision
	// (lost-update detection); the caller should re-read and retry.
	ConflictOutOfSync ConflictKind = "out_of_sync"
)

// Conflict records one failed mutation within a rejected transaction.
// Expected and Actual are only meaningful for ConflictOutOfSync.
type Conflict struct {
	Kind     ConflictKind `json:"kind"`
	Path     string       `json:"path"`
	Expected uint64       `json:"expected_revision,omitempty"`
	Actual   uint64       `json:"actual_revision,omitempty"`
}

func (c Conflict) String() string {
	if c.Kind == ConflictOutOfSync {
		return fmt.Sprintf("%s: %s (expected revision %d, current is %d)", c.Kind, c.Path, c.Expected, c.Actual)
	}
	return fmt.Sprintf("%s: %s", c.Kind, c.Path)
}

// ErrMissingAuthor is returned by Begin when no author is supplied.
var ErrMissingAuthor = errors.New("author is required")

// ErrEmptyHistory is returned by timestamp lookup when no commit has ever
// been recorded. Construction performs an implicit initial commit, so seeing
// this error indicates a broken invariant, not a caller mistake.
var ErrEmptyHistory = errors.New("no committed history")

// RevisionNotFoundError signals a lookup by an unknown revision number.
type RevisionNotFoundError struct {
	Revision uint64
}

func (e *RevisionNotFoundError) Error() string {
	return fmt.Sprintf("revision %d not found", e.Revision)
}

// ContentNotFoundError signals a file reference (path + revision) that does
// not correspond to any recorded content in that snapshot.
type ContentNotFoundError struct {
	Path     string
	Revision uint64
}

func (e *ContentNotFoundError) Error() string {
	return fmt.Sprintf("no content for %s at revision %d", e.Path, e.Revision)
}
