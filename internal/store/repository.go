package store

import (
	"fmt"
	"sync"
	"time"

	"revstore/internal/blob"
)

// Repository is a memory-resident versioned file store: an ordered chain of
// immutable snapshots plus the commit engine that derives new ones. Commits
// are serialized by a writer lock; readers resolve against sealed snapshots
// and need no coordination beyond the brief index lookup.
type Repository struct {
	mu      sync.RWMutex
	current *Snapshot
	history *historyIndex
	blobs   blob.Store
	clock   Clock
	idgen   IDGenerator
	logger  Logger
}

// NewRepository constructs an empty repository. Construction performs the
// implicit initial commit: revision 0 with zero entries, sealed and stamped
// into the timestamp index immediately.
func NewRepository(blobs blob.Store, clock Clock, idgen IDGenerator, logger Logger) *Repository {
	r := &Repository{
		history: newHistoryIndex(),
		blobs:   blobs,
		clock:   clock,
		idgen:   idgen,
		logger:  logger,
	}

	initial := newSnapshot(0, "", "")
	initial.seal(0, clock.Now())
	r.current = initial
	r.history.push(nil, initial, initial.stamped)

	return r
}

// Begin starts a fresh transaction for the given author. The comment is
// optional; the author is not.
func (r *Repository) Begin(author, comment string) (*Transaction, error) {
	if author == "" {
		return nil, ErrMissingAuthor
	}
	return &Transaction{id: r.idgen.New(), author: author, comment: comment}, nil
}

// Latest returns the current sealed snapshot.
func (r *Repository) Latest() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Revision resolves a snapshot by revision number.
func (r *Repository) Revision(n uint64) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history.byRevision(r.current, n)
}

// RevisionAt resolves the snapshot whose commit instant is nearest to t.
func (r *Repository) RevisionAt(t time.Time) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.history.byTimestamp(t)
}

// Content resolves a file reference (path + revision) to the bytes recorded
// in that revision's content map.
func (r *Repository) Content(p string, revision uint64) ([]byte, error) {
	snap, err := r.Revision(revision)
	if err != nil {
		return nil, err
	}

	id, ok := snap.contentID(p)
	if !ok {
		return nil, &ContentNotFoundError{Path: CleanPath(p), Revision: revision}
	}

	data, err := r.blobs.Get(id)
	if err != nil {
		return nil, fmt.Errorf("resolving blob %s: %w", id, err)
	}
	return data, nil
}
