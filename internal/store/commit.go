package store

import "fmt"

// CommitResult reports the outcome of a commit: either the transaction was
// applied and produced a new revision, or it was rejected with the complete
// set of per-mutation conflicts.
type CommitResult struct {
	Applied   bool
	Revision  uint64
	Conflicts []Conflict
}

// Commit validates and applies a transaction against the current snapshot.
//
// The engine clones the current snapshot structurally (entries copied, blob
// references shared), applies every mutation in declared order, and collects
// conflicts instead of stopping at the first one, so a caller bundling many
// independent operations learns about every failure in one round trip. A
// transaction with any conflict leaves the repository untouched; otherwise
// the working copy is sealed at the next revision number, the previous
// current snapshot retires into the sealed chain, and the commit instant is
// recorded in the timestamp index.
func (r *Repository) Commit(tx *Transaction) (CommitResult, error) {
	if tx == nil || tx.author == "" {
		return CommitResult{}, ErrMissingAuthor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	base := r.current
	working := base.clone(tx.author, tx.comment)
	tx.conflicts = nil

	for _, m := range tx.mutations {
		switch m.Op {
		case OpCreateDirectory:
			r.applyCreateDirectory(tx, working, m)
		case OpAddFile:
			if err := r.applyAddFile(tx, working, m); err != nil {
				return CommitResult{}, err
			}
		case OpRemoveFile:
			r.applyRemoveFile(tx, working, m, base.revision)
		default:
			return CommitResult{}, fmt.Errorf("unknown mutation op %d", m.Op)
		}
	}

	if len(tx.conflicts) > 0 {
		r.logger.Info("transaction rejected",
			"tx", tx.id, "author", tx.author, "conflicts", len(tx.conflicts))
		return CommitResult{Conflicts: append([]Conflict(nil), tx.conflicts...)}, nil
	}

	working.seal(base.revision+1, r.clock.Now())
	r.history.push(base, working, working.stamped)
	r.current = working

	r.logger.Info("transaction applied",
		"tx", tx.id, "author", tx.author, "revision", working.revision, "mutations", len(tx.mutations))
	return CommitResult{Applied: true, Revision: working.revision}, nil
}

// applyCreateDirectory inserts a directory entry unless any live entry
// already occupies the exact path. The root always exists implicitly, so
// creating it conflicts like any other occupied path.
func (r *Repository) applyCreateDirectory(tx *Transaction, working *Snapshot, m Mutation) {
	if m.Path == RootPath || working.occupied(m.Path) {
		tx.conflict(Conflict{Kind: ConflictPathExists, Path: m.Path})
		return
	}

	parent, name := SplitPath(m.Path)
	working.addEntry(&Entry{
		Kind:       KindDirectory,
		Name:       name,
		ParentPath: parent,
		Revision:   working.revision,
		Changed:    true,
		Author:     tx.author,
	})
}

// applyAddFile inserts a file entry and records its content in the blob
// store, unless the path is the implicit root or a live file already sits at
// that basename under the parent. Content reaches the blob store before the
// batch outcome is known; if the transaction is later rejected the orphaned
// blob is harmless, since the store is content-addressed and Put is
// idempotent.
func (r *Repository) applyAddFile(tx *Transaction, working *Snapshot, m Mutation) error {
	if m.Path == RootPath || working.fileIndex(m.Path) >= 0 {
		tx.conflict(Conflict{Kind: ConflictPathExists, Path: m.Path})
		return nil
	}

	id, err := r.blobs.Put(m.Content)
	if err != nil {
		return fmt.Errorf("storing content for %s: %w", m.Path, err)
	}

	parent, name := SplitPath(m.Path)
	entry := &Entry{
		Kind:       KindFile,
		Name:       name,
		ParentPath: parent,
		Revision:   working.revision,
		Changed:    true,
		Author:     tx.author,
		MIME:       m.MIME,
	}
	working.addEntry(entry)
	working.contents[entry.Key()] = id
	return nil
}

// applyRemoveFile drops a live file entry. The expected revision is checked
// against the true current repository revision, not the revision the working
// copy was cloned from: the caller must prove it last observed the
// repository at the revision it expects to still be current.
func (r *Repository) applyRemoveFile(tx *Transaction, working *Snapshot, m Mutation, currentRevision uint64) {
	i := working.fileIndex(m.Path)
	if i < 0 {
		tx.conflict(Conflict{Kind: ConflictPathMissing, Path: m.Path})
		return
	}

	if m.Expected != currentRevision {
		tx.conflict(Conflict{
			Kind:     ConflictOutOfSync,
			Path:     m.Path,
			Expected: m.Expected,
			Actual:   currentRevision,
		})
		return
	}

	// Content stays in the map: history snapshots may still reference it.
	working.removeEntryAt(i)
}
