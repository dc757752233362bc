package store

import "fmt"

// EntryKind discriminates the two entry variants. Dispatch on the kind is
// preferred over type switches so copy and query logic stays exhaustive.
type EntryKind int

const (
	// KindFile marks an entry backed by content in the blob store.
	KindFile EntryKind = iota
	// KindDirectory marks an entry with no content.
	KindDirectory
)

func (k EntryKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is the metadata record for one file or directory within a snapshot.
// Revision is the revision that last changed the entry; Changed reports
// whether the entry was mutated in its owning snapshot or carried over
// unchanged from a prior one.
type Entry struct {
	Kind       EntryKind
	Name       string
	ParentPath string
	Revision   uint64
	Changed    bool
	Author     string
	MIME       string // file entries only

	// observed is stamped by snapshot queries with the revision number of
	// the snapshot the entry was read from.
	observed uint64
}

// FullPath returns the fully qualified path of the entry.
func (e *Entry) FullPath() string {
	return JoinPath(e.ParentPath, e.Name)
}

// Key is the deterministic content-map key for a file entry, derived from
// its full path and the revision that last changed it.
func (e *Entry) Key() string {
	return fmt.Sprintf("%s@%d", e.FullPath(), e.Revision)
}

// ObservedRevision reports which snapshot the entry was last read from.
// It is zero for an entry that has never been returned by a query.
func (e *Entry) ObservedRevision() uint64 { return e.observed }

// clone copies the entry for a new working snapshot. The copy starts with
// Changed cleared: carried-over entries are unchanged until a mutation
// touches them.
func (e *Entry) clone() *Entry {
	c := *e
	c.Changed = false
	return &c
}

// observedCopy returns a copy stamped with the revision it was read from.
// Queries hand out copies so sealed snapshots stay immutable.
func (e *Entry) observedCopy(revision uint64) *Entry {
	c := *e
	c.observed = revision
	return &c
}
