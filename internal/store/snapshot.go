package store

import "time"

// Snapshot is one revision of the file tree. A snapshot starts as a working
// copy built by the commit engine; once the transaction succeeds it is
// sealed and never mutated again, so sealed snapshots are safe for
// concurrent reads without coordination.
type Snapshot struct {
	revision uint64
	author   string
	comment  string
	stamped  time.Time
	entries  []*Entry
	contents map[string]string // entry key -> blob ID
}

func newSnapshot(revision uint64, author, comment string) *Snapshot {
	return &Snapshot{
		revision: revision,
		author:   author,
		comment:  comment,
		contents: make(map[string]string),
	}
}

// Revision returns the snapshot's revision number.
func (s *Snapshot) Revision() uint64 { return s.revision }

// Author returns who produced this snapshot.
func (s *Snapshot) Author() string { return s.author }

// Comment returns the commit comment for this snapshot.
func (s *Snapshot) Comment() string { return s.comment }

// Time returns the instant the snapshot was sealed.
func (s *Snapshot) Time() time.Time { return s.stamped }

// Len returns the number of live entries in the snapshot.
func (s *Snapshot) Len() int { return len(s.entries) }

// PathExists reports whether path names the implicit root or a live
// directory entry in this snapshot.
func (s *Snapshot) PathExists(p string) bool {
	p = CleanPath(p)
	if p == RootPath {
		return true
	}
	for _, e := range s.entries {
		if e.Kind == KindDirectory && e.FullPath() == p {
			return true
		}
	}
	return false
}

// EntriesAt returns the live entries whose parent path equals p, keyed by
// basename. Returned entries are copies stamped with this snapshot's
// revision number, so a caller holding one can tell which snapshot it was
// read from.
func (s *Snapshot) EntriesAt(p string) map[string]*Entry {
	return s.entriesWhere(p, func(*Entry) bool { return true })
}

// DirectoriesAt is EntriesAt restricted to directory entries.
func (s *Snapshot) DirectoriesAt(p string) map[string]*Entry {
	return s.entriesWhere(p, func(e *Entry) bool { return e.Kind == KindDirectory })
}

// ChangedAt is EntriesAt restricted to entries mutated in this snapshot.
func (s *Snapshot) ChangedAt(p string) map[string]*Entry {
	return s.entriesWhere(p, func(e *Entry) bool { return e.Changed })
}

func (s *Snapshot) entriesWhere(p string, keep func(*Entry) bool) map[string]*Entry {
	p = CleanPath(p)
	out := make(map[string]*Entry)
	for _, e := range s.entries {
		if e.ParentPath == p && keep(e) {
			out[e.Name] = e.observedCopy(s.revision)
		}
	}
	return out
}

// clone builds a working copy for a commit: every entry is copied with its
// Changed flag cleared and content references are shared, never the bytes
// themselves. The clone keeps the source's revision number; the number is
// bumped only when the transaction succeeds and the copy is sealed.
func (s *Snapshot) clone(author, comment string) *Snapshot {
	w := newSnapshot(s.revision, author, comment)
	w.entries = make([]*Entry, len(s.entries))
	for i, e := range s.entries {
		w.entries[i] = e.clone()
	}
	for key, id := range s.contents {
		w.contents[key] = id
	}
	return w
}

// seal fixes the snapshot's final revision number and commit instant. A
// sealed snapshot is only ever read afterwards.
func (s *Snapshot) seal(revision uint64, at time.Time) {
	s.revision = revision
	s.stamped = at
}

// occupied reports whether any live entry sits at the exact full path.
func (s *Snapshot) occupied(p string) bool {
	for _, e := range s.entries {
		if e.FullPath() == p {
			return true
		}
	}
	return false
}

// fileIndex returns the index of the live file entry at the full path,
// or -1 if there is none.
func (s *Snapshot) fileIndex(p string) int {
	for i, e := range s.entries {
		if e.Kind == KindFile && e.FullPath() == p {
			return i
		}
	}
	return -1
}

// fileAt returns the live file entry at the full path, or nil.
func (s *Snapshot) fileAt(p string) *Entry {
	if i := s.fileIndex(CleanPath(p)); i >= 0 {
		return s.entries[i]
	}
	return nil
}

func (s *Snapshot) addEntry(e *Entry) {
	s.entries = append(s.entries, e)
}

// removeEntryAt drops the entry at index i, preserving insertion order.
// The content map deliberately keeps the entry's key: history snapshots may
// still reference it.
func (s *Snapshot) removeEntryAt(i int) {
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
}

// contentID resolves a live file path to its blob ID in this snapshot.
func (s *Snapshot) contentID(p string) (string, bool) {
	e := s.fileAt(p)
	if e == nil {
		return "", false
	}
	id, ok := s.contents[e.Key()]
	return id, ok
}
