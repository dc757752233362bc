package store

import (
	"sort"
	"time"
)

// commitStamp pairs a commit instant with the snapshot that became current
// at that instant.
type commitStamp struct {
	at   time.Time
	snap *Snapshot
}

// historyIndex owns the chain of sealed snapshots and the commit-time index.
// The current snapshot is not part of the sealed chain; it is pushed in when
// a newer snapshot replaces it. Exactly one stamp is recorded per successful
// commit, including the implicit revision-0 commit at construction, so the
// index is never empty once the repository exists.
type historyIndex struct {
	sealed []*Snapshot   // previous currents, oldest first
	stamps []commitStamp // commit instants, oldest first
}

func newHistoryIndex() *historyIndex {
	return &historyIndex{}
}

// push retires the previous current snapshot into the sealed chain and
// stamps the instant the new current took over.
func (h *historyIndex) push(previous, current *Snapshot, at time.Time) {
	if previous != nil {
		h.sealed = append(h.sealed, previous)
	}
	h.stamps = append(h.stamps, commitStamp{at: at, snap: current})
}

// byRevision resolves a revision number against the current snapshot first,
// then the sealed chain.
func (h *historyIndex) byRevision(current *Snapshot, n uint64) (*Snapshot, error) {
	if current != nil && current.revision == n {
		return current, nil
	}
	for _, s := range h.sealed {
		if s.revision == n {
			return s, nil
		}
	}
	return nil, &RevisionNotFoundError{Revision: n}
}

// byTimestamp returns the snapshot whose commit instant is nearest to t,
// minimizing absolute distance and clamping at the range ends. With a single
// recorded instant that instant's snapshot is returned regardless of t.
func (h *historyIndex) byTimestamp(t time.Time) (*Snapshot, error) {
	if len(h.stamps) == 0 {
		return nil, ErrEmptyHistory
	}

	// Stamps are appended in commit order, so they are sorted by instant.
	i := sort.Search(len(h.stamps), func(i int) bool {
		return !h.stamps[i].at.Before(t)
	})

	switch i {
	case 0:
		return h.stamps[0].snap, nil
	case len(h.stamps):
		return h.stamps[len(h.stamps)-1].snap, nil
	}

	before, after := h.stamps[i-1], h.stamps[i]
	if t.Sub(before.at) <= after.at.Sub(t) {
		return before.snap, nil
	}
	return after.snap, nil
}
