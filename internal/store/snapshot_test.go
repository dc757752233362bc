package store_test

import (
	"testing"

	"revstore/internal/store"
	"revstore/internal/testutil"
)

// buildTree commits a small layout:
//
//	/docs           (directory)
//	/docs/a.txt     (file)
//	/tmp            (directory)
//	/root.txt       (file)
func buildTree(t *testing.T) *store.Repository {
	t.Helper()
	repo, _ := testutil.NewTestRepository(t)

	tx := mustBegin(t, repo, "alice")
	tx.CreateDirectory("/docs")
	tx.AddFile("/docs/a.txt", []byte("a"), "text/plain")
	tx.CreateDirectory("/tmp")
	tx.AddFile("/root.txt", []byte("r"), "text/plain")
	mustCommit(t, repo, tx)
	return repo
}

func TestSnapshot_PathExists(t *testing.T) {
	t.Parallel()
	repo := buildTree(t)
	snap := repo.Latest()

	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/docs", true},
		{"/tmp", true},
		{"docs", true},          // normalized to /docs
		{"/docs/", true},        // trailing slash cleaned
		{"/root.txt", false},    // files do not satisfy directory existence
		{"/docs/a.txt", false},  // same, nested
		{"/missing", false},
	}
	for _, tc := range cases {
		if got := snap.PathExists(tc.path); got != tc.want {
			t.Errorf("PathExists(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestSnapshot_EntriesAt(t *testing.T) {
	t.Parallel()
	repo := buildTree(t)
	snap := repo.Latest()

	t.Run("lists entries under a path by basename", func(t *testing.T) {
		root := snap.EntriesAt("/")
		if len(root) != 3 {
			t.Fatalf("got %d root entries, want 3", len(root))
		}
		for _, name := range []string{"docs", "tmp", "root.txt"} {
			if _, ok := root[name]; !ok {
				t.Errorf("missing root entry %q", name)
			}
		}

		docs := snap.EntriesAt("/docs")
		if len(docs) != 1 {
			t.Fatalf("got %d /docs entries, want 1", len(docs))
		}
		e := docs["a.txt"]
		if e.Kind != store.KindFile || e.FullPath() != "/docs/a.txt" {
			t.Errorf("entry = %s %s", e.Kind, e.FullPath())
		}
		if e.MIME != "text/plain" {
			t.Errorf("MIME = %q, want text/plain", e.MIME)
		}
	})

	t.Run("stamps the observed revision on returned entries", func(t *testing.T) {
		for name, e := range snap.EntriesAt("/") {
			if e.ObservedRevision() != snap.Revision() {
				t.Errorf("%s observed revision = %d, want %d", name, e.ObservedRevision(), snap.Revision())
			}
		}
	})

	t.Run("empty path yields no entries", func(t *testing.T) {
		if got := snap.EntriesAt("/tmp"); len(got) != 0 {
			t.Errorf("got %d entries under empty directory, want 0", len(got))
		}
	})
}

func TestSnapshot_DirectoriesAt(t *testing.T) {
	t.Parallel()
	repo := buildTree(t)

	dirs := repo.Latest().DirectoriesAt("/")
	if len(dirs) != 2 {
		t.Fatalf("got %d directories, want 2", len(dirs))
	}
	for _, name := range []string{"docs", "tmp"} {
		if _, ok := dirs[name]; !ok {
			t.Errorf("missing directory %q", name)
		}
	}
}

func TestSnapshot_ChangedAt(t *testing.T) {
	t.Parallel()
	repo := buildTree(t)

	// Everything in revision 1 was created there.
	changed := repo.Latest().ChangedAt("/")
	if len(changed) != 3 {
		t.Fatalf("got %d changed entries at revision 1, want 3", len(changed))
	}

	// A second commit touching only /extra leaves the carried-over entries
	// unchanged.
	tx := mustBegin(t, repo, "bob")
	tx.CreateDirectory("/extra")
	mustCommit(t, repo, tx)

	changed = repo.Latest().ChangedAt("/")
	if len(changed) != 1 {
		t.Fatalf("got %d changed entries at revision 2, want 1", len(changed))
	}
	e, ok := changed["extra"]
	if !ok {
		t.Fatal("missing changed entry /extra")
	}
	if e.Author != "bob" {
		t.Errorf("author = %q, want bob", e.Author)
	}
	if !e.Changed {
		t.Error("Changed flag not set on mutated entry")
	}
}

func TestSnapshot_EntryMetadata(t *testing.T) {
	t.Parallel()
	repo := buildTree(t)

	// New entries carry the working revision number, which is the base
	// revision of the commit that introduced them.
	e := repo.Latest().EntriesAt("/docs")["a.txt"]
	if e.Revision != 0 {
		t.Errorf("entry revision = %d, want 0 (introduced while working from base 0)", e.Revision)
	}
	if e.Author != "alice" {
		t.Errorf("author = %q, want alice", e.Author)
	}
	if got, want := e.Key(), "/docs/a.txt@0"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}
