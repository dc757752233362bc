package registry_test

import (
	"errors"
	"testing"

	"revstore/internal/registry"
	"revstore/internal/store"
	"revstore/internal/testutil"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(testutil.FixedClock(), testutil.NewStubIDGenerator(), store.NewNopLogger())
}

func TestRegistry(t *testing.T) {
	t.Run("create then open returns the same repository", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		created, err := reg.Create("mem://projects/alpha")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		opened, err := reg.Open("mem://projects/alpha")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if created != opened {
			t.Error("Open() returned a different repository instance")
		}
	})

	t.Run("open before create fails", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		_, err := reg.Open("mem://nowhere")
		var notRegistered *registry.NotRegisteredError
		if !errors.As(err, &notRegistered) {
			t.Fatalf("Open() error = %v, want NotRegisteredError", err)
		}
	})

	t.Run("double create fails", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		if _, err := reg.Create("mem://a"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		_, err := reg.Create("mem://a")
		var already *registry.AlreadyRegisteredError
		if !errors.As(err, &already) {
			t.Fatalf("second Create() error = %v, want AlreadyRegisteredError", err)
		}
	})

	t.Run("empty location is rejected", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		if _, err := reg.Create(""); err == nil {
			t.Fatal("Create(\"\") expected error")
		}
	})

	t.Run("repositories are independent", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		a, _ := reg.Create("mem://a")
		b, _ := reg.Create("mem://b")

		tx, err := a.Begin("alice", "")
		if err != nil {
			t.Fatalf("Begin() error = %v", err)
		}
		tx.AddFile("/only-in-a.txt", []byte("x"), "text/plain")
		result, err := a.Commit(tx)
		if err != nil || !result.Applied {
			t.Fatalf("Commit() = %+v, %v", result, err)
		}

		if b.Latest().Revision() != 0 {
			t.Error("commit in repository a leaked into repository b")
		}
	})

	t.Run("remove forgets the location", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		reg.Create("mem://gone")
		if err := reg.Remove("mem://gone"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := reg.Open("mem://gone"); err == nil {
			t.Fatal("Open() after Remove() expected error")
		}
		if err := reg.Remove("mem://gone"); err == nil {
			t.Fatal("second Remove() expected error")
		}
	})

	t.Run("locations are sorted", func(t *testing.T) {
		t.Parallel()
		reg := newTestRegistry(t)

		reg.Create("mem://b")
		reg.Create("mem://a")

		locs := reg.Locations()
		if len(locs) != 2 || locs[0] != "mem://a" || locs[1] != "mem://b" {
			t.Errorf("Locations() = %v", locs)
		}
	})
}
