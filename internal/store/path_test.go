package store_test

import (
	"testing"

	"revstore/internal/store"
)

func TestCleanPath(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"docs", "/docs"},
		{"/docs/", "/docs"},
		{"/docs//a.txt", "/docs/a.txt"},
		{"/docs/./a.txt", "/docs/a.txt"},
	}
	for _, tc := range cases {
		if got := store.CleanPath(tc.in); got != tc.want {
			t.Errorf("CleanPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitJoinPath(t *testing.T) {
	t.Parallel()

	cases := []struct{ path, parent, name string }{
		{"/a.txt", "/", "a.txt"},
		{"/docs/a.txt", "/docs", "a.txt"},
		{"/docs/sub/deep", "/docs/sub", "deep"},
	}
	for _, tc := range cases {
		parent, name := store.SplitPath(tc.path)
		if parent != tc.parent || name != tc.name {
			t.Errorf("SplitPath(%q) = (%q, %q), want (%q, %q)", tc.path, parent, name, tc.parent, tc.name)
		}
		if got := store.JoinPath(parent, name); got != tc.path {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", parent, name, got, tc.path)
		}
	}
}
