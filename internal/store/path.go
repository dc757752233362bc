package store

import "path"

// RootPath is the implicit root of every snapshot. It exists without being
// recorded as an entry.
const RootPath = "/"

// CleanPath normalizes a repository path: forward slashes, leading slash,
// no trailing slash (except the root itself), no dot segments.
func CleanPath(p string) string {
	if p == "" {
		return RootPath
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

// SplitPath splits a fully qualified path into its parent path and basename.
// "/docs/a.txt" yields ("/docs", "a.txt"); "/a.txt" yields ("/", "a.txt").
func SplitPath(p string) (parent, name string) {
	p = CleanPath(p)
	return path.Dir(p), path.Base(p)
}

// JoinPath joins a parent path and a basename into a fully qualified path.
func JoinPath(parent, name string) string {
	if parent == RootPath {
		return RootPath + name
	}
	return parent + "/" + name
}
