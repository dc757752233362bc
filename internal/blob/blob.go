// Package blob provides the content-blob store the versioning core writes
// file bytes through: bytes in, opaque identity out. Snapshots record only
// blob IDs, so cloning a snapshot never duplicates content.
package blob

// Store is the provider interface the core consumes.
type Store interface {
	// Put stores data and returns its identity. Storing the same bytes
	// twice is safe and returns the same identity.
	Put(data []byte) (string, error)

	// Get retrieves the bytes previously stored under id.
	Get(id string) ([]byte, error)

	// Len returns the number of distinct blobs held.
	Len() int
}
