package blob

import (
	"fmt"
	"sync"

	"github.com/zeebo/xxh3"
)

// MemoryStore is an in-memory, content-addressed blob store. IDs are xxh3
// hashes of the content, so Put is idempotent and identical content is
// stored once. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Hash returns the content identity for data.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
}

// Put stores data under its content hash.
func (s *MemoryStore) Put(data []byte) (string, error) {
	id := Hash(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blobs[id]; !ok {
		s.blobs[id] = append([]byte(nil), data...)
	}
	return id, nil
}

// Get retrieves a copy of the bytes stored under id.
func (s *MemoryStore) Get(id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[id]
	if !ok {
		return nil, fmt.Errorf("blob not found: %s", id)
	}
	return append([]byte(nil), data...), nil
}

// Len returns the number of distinct blobs held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// Compile-time check that MemoryStore implements the Store interface
var _ Store = (*MemoryStore)(nil)
