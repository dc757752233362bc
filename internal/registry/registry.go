// Package registry maps opaque repository locations to repository instances
// and enforces creation-before-open semantics. A Registry is an explicit
// value rather than process-global state, so independent registries can
// coexist without cross-contamination.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"revstore/internal/blob"
	"revstore/internal/store"
)

// AlreadyRegisteredError signals a Create against an occupied location.
type AlreadyRegisteredError struct {
	Location string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("repository already registered at %s", e.Location)
}

// NotRegisteredError signals an Open or Remove against an unknown location.
type NotRegisteredError struct {
	Location string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("no repository registered at %s", e.Location)
}

// Registry holds live repositories by location. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	repos  map[string]*store.Repository
	clock  store.Clock
	idgen  store.IDGenerator
	logger store.Logger
}

// New creates an empty registry. The clock, ID generator and logger are
// handed to every repository created through it.
func New(clock store.Clock, idgen store.IDGenerator, logger store.Logger) *Registry {
	return &Registry{
		repos:  make(map[string]*store.Repository),
		clock:  clock,
		idgen:  idgen,
		logger: logger,
	}
}

// Create constructs a repository at location. Each repository gets its own
// blob store. Fails if the location is already taken.
func (r *Registry) Create(location string) (*store.Repository, error) {
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.repos[location]; ok {
		return nil, &AlreadyRegisteredError{Location: location}
	}

	repo := store.NewRepository(blob.NewMemoryStore(), r.clock, r.idgen, r.logger)
	r.repos[location] = repo
	r.logger.Info("repository created", "location", location)
	return repo, nil
}

// Open returns the repository previously created at location.
func (r *Registry) Open(location string) (*store.Repository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	repo, ok := r.repos[location]
	if !ok {
		return nil, &NotRegisteredError{Location: location}
	}
	return repo, nil
}

// Remove forgets the repository at location. The repository itself is not
// touched; references held by callers stay valid.
func (r *Registry) Remove(location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.repos[location]; !ok {
		return &NotRegisteredError{Location: location}
	}
	delete(r.repos, location)
	r.logger.Info("repository removed", "location", location)
	return nil
}

// Locations lists all registered locations, sorted.
func (r *Registry) Locations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.repos))
	for loc := range r.repos {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}
