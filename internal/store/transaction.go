package store

// MutationOp enumerates the operations a transaction may carry.
type MutationOp int

const (
	// OpCreateDirectory creates an empty directory at a path.
	OpCreateDirectory MutationOp = iota
	// OpAddFile adds a new file with content and a MIME type.
	OpAddFile
	// OpRemoveFile removes a file, guarded by the revision the caller
	// last observed.
	OpRemoveFile
)

func (op MutationOp) String() string {
	switch op {
	case OpCreateDirectory:
		return "create_directory"
	case OpAddFile:
		return "add_file"
	case OpRemoveFile:
		return "remove_file"
	default:
		return "unknown"
	}
}

// Mutation is one proposed change within a transaction. Content and MIME are
// set for OpAddFile; Expected is set for OpRemoveFile.
type Mutation struct {
	Op       MutationOp
	Path     string
	Content  []byte
	MIME     string
	Expected uint64
}

// Transaction is an ordered batch of mutations submitted together for
// all-or-nothing application. It is fresh at construction; the conflict list
// is populated only while the commit engine processes it.
type Transaction struct {
	id        string
	author    string
	comment   string
	mutations []Mutation
	conflicts []Conflict
}

// ID returns the generated identifier used to correlate log lines.
func (t *Transaction) ID() string { return t.id }

// Author returns the required author of the transaction.
func (t *Transaction) Author() string { return t.author }

// Comment returns the optional commit comment.
func (t *Transaction) Comment() string { return t.comment }

// Len returns the number of queued mutations.
func (t *Transaction) Len() int { return len(t.mutations) }

// CreateDirectory queues a directory creation at path.
func (t *Transaction) CreateDirectory(path string) *Transaction {
	t.mutations = append(t.mutations, Mutation{Op: OpCreateDirectory, Path: CleanPath(path)})
	return t
}

// AddFile queues a file addition at path with the given content and MIME type.
func (t *Transaction) AddFile(path string, content []byte, mime string) *Transaction {
	t.mutations = append(t.mutations, Mutation{Op: OpAddFile, Path: CleanPath(path), Content: content, MIME: mime})
	return t
}

// RemoveFile queues a file removal at path. expected is the repository
// revision the caller last observed; the commit engine rejects the mutation
// if the repository has moved on since.
func (t *Transaction) RemoveFile(path string, expected uint64) *Transaction {
	t.mutations = append(t.mutations, Mutation{Op: OpRemoveFile, Path: CleanPath(path), Expected: expected})
	return t
}

// Add queues an already-built mutation, preserving declaration order.
func (t *Transaction) Add(m Mutation) *Transaction {
	m.Path = CleanPath(m.Path)
	t.mutations = append(t.mutations, m)
	return t
}

// Conflicts returns the conflicts recorded during the last commit attempt.
func (t *Transaction) Conflicts() []Conflict { return t.conflicts }

func (t *Transaction) conflict(c Conflict) {
	t.conflicts = append(t.conflicts, c)
}
