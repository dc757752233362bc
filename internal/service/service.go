// Package service exposes the repository registry over a small REST surface.
// The versioning core stays wire-free; this layer only maps HTTP requests to
// registry and repository calls.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"revstore/internal/registry"
	"revstore/internal/store"
)

const headerAuthor = "X-Author"

// Service holds the registry and logging dependencies for the REST routes.
type Service struct {
	registry *registry.Registry
	logger   store.Logger
}

// New constructs the service wiring.
func New(reg *registry.Registry, logger store.Logger) *Service {
	return &Service{registry: reg, logger: logger}
}

// Handler builds the REST routes for the service. Routes are rooted at
// /api/v1 and keyed by repository location:
//
//	GET    /repos                          list registered locations
//	PUT    /repos/{loc}                    create a repository
//	DELETE /repos/{loc}                    remove a repository
//	POST   /repos/{loc}/transactions       commit a mutation batch
//	GET    /repos/{loc}/log                list all revisions, newest first
//	GET    /repos/{loc}/revisions?at=...   nearest revision to an instant
//	GET    /repos/{loc}/revisions/{n}      entries of one revision
//	GET    /repos/{loc}/revisions/{n}/content?path=...  file bytes
func Handler(svc *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api/v1")
		if !strings.HasPrefix(path, "/repos") {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
			return
		}

		tail := strings.Trim(strings.TrimPrefix(path, "/repos"), "/")
		if tail == "" {
			svc.handleListRepos(w, r)
			return
		}

		location, rest, _ := strings.Cut(tail, "/")
		switch {
		case rest == "":
			svc.handleRepo(w, r, location)
		case rest == "transactions":
			svc.handleTransactions(w, r, location)
		case rest == "log":
			svc.handleLog(w, r, location)
		case rest == "revisions":
			svc.handleRevisionAt(w, r, location)
		case strings.HasPrefix(rest, "revisions/"):
			svc.handleRevision(w, r, location, strings.TrimPrefix(rest, "revisions/"))
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		}
	})
}

func (s *Service) handleListRepos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"repositories": s.registry.Locations()})
}

func (s *Service) handleRepo(w http.ResponseWriter, r *http.Request, location string) {
	switch r.Method {
	case http.MethodPut:
		repo, err := s.registry.Create(location)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, revisionSummary(repo.Latest()))
	case http.MethodGet:
		repo, err := s.registry.Open(location)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, revisionSummary(repo.Latest()))
	case http.MethodDelete:
		if err := s.registry.Remove(location); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

// transactionRequest is the wire form of a mutation batch.
type transactionRequest struct {
	Comment   string `json:"comment,omitempty"`
	Mutations []struct {
		Op       string `json:"op"`
		Path     string `json:"path"`
		Content  string `json:"content,omitempty"`
		MIME     string `json:"mime,omitempty"`
		Expected uint64 `json:"expected_revision,omitempty"`
	} `json:"mutations"`
}

func (s *Service) handleTransactions(w http.ResponseWriter, r *http.Request, location string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	repo, err := s.registry.Open(location)
	if err != nil {
		writeError(w, err)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid transaction payload", "location", location, "err", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	tx, err := repo.Begin(r.Header.Get(headerAuthor), req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	for _, m := range req.Mutations {
		switch m.Op {
		case "create_directory":
			tx.CreateDirectory(m.Path)
		case "add_file":
			tx.AddFile(m.Path, []byte(m.Content), m.MIME)
		case "remove_file":
			tx.RemoveFile(m.Path, m.Expected)
		default:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown op %q", m.Op)})
			return
		}
	}

	result, err := repo.Commit(tx)
	if err != nil {
		writeError(w, err)
		return
	}

	if !result.Applied {
		writeJSON(w, http.StatusConflict, map[string]any{"conflicts": result.Conflicts})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"revision": result.Revision})
}

func (s *Service) handleLog(w http.ResponseWriter, r *http.Request, location string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	repo, err := s.registry.Open(location)
	if err != nil {
		writeError(w, err)
		return
	}

	latest := repo.Latest().Revision()
	log := make([]map[string]any, 0, latest+1)
	for n := latest; ; n-- {
		snap, err := repo.Revision(n)
		if err != nil {
			writeError(w, err)
			return
		}
		log = append(log, revisionSummary(snap))
		if n == 0 {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"log": log})
}

func (s *Service) handleRevisionAt(w http.ResponseWriter, r *http.Request, location string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	repo, err := s.registry.Open(location)
	if err != nil {
		writeError(w, err)
		return
	}

	at, err := time.Parse(time.RFC3339, r.URL.Query().Get("at"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "at must be an RFC 3339 timestamp"})
		return
	}

	snap, err := repo.RevisionAt(at)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revisionSummary(snap))
}

func (s *Service) handleRevision(w http.ResponseWriter, r *http.Request, location, tail string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	repo, err := s.registry.Open(location)
	if err != nil {
		writeError(w, err)
		return
	}

	numPart, sub, _ := strings.Cut(tail, "/")
	n, err := strconv.ParseUint(numPart, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "revision must be a non-negative integer"})
		return
	}

	if sub == "content" {
		s.handleContent(w, r, repo, n)
		return
	}
	if sub != "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		return
	}

	snap, err := repo.Revision(n)
	if err != nil {
		writeError(w, err)
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		path = store.RootPath
	}

	body := revisionSummary(snap)
	body["path"] = store.CleanPath(path)
	body["path_exists"] = snap.PathExists(path)
	body["entries"] = entryList(snap.EntriesAt(path))
	writeJSON(w, http.StatusOK, body)
}

func (s *Service) handleContent(w http.ResponseWriter, r *http.Request, repo *store.Repository, revision uint64) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "path query parameter required"})
		return
	}

	data, err := repo.Content(path, revision)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func revisionSummary(snap *store.Snapshot) map[string]any {
	return map[string]any{
		"revision":     snap.Revision(),
		"author":       snap.Author(),
		"comment":      snap.Comment(),
		"committed_at": snap.Time().UTC().Format(time.RFC3339Nano),
	}
}

func entryList(entries map[string]*store.Entry) []map[string]any {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		e := entries[name]
		item := map[string]any{
			"kind":     e.Kind.String(),
			"name":     e.Name,
			"path":     e.FullPath(),
			"revision": e.Revision,
			"changed":  e.Changed,
			"author":   e.Author,
		}
		if e.MIME != "" {
			item["mime"] = e.MIME
		}
		out = append(out, item)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	var (
		alreadyRegistered *registry.AlreadyRegisteredError
		notRegistered     *registry.NotRegisteredError
		revNotFound       *store.RevisionNotFoundError
		contentNotFound   *store.ContentNotFoundError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &alreadyRegistered):
		status = http.StatusConflict
	case errors.As(err, &notRegistered), errors.As(err, &revNotFound), errors.As(err, &contentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrMissingAuthor):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
