// Package httpserver wires the registry and REST service into an HTTP
// server.
package httpserver

import (
	"fmt"
	"net/http"
	"os"

	"revstore/internal/config"
	"revstore/internal/registry"
	"revstore/internal/service"
	"revstore/internal/store"
)

// Server wraps the HTTP server configuration and dependencies.
type Server struct {
	addr    string
	handler http.Handler
	logFile *os.File
}

// NewServer builds a fully wired server from config: logger, registry with
// any pre-configured repositories, and routes.
func NewServer(cfg *config.Config) (*Server, error) {
	logger, logFile, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	reg := registry.New(store.RealClock{}, store.UUIDGenerator{}, logger)
	for _, location := range cfg.Repositories {
		if _, err := reg.Create(location); err != nil {
			logFile.Close()
			return nil, fmt.Errorf("creating configured repository %s: %w", location, err)
		}
	}

	svc := service.New(reg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/api/v1/", service.Handler(svc))

	return &Server{addr: cfg.ListenAddr, handler: mux, logFile: logFile}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	defer s.logFile.Close()
	return http.ListenAndServe(s.addr, s.handler)
}
