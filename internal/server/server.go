package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes an MCP server over HTTP with server-sent events, for
// clients that cannot attach to stdio. The MCP traffic itself is handled by
// the mounted SSE handler; this wrapper adds middleware and a health probe.
type Server struct {
	logger *log.Logger
	router chi.Router
	http   *http.Server
}

// New wraps mcpHandler in the HTTP surface. mcpHandler serves the SSE
// endpoint and its companion message endpoint.
func New(mcpHandler http.Handler, logger *log.Logger) *Server {
	s := &Server{
		logger: logger,
		router: chi.NewRouter(),
	}

	r := s.router
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", s.handleHealth)

	// Everything else is MCP traffic.
	r.Handle("/*", mcpHandler)

	return s
}

// ServeHTTP dispatches through the router, letting the server be mounted or
// driven directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Start begins listening on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.logger.Printf("MCP server listening on http://localhost%s", addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return s.http.Shutdown(shutdownCtx)
}
