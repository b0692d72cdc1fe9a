package server_test

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/michaelbrown/adguard-mcp/internal/server"
)

func TestHealthEndpoint(t *testing.T) {
	s := server.New(http.NotFoundHandler(), log.New(io.Discard, "", 0))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("body = %q", got)
	}
}

func TestFallbackRoutesToMCPHandler(t *testing.T) {
	var gotPath string
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	s := server.New(mcp, log.New(io.Discard, "", 0))

	req := httptest.NewRequest(http.MethodGet, "/sse", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if gotPath != "/sse" {
		t.Errorf("MCP handler saw path %q, want /sse", gotPath)
	}
}
