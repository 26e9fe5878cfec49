package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackzampolin/formscan/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cm, err := config.NewManager("")
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	srv, err := New(Config{
		Host:          "127.0.0.1",
		Port:          "0",
		ConfigManager: cm,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return srv
}

func TestNew_RequiresConfigManager(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without config manager")
	}
}

func TestServer_HealthRoute(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestServer_ExtractRouteValidates(t *testing.T) {
	srv := newTestServer(t)

	// No body at all is a bad request, not a panic
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("POST", "/api/extract", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServer_NotRunningInitially(t *testing.T) {
	srv := newTestServer(t)
	if srv.IsRunning() {
		t.Error("server should not report running before Start")
	}
}

func TestGemini_ConfiguredFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	srv := newTestServer(t)
	if !srv.Registry().Has("gemini") {
		t.Error("gemini should be registered when its API key is set")
	}
}
