package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wasfa/internal/handlers"
)

func TestNewRouterRegistersHealthRoute(t *testing.T) {
	router := newRouter()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json content type, got %q", ct)
	}
}

func TestNewRouterRegistersAPIRoutes(t *testing.T) {
	handlers.Configure(nil)
	t.Cleanup(func() { handlers.Configure(nil) })

	router := newRouter()
	for _, path := range []string{"/api/recipes/1/scaled", "/api/ingredients/1/substitutions?amount=100"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(rr, req)

		// Without a configured database the handlers report unavailability,
		// which proves the route is wired.
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected %s to return 503 without a database, got %d", path, rr.Code)
		}
	}
}
