// Package handlers exposes the request-level API surface: scaled recipes and
// substitution options, plus a readiness probe.
package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	applog "wasfa/internal/log"
)

var database *gorm.DB

// Configure injects the shared handler dependencies.
func Configure(db *gorm.DB) {
	database = db
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(r.Context(), "failed to encode response", "error", err)
	}
}

func requireDatabase(w http.ResponseWriter, r *http.Request) bool {
	if database != nil {
		return true
	}
	applog.Debug(r.Context(), "request without configured database", "path", r.URL.Path)
	http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	return false
}
