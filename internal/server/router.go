package server

import (
	"context"
	"net/http"

	"wasfa/internal/handlers"
	applog "wasfa/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/recipes/", handlers.ScaledRecipe)
	applog.Debug(context.Background(), "route registered", "path", "/api/recipes/")
	mux.HandleFunc("/api/ingredients/", handlers.SubstitutionOptions)
	applog.Debug(context.Background(), "route registered", "path", "/api/ingredients/")
	return mux
}
