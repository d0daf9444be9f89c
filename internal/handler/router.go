package handler

import "net/http"

// NewRouter builds the service's route table. It is assembled once at
// startup and not modified afterwards.
func NewRouter(parse *ParseHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	parse.RegisterRoutes(mux)
	return mux
}
