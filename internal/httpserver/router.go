package httpserver

import (
	"github.com/gorilla/mux"

	"quickstart/internal/httpserver/handlers"
)

// SetupRouter configures the main router and its sub-routers.
func SetupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)

	// Public Endpoints
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")

	apiRouter := r.PathPrefix("/api").Subrouter()

	addStepRoutes(apiRouter, h)
	addConfigRoutes(apiRouter, h)
	addListRoutes(apiRouter, h)

	apiRouter.HandleFunc("/validate/{provider}", h.ValidateProvider).Methods("POST")

	return r
}

func addStepRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/step/{source}", h.SaveStep).Methods("POST")
	r.HandleFunc("/step/{source}", h.GetStep).Methods("GET")
	r.HandleFunc("/step/{source}", h.ResetStep).Methods("DELETE")
}

func addConfigRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/configs", h.ListConfigs).Methods("GET")
	r.HandleFunc("/configs", h.NewConfigName).Methods("POST")
	r.HandleFunc("/config/status", h.GetWalkStatus).Methods("GET")
	r.HandleFunc("/config", h.ResetConfig).Methods("DELETE")
	r.HandleFunc("/config/build", h.BuildConfig).Methods("POST")
	r.HandleFunc("/config/download", h.DownloadConfig).Methods("GET")
	r.HandleFunc("/config/template", h.GetTemplate).Methods("GET")
}

func addListRoutes(r *mux.Router, h *handlers.Handlers) {
	r.HandleFunc("/lists/languages", h.GetLanguages).Methods("GET")
	r.HandleFunc("/lists/regions", h.GetRegions).Methods("GET")
}
