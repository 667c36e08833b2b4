package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// configName pulls the configuration name from the query string, defaulting
// to "default" so a single-config walk needs no extra parameter.
func configName(r *http.Request) string {
	if name := r.URL.Query().Get("name"); name != "" {
		return name
	}
	return "default"
}

// SaveStep accepts one wizard form submission and persists it.
func (h *Handlers) SaveStep(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	source := mux.Vars(r)["source"]
	state, err := h.Wizard.SaveStep(configName(r), source, r.PostForm)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// GetStep returns the stored (or prototype) state of one wizard step.
func (h *Handlers) GetStep(w http.ResponseWriter, r *http.Request) {
	source := mux.Vars(r)["source"]
	state, err := h.Wizard.RetrieveStep(configName(r), source)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

// ResetStep clears the stored data of one wizard step.
func (h *Handlers) ResetStep(w http.ResponseWriter, r *http.Request) {
	source := mux.Vars(r)["source"]
	if err := h.Wizard.ResetSection(configName(r), source); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Step reset"})
}
