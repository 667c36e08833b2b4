package handlers

import (
	"net/http"
)

// GetLanguages returns the language choices for wizard dropdowns.
func (h *Handlers) GetLanguages(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Lists.Languages()
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}

// GetRegions returns the region choices for wizard dropdowns.
func (h *Handlers) GetRegions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Lists.Regions()
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, entries)
}
