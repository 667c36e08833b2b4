package handlers

import (
	"net/http"
)

// GetInfo reports the service name, version, branch, and update status.
func (h *Handlers) GetInfo(w http.ResponseWriter, r *http.Request) {
	info := h.Info.GetInfo()
	respondWithJSON(w, http.StatusOK, info)
}
