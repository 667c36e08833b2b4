package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ValidateProvider runs a live connection check for one provider using the
// submitted form fields, marking the section validated on success. The
// response is 200 either way; the body carries the outcome.
func (h *Handlers) ValidateProvider(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	params := map[string]string{}
	for key := range r.PostForm {
		params[key] = r.PostForm.Get(key)
	}

	provider := mux.Vars(r)["provider"]
	result, err := h.Wizard.ValidateProvider(r.Context(), configName(r), provider, params)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
