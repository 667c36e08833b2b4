package handlers

import (
	"fmt"
	"net/http"

	"quickstart/internal/shared"
)

// ListConfigs returns every stored configuration name.
func (h *Handlers) ListConfigs(w http.ResponseWriter, r *http.Request) {
	names, err := h.Wizard.ListConfigs()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, names)
}

// NewConfigName hands out an unused random configuration name.
func (h *Handlers) NewConfigName(w http.ResponseWriter, r *http.Request) {
	name, err := h.Wizard.NewConfigName()
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]string{"name": name})
}

// GetWalkStatus reports per-section progress of one configuration.
func (h *Handlers) GetWalkStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Wizard.WalkStatus(configName(r))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}

// ResetConfig removes every stored section of one configuration.
func (h *Handlers) ResetConfig(w http.ResponseWriter, r *http.Request) {
	if err := h.Wizard.ResetConfig(configName(r)); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Configuration reset"})
}

// BuildConfig composes the final document and returns it with its
// validation outcome.
func (h *Handlers) BuildConfig(w http.ResponseWriter, r *http.Request) {
	result, err := h.Builder.BuildConfig(configName(r), r.URL.Query().Get("header_style"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// GetTemplate serves the upstream starter config mirrored alongside the
// schema files.
func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	body, err := h.Schemas.Template(h.Branch)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// DownloadConfig streams the composed document as a YAML attachment.
// ?redacted=true blanks credential values for shareable output.
func (h *Handlers) DownloadConfig(w http.ResponseWriter, r *http.Request) {
	redacted := shared.Booler(r.URL.Query().Get("redacted"))
	result, err := h.Builder.Download(configName(r), r.URL.Query().Get("header_style"), redacted)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-config.yml", result.Name)
	if redacted {
		filename = fmt.Sprintf("%s-config-redacted.yml", result.Name)
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.YAML))
}
