package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quickstart/internal/config"
	"quickstart/internal/iso"
	"quickstart/internal/schema"
	"quickstart/internal/services/mocks"
)

const (
	testLanguagesCSV = "alpha2,English\nde,German\nfr,French\n"
	testRegionsCSV   = "FIFA,Name,ISO3166-1-Alpha-2\nGER,Germany,DE\nFRA,France,FR\n"
	testSchemaJSON   = `{"type": "object"}`
	testPrototype    = "plex:\n  url: http://localhost:32400\n"
	testTemplate     = "## This file is a template\nlibraries:\n  Movies:\n"
)

// setupHandlerTestAPI builds a full test server with mocked services and an
// ISO list source backed by fixture CSV data.
func setupHandlerTestAPI(t *testing.T) (*httptest.Server, *mocks.MockWizardService, *mocks.MockBuilderService, *mocks.MockInfoService, func()) {
	t.Helper()

	mockWizard := new(mocks.MockWizardService)
	mockBuilder := new(mocks.MockBuilderService)
	mockInfo := new(mocks.MockInfoService)

	fixtures := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/languages.csv":
			fmt.Fprint(w, testLanguagesCSV)
		case "/regions.csv":
			fmt.Fprint(w, testRegionsCSV)
		case "/master/json-schema/config-schema.json":
			fmt.Fprint(w, testSchemaJSON)
		case "/master/json-schema/prototype_config.yml":
			fmt.Fprint(w, testPrototype)
		case "/master/config/config.yml.template":
			fmt.Fprint(w, testTemplate)
		default:
			http.NotFound(w, r)
		}
	}))

	logger := logrus.New()
	lists := iso.NewLists(logger)
	lists.LanguagesURL = fixtures.URL + "/languages.csv"
	lists.RegionsURL = fixtures.URL + "/regions.csv"

	cfg := &config.Config{}
	cfg.Schema.BaseURL = fixtures.URL
	cfg.Schema.Dir = t.TempDir()
	schemas := schema.NewLoader(cfg, logger)
	if err := schemas.EnsureCurrent("master"); err != nil {
		t.Fatalf("failed to mirror schema fixtures: %v", err)
	}

	h := NewHandlers(mockWizard, mockBuilder, mockInfo, lists, schemas, "master", cfg)

	r := mux.NewRouter()
	r.HandleFunc("/health", HealthCheck).Methods("GET")
	r.HandleFunc("/api/info", h.GetInfo).Methods("GET")
	r.HandleFunc("/api/step/{source}", h.SaveStep).Methods("POST")
	r.HandleFunc("/api/step/{source}", h.GetStep).Methods("GET")
	r.HandleFunc("/api/step/{source}", h.ResetStep).Methods("DELETE")
	r.HandleFunc("/api/configs", h.ListConfigs).Methods("GET")
	r.HandleFunc("/api/configs", h.NewConfigName).Methods("POST")
	r.HandleFunc("/api/config/status", h.GetWalkStatus).Methods("GET")
	r.HandleFunc("/api/config", h.ResetConfig).Methods("DELETE")
	r.HandleFunc("/api/config/build", h.BuildConfig).Methods("POST")
	r.HandleFunc("/api/config/download", h.DownloadConfig).Methods("GET")
	r.HandleFunc("/api/config/template", h.GetTemplate).Methods("GET")
	r.HandleFunc("/api/validate/{provider}", h.ValidateProvider).Methods("POST")
	r.HandleFunc("/api/lists/languages", h.GetLanguages).Methods("GET")
	r.HandleFunc("/api/lists/regions", h.GetRegions).Methods("GET")

	server := httptest.NewServer(r)

	cleanup := func() {
		server.Close()
		fixtures.Close()
	}

	return server, mockWizard, mockBuilder, mockInfo, cleanup
}

// doRequest performs a bodyless request with an arbitrary method.
func doRequest(t *testing.T, method, url string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
