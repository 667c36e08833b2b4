package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quickstart/internal/models"
)

func TestValidateProvider_Success(t *testing.T) {
	server, mockWizard, _, _, cleanup := setupHandlerTestAPI(t)
	defer cleanup()

	params := map[string]string{"url": "http://plex:32400", "token": "abc123"}
	result := &models.ValidationResult{Provider: "plex", Valid: true}
	mockWizard.On("ValidateProvider", mock.Anything, "default", "plex", params).
		Return(result, nil).Once()

	form := url.Values{"url": {"http://plex:32400"}, "token": {"abc123"}}
	resp, err := http.PostForm(server.URL+"/api/validate/plex", form)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.ValidationResult
	err = json.NewDecoder(resp.Body).Decode(&got)
	assert.NoError(t, err)
	assert.True(t, got.Valid)
	assert.Equal(t, "plex", got.Provider)

	mockWizard.AssertExpectations(t)
}

func TestValidateProvider_Failure(t *testing.T) {
	server, mockWizard, _, _, cleanup := setupHandlerTestAPI(t)
	defer cleanup()

	params := map[string]string{"apikey": "wrong"}
	result := &models.ValidationResult{Provider: "tmdb", Valid: false, Error: "unexpected status 401"}
	mockWizard.On("ValidateProvider", mock.Anything, "default", "tmdb", params).
		Return(result, nil).Once()

	resp, err := http.PostForm(server.URL+"/api/validate/tmdb", url.Values{"apikey": {"wrong"}})
	assert.NoError(t, err)
	defer resp.Body.Close()

	// Connection failures are reported in the body, not the status.
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.ValidationResult
	err = json.NewDecoder(resp.Body).Decode(&got)
	assert.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Contains(t, got.Error, "401")

	mockWizard.AssertExpectations(t)
}

func TestValidateProvider_OAuthData(t *testing.T) {
	server, mockWizard, _, _, cleanup := setupHandlerTestAPI(t)
	defer cleanup()

	params := map[string]string{"client_id": "id", "client_secret": "secret", "pin": "12345678"}
	result := &models.ValidationResult{
		Provider: "trakt",
		Valid:    true,
		Data: map[string]interface{}{
			"access_token":  "tok",
			"refresh_token": "ref",
		},
	}
	mockWizard.On("ValidateProvider", mock.Anything, "default", "trakt", params).
		Return(result, nil).Once()

	form := url.Values{"client_id": {"id"}, "client_secret": {"secret"}, "pin": {"12345678"}}
	resp, err := http.PostForm(server.URL+"/api/validate/trakt", form)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.ValidationResult
	err = json.NewDecoder(resp.Body).Decode(&got)
	assert.NoError(t, err)
	assert.Equal(t, "tok", got.Data["access_token"])

	mockWizard.AssertExpectations(t)
}
