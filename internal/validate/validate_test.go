package validate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickstart/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(logging.NewLogger("error"))
	for name := range c.Endpoints {
		c.Endpoints[name] = srv.URL
	}
	return c, srv
}

func TestCheckUnknownProvider(t *testing.T) {
	c := NewClient(logging.NewLogger("error"))
	_, err := c.Check(context.Background(), "unheard-of", Params{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestCheckMissingFields(t *testing.T) {
	c := NewClient(logging.NewLogger("error"))
	_, err := c.Check(context.Background(), "plex", Params{"url": "http://localhost:32400"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestCheckPlex(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identity", r.URL.Path)
		assert.Equal(t, "plex-token", r.Header.Get("X-Plex-Token"))
		w.WriteHeader(http.StatusOK)
	})

	data, err := c.Check(context.Background(), "plex", Params{
		"url":   srv.URL,
		"token": "plex-token",
	})
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCheckPlexBadToken(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Check(context.Background(), "plex", Params{
		"url":   srv.URL,
		"token": "wrong",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCheckTautulli(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "status", r.URL.Query().Get("cmd"))
	})

	_, err := c.Check(context.Background(), "tautulli", Params{"url": srv.URL, "apikey": "key"})
	assert.NoError(t, err)
}

func TestCheckArrServices(t *testing.T) {
	for _, provider := range []string{"radarr", "sonarr"} {
		t.Run(provider, func(t *testing.T) {
			c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v3/system/status", r.URL.Path)
				assert.Equal(t, "arr-key", r.Header.Get("X-Api-Key"))
			})

			_, err := c.Check(context.Background(), provider, Params{
				"url":   srv.URL,
				"token": "arr-key",
			})
			assert.NoError(t, err)
		})
	}
}

func TestCheckTMDb(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/configuration", r.URL.Path)
		assert.Equal(t, "tmdb-key", r.URL.Query().Get("api_key"))
	})

	_, err := c.Check(context.Background(), "tmdb", Params{"apikey": "tmdb-key"})
	assert.NoError(t, err)
}

func TestCheckNotifiarr(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/user/validate/notif-key", r.URL.Path)
	})

	_, err := c.Check(context.Background(), "notifiarr", Params{"apikey": "notif-key"})
	assert.NoError(t, err)
}

func TestCheckTraktReturnsTokens(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1234", r.PostForm.Get("code"))
		assert.Equal(t, "cid", r.PostForm.Get("client_id"))
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "tok",
			"refresh_token": "ref",
			"token_type":    "Bearer",
		})
	})

	data, err := c.Check(context.Background(), "trakt", Params{
		"client_id":     "cid",
		"client_secret": "csecret",
		"pin":           "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", data["access_token"])
	assert.Equal(t, "ref", data["refresh_token"])
}

func TestCheckMALRequiresCodeVerifier(t *testing.T) {
	c := NewClient(logging.NewLogger("error"))
	_, err := c.Check(context.Background(), "mal", Params{
		"client_id":     "cid",
		"client_secret": "csecret",
		"code":          "auth-code",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code_verifier")
}

func TestCheckMALExchangesCode(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/oauth2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "verifier", r.PostForm.Get("code_verifier"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "mal-tok"})
	})

	data, err := c.Check(context.Background(), "mal", Params{
		"client_id":     "cid",
		"client_secret": "csecret",
		"code":          "auth-code",
		"code_verifier": "verifier",
	})
	require.NoError(t, err)
	assert.Equal(t, "mal-tok", data["access_token"])
}

func TestCheckTraktErrorSurfacesBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_grant", http.StatusUnauthorized)
	})

	_, err := c.Check(context.Background(), "trakt", Params{
		"client_id":     "cid",
		"client_secret": "csecret",
		"pin":           "bad",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestProviders(t *testing.T) {
	names := Providers()
	assert.Len(t, names, 13)
	assert.Contains(t, names, "plex")
	assert.Contains(t, names, "mal")
}
