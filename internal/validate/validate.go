package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"quickstart/internal/shared"
)

// ErrUnknownProvider is returned for provider names without a registered
// connection check.
const ErrUnknownProvider = shared.Error("unknown provider")

// Params carries the connection fields submitted for one provider.
type Params map[string]string

// Client performs live connection checks against the external services a
// configuration references. Hosted API endpoints are overridable so tests
// can point them at local servers.
type Client struct {
	HTTP      *http.Client
	Logger    *logrus.Logger
	Endpoints map[string]string
}

func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		HTTP:   &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
		Endpoints: map[string]string{
			"omdb":      "https://www.omdbapi.com",
			"github":    "https://api.github.com",
			"tmdb":      "https://api.themoviedb.org",
			"mdblist":   "https://mdblist.com",
			"notifiarr": "https://notifiarr.com",
			"trakt":     "https://api.trakt.tv",
			"mal":       "https://myanimelist.net",
		},
	}
}

type checkFunc func(ctx context.Context, c *Client, p Params) (map[string]interface{}, error)

var checks = map[string]checkFunc{
	"plex":      checkPlex,
	"tautulli":  checkTautulli,
	"radarr":    checkArr,
	"sonarr":    checkArr,
	"omdb":      checkOMDb,
	"github":    checkGitHub,
	"tmdb":      checkTMDb,
	"mdblist":   checkMDBList,
	"notifiarr": checkNotifiarr,
	"gotify":    checkGotify,
	"ntfy":      checkNtfy,
	"trakt":     checkTrakt,
	"mal":       checkMAL,
}

// Providers lists every provider with a registered connection check.
func Providers() []string {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	return names
}

// Check runs the connection check for one provider. The returned map holds
// provider data to merge into the stored section (OAuth tokens); most
// providers return nil.
func (c *Client) Check(ctx context.Context, provider string, p Params) (map[string]interface{}, error) {
	check, ok := checks[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	c.Logger.WithField("provider", provider).Debug("Running connection check")
	data, err := check(ctx, c, p)
	if err != nil {
		c.Logger.WithField("provider", provider).WithError(err).Info("Connection check failed")
	}
	return data, err
}

func (c *Client) endpoint(name string) string {
	return strings.TrimRight(c.Endpoints[name], "/")
}

func (c *Client) get(ctx context.Context, rawURL string, header http.Header) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return data, nil
}

func required(p Params, fields ...string) error {
	for _, f := range fields {
		if strings.TrimSpace(p[f]) == "" {
			return fmt.Errorf("missing required field %q", f)
		}
	}
	return nil
}

func serviceURL(p Params) string {
	return strings.TrimRight(p["url"], "/")
}

func checkPlex(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "url", "token"); err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("X-Plex-Token", p["token"])
	header.Set("Accept", "application/json")
	return nil, c.get(ctx, serviceURL(p)+"/identity", header)
}

func checkTautulli(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "url", "apikey"); err != nil {
		return nil, err
	}
	q := url.Values{"apikey": {p["apikey"]}, "cmd": {"status"}}
	return nil, c.get(ctx, serviceURL(p)+"/api/v2?"+q.Encode(), nil)
}

// checkArr covers Radarr and Sonarr; both expose the same status endpoint.
func checkArr(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "url", "token"); err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("X-Api-Key", p["token"])
	return nil, c.get(ctx, serviceURL(p)+"/api/v3/system/status", header)
}

func checkOMDb(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "apikey"); err != nil {
		return nil, err
	}
	q := url.Values{"apikey": {p["apikey"]}, "i": {"tt0080684"}}
	return nil, c.get(ctx, c.endpoint("omdb")+"/?"+q.Encode(), nil)
}

func checkGitHub(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "token"); err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("Authorization", "token "+p["token"])
	return nil, c.get(ctx, c.endpoint("github")+"/rate_limit", header)
}

func checkTMDb(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "apikey"); err != nil {
		return nil, err
	}
	q := url.Values{"api_key": {p["apikey"]}}
	return nil, c.get(ctx, c.endpoint("tmdb")+"/3/configuration?"+q.Encode(), nil)
}

func checkMDBList(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "apikey"); err != nil {
		return nil, err
	}
	q := url.Values{"apikey": {p["apikey"]}}
	return nil, c.get(ctx, c.endpoint("mdblist")+"/api/user?"+q.Encode(), nil)
}

func checkNotifiarr(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "apikey"); err != nil {
		return nil, err
	}
	return nil, c.get(ctx, c.endpoint("notifiarr")+"/api/v1/user/validate/"+url.PathEscape(p["apikey"]), nil)
}

func checkGotify(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "url", "token"); err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set("X-Gotify-Key", p["token"])
	return nil, c.get(ctx, serviceURL(p)+"/version", header)
}

func checkNtfy(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "url"); err != nil {
		return nil, err
	}
	return nil, c.get(ctx, serviceURL(p)+"/v1/health", nil)
}

// checkTrakt exchanges the user's PIN for OAuth tokens; the token response
// is merged into the stored section's authorization block.
func checkTrakt(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "client_id", "client_secret", "pin"); err != nil {
		return nil, err
	}
	form := url.Values{
		"code":          {p["pin"]},
		"client_id":     {p["client_id"]},
		"client_secret": {p["client_secret"]},
		"redirect_uri":  {"urn:ietf:wg:oauth:2.0:oob"},
		"grant_type":    {"authorization_code"},
	}
	return c.postForm(ctx, c.endpoint("trakt")+"/oauth/token", form)
}

// checkMAL completes the PKCE flow: the stored code verifier proves this
// session initiated the authorization.
func checkMAL(ctx context.Context, c *Client, p Params) (map[string]interface{}, error) {
	if err := required(p, "client_id", "client_secret", "code", "code_verifier"); err != nil {
		return nil, err
	}
	form := url.Values{
		"client_id":     {p["client_id"]},
		"client_secret": {p["client_secret"]},
		"code":          {p["code"]},
		"code_verifier": {p["code_verifier"]},
		"grant_type":    {"authorization_code"},
	}
	return c.postForm(ctx, c.endpoint("mal")+"/v1/oauth2/token", form)
}
