package schema

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"quickstart/internal/config"
	"quickstart/internal/shared"
)

// Remote files mirrored per branch. The prototype config supplies the
// dummy values pre-filled into wizard forms, the schema validates the
// final document, and the template is the upstream starter config offered
// as a download.
const (
	schemaFile    = "config-schema.json"
	prototypeFile = "prototype_config.yml"
	templateFile  = "config.yml.template"
)

// remoteDirs maps each mirrored file to its directory in the Kometa repo.
// The template lives outside json-schema upstream.
var remoteDirs = map[string]string{
	schemaFile:    "json-schema",
	prototypeFile: "json-schema",
	templateFile:  "config",
}

// Loader mirrors the Kometa schema files for one or more branches into a
// local directory and hands out parsed views of them. Fetches are hash
// checked so an unchanged remote never rewrites local files, and a failed
// fetch falls back to the stale local copy when one exists.
type Loader struct {
	BaseURL string
	Dir     string
	Client  *http.Client
	Cache   *cache.Cache
	Logger  *logrus.Logger
}

func NewLoader(cfg *config.Config, logger *logrus.Logger) *Loader {
	return &Loader{
		BaseURL: cfg.Schema.BaseURL,
		Dir:     cfg.Schema.Dir,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Cache:   cache.New(30*time.Minute, 10*time.Minute),
		Logger:  logger,
	}
}

// EnsureCurrent refreshes the local mirror of one branch. Files already
// matching the remote hash are left untouched; fetch failures keep the
// stale copy and only error when no local copy exists at all.
func (l *Loader) EnsureCurrent(branch string) error {
	for _, name := range []string{schemaFile, prototypeFile, templateFile} {
		if err := l.mirrorFile(branch, name); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) mirrorFile(branch, name string) error {
	localPath := l.localPath(branch, name)
	hashPath := localPath + ".sha256"

	body, err := l.fetch(branch, name)
	if err != nil {
		if _, statErr := os.Stat(localPath); statErr == nil {
			l.Logger.WithError(err).Warnf("Using stale local copy of %s/%s", branch, name)
			return nil
		}
		return fmt.Errorf("failed to fetch %s for branch %s: %w", name, branch, err)
	}

	sum := sha256.Sum256(body)
	digest := hex.EncodeToString(sum[:])

	if stored, readErr := os.ReadFile(hashPath); readErr == nil && string(stored) == digest {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}
	if err := os.WriteFile(localPath, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", localPath, err)
	}
	if err := os.WriteFile(hashPath, []byte(digest), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", hashPath, err)
	}

	// New file contents invalidate anything parsed from the old ones.
	l.Cache.Delete(cacheKey(branch, name))
	l.Logger.Infof("Updated %s for branch %s", name, branch)
	return nil
}

func (l *Loader) fetch(branch, name string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s/%s", l.BaseURL, branch, remoteDirs[name], name)
	resp, err := l.Client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// Validator compiles the branch's config schema, memoizing the compiled
// form until the mirror is refreshed.
func (l *Loader) Validator(branch string) (*jsonschema.Schema, error) {
	key := cacheKey(branch, schemaFile)
	if cached, found := l.Cache.Get(key); found {
		return cached.(*jsonschema.Schema), nil
	}

	data, err := os.ReadFile(l.localPath(branch, schemaFile))
	if err != nil {
		return nil, shared.ErrSchemaUnavailable
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaFile, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to load config schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile config schema: %w", err)
	}

	l.Cache.Set(key, compiled, cache.DefaultExpiration)
	return compiled, nil
}

// DummyPayload returns the prototype values of one section, in the same
// nested shape the wizard persists. Missing sections yield an empty map
// rather than an error so unvisited steps render blank forms.
func (l *Loader) DummyPayload(branch, section string) (map[string]interface{}, error) {
	doc, err := l.prototype(branch)
	if err != nil {
		return nil, err
	}

	content, ok := doc[section].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}, nil
	}
	return map[string]interface{}{section: content}, nil
}

func (l *Loader) prototype(branch string) (map[string]interface{}, error) {
	key := cacheKey(branch, prototypeFile)
	if cached, found := l.Cache.Get(key); found {
		return cached.(map[string]interface{}), nil
	}

	data, err := os.ReadFile(l.localPath(branch, prototypeFile))
	if err != nil {
		return nil, shared.ErrSchemaUnavailable
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse prototype config: %w", err)
	}

	l.Cache.Set(key, doc, cache.DefaultExpiration)
	return doc, nil
}

// Template returns the upstream starter config for a branch.
func (l *Loader) Template(branch string) ([]byte, error) {
	data, err := os.ReadFile(l.localPath(branch, templateFile))
	if err != nil {
		return nil, shared.ErrSchemaUnavailable
	}
	return data, nil
}

func (l *Loader) localPath(branch, name string) string {
	return filepath.Join(l.Dir, branch, name)
}

func cacheKey(branch, name string) string {
	return branch + "/" + name
}
