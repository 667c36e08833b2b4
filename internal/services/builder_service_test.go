package services

import (
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickstart/internal/logging"
	"quickstart/internal/repository"
	"quickstart/internal/wizard"
)

type fakeValidatorSource struct {
	schema *jsonschema.Schema
	err    error
}

func (f *fakeValidatorSource) Validator(branch string) (*jsonschema.Schema, error) {
	return f.schema, f.err
}

func permissiveSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	return jsonschema.MustCompileString("config-schema.json", `{"type": "object"}`)
}

func strictSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	return jsonschema.MustCompileString("config-schema.json",
		`{"type": "object", "required": ["radarr"]}`)
}

func newTestBuilder(t *testing.T, schemas *fakeValidatorSource) (*builderService, *repository.Repository) {
	t.Helper()
	repo := setupTestRepo(t)
	return NewBuilderService(repo, schemas, "master", logging.NewLogger("error")), repo
}

func seedSections(t *testing.T, repo *repository.Repository) {
	t.Helper()
	require.NoError(t, repo.SaveSection(repository.SectionRecord{
		Name: "default", Section: "plex", Validated: true, UserEntered: true,
		Payload: map[string]interface{}{
			"validated": true,
			"plex": map[string]interface{}{
				"url":   "http://localhost:32400",
				"token": "plex-token",
			},
		},
	}))
	require.NoError(t, repo.SaveSection(repository.SectionRecord{
		Name: "default", Section: "tmdb", Validated: true, UserEntered: true,
		Payload: map[string]interface{}{
			"validated": true,
			"tmdb":      map[string]interface{}{"apikey": "tmdb-key"},
		},
	}))
	// Unvalidated sections stay out of the document.
	require.NoError(t, repo.SaveSection(repository.SectionRecord{
		Name: "default", Section: "radarr", Validated: false,
		Payload: map[string]interface{}{
			"radarr": map[string]interface{}{"url": "http://localhost:7878"},
		},
	}))
}

func TestBuildConfig(t *testing.T) {
	svc, repo := newTestBuilder(t, &fakeValidatorSource{schema: permissiveSchema(t)})
	seedSections(t, repo)

	result, err := svc.BuildConfig("default", wizard.HeaderStyleSingleLine)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.ValidationError)
	assert.Contains(t, result.YAML, "plex:")
	assert.Contains(t, result.YAML, "token: plex-token")
	assert.Contains(t, result.YAML, "tmdb:")
	assert.NotContains(t, result.YAML, "radarr:", "unvalidated sections are excluded")
	assert.Contains(t, result.YAML, "/Kometa/master/json-schema/config-schema.json")
}

func TestBuildConfigSchemaRejection(t *testing.T) {
	svc, repo := newTestBuilder(t, &fakeValidatorSource{schema: strictSchema(t)})
	seedSections(t, repo)

	result, err := svc.BuildConfig("default", wizard.HeaderStyleNone)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.ValidationError)
	assert.NotEmpty(t, result.YAML, "document is produced despite validation failure")
}

func TestBuildConfigWithoutSchema(t *testing.T) {
	svc, repo := newTestBuilder(t, &fakeValidatorSource{err: assert.AnError})
	seedSections(t, repo)

	result, err := svc.BuildConfig("default", wizard.HeaderStyleNone)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	assert.Contains(t, result.ValidationError, "schema")
	assert.Contains(t, result.YAML, "plex:")
}

func TestBuildConfigUnknownName(t *testing.T) {
	svc, _ := newTestBuilder(t, &fakeValidatorSource{schema: permissiveSchema(t)})

	_, err := svc.BuildConfig("nobody", wizard.HeaderStyleNone)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadRedacted(t *testing.T) {
	svc, repo := newTestBuilder(t, &fakeValidatorSource{schema: permissiveSchema(t)})
	seedSections(t, repo)

	plain, err := svc.Download("default", wizard.HeaderStyleNone, false)
	require.NoError(t, err)
	assert.Contains(t, plain.YAML, "plex-token")

	redacted, err := svc.Download("default", wizard.HeaderStyleNone, true)
	require.NoError(t, err)
	assert.NotContains(t, redacted.YAML, "plex-token")
	assert.Contains(t, redacted.YAML, "token: (redacted)")
	assert.True(t, strings.Contains(redacted.YAML, "apikey: (redacted)"))
}

func TestBuildConfigDefaultHeaderStyle(t *testing.T) {
	svc, repo := newTestBuilder(t, &fakeValidatorSource{schema: permissiveSchema(t)})
	seedSections(t, repo)

	result, err := svc.BuildConfig("default", "")
	require.NoError(t, err)
	assert.Contains(t, result.YAML, "#==================== KOMETA ====================#")
}
