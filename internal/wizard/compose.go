package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"quickstart/internal/shared"
)

// SectionOrder is the fixed emission order of the final document.
var SectionOrder = []string{
	"libraries",
	"playlist_files",
	"settings",
	"webhooks",
	"plex",
	"tmdb",
	"tautulli",
	"github",
	"omdb",
	"mdblist",
	"notifiarr",
	"gotify",
	"ntfy",
	"anidb",
	"radarr",
	"sonarr",
	"trakt",
	"mal",
}

// alphabetizedSections have their mapping keys sorted on output. Lists are
// never reordered.
var alphabetizedSections = map[string]bool{
	"settings": true, "webhooks": true, "plex": true, "tmdb": true,
	"tautulli": true, "github": true, "omdb": true, "mdblist": true,
	"notifiarr": true, "gotify": true, "ntfy": true, "anidb": true,
	"radarr": true, "sonarr": true, "trakt": true, "mal": true,
}

// stringFields are credential-ish keys whose values must always serialize
// as strings, so numeric-looking secrets never lose their quoting.
var stringFields = map[string]bool{
	"apikey":   true,
	"token":    true,
	"username": true,
	"password": true,
}

const headerComment = "### We highly recommend using Visual Studio Code with indent-rainbow by oderwat " +
	"extension and YAML by Red Hat extension. VSC will also leverage the above link to enhance Kometa yml edits."

// SchemaValidator validates a decoded document against the config schema.
type SchemaValidator interface {
	Validate(v interface{}) error
}

// ComposeInput carries everything the composer needs; it reads no ambient
// state, so identical inputs always produce identical output.
type ComposeInput struct {
	ConfigName  string
	HeaderStyle string
	// Branch selects the schema reference in the document header
	// ("master" or "nightly").
	Branch string
	// Sections maps section key to its stored payload, already filtered
	// to validated sections by the caller.
	Sections map[string]map[string]interface{}
	Schema   SchemaValidator
}

// ComposeResult is the rendered document plus its validation outcome. The
// document is always produced; validation failure only annotates it.
type ComposeResult struct {
	YAML            string
	Config          *Dict
	Valid           bool
	ValidationError error
}

// ComposeDocument assembles the final configuration document from stored
// section payloads: fixed section ordering, per-section cleanup, library
// assembly, banner headers, and post-render schema validation.
func ComposeDocument(in ComposeInput) ComposeResult {
	configData := NewDict()

	for _, section := range SectionOrder {
		payload, ok := in.Sections[section]
		if !ok {
			continue
		}
		content, ok := sectionContent(payload, section)
		if !ok {
			continue
		}
		configData.Set(section, content)
	}

	branch := in.Branch
	if branch == "" {
		branch = "nightly"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		"# yaml-language-server: $schema=https://raw.githubusercontent.com/Kometa-Team/Kometa/%s/json-schema/config-schema.json\n\n",
		branch))
	writeBanner(&sb, SectionHeading("KOMETA", in.HeaderStyle))
	writeBanner(&sb, SectionHeading(in.ConfigName, in.HeaderStyle))
	sb.WriteString(headerComment + "\n\n")

	for _, section := range configData.Keys() {
		content, _ := configData.Get(section)
		step, hasStep := stepForSection(section)
		title := section
		if hasStep {
			title = step.Title
		}

		chunk := NewDict()
		chunk.Set(section, content)
		rendered, err := marshalBlock(chunk)
		if err != nil {
			// A section that cannot serialize is dropped, not fatal.
			continue
		}

		if banner := SectionHeading(title, in.HeaderStyle); banner != "" {
			sb.WriteString(banner + "\n")
		}
		sb.WriteString(strings.TrimRight(rendered, "\n") + "\n\n")
	}

	result := ComposeResult{
		YAML:   sb.String(),
		Config: configData,
	}
	result.Valid, result.ValidationError = validateDocument(result.YAML, in.Schema)
	return result
}

// sectionContent extracts, cleans, and (where the section demands it)
// restructures the stored payload of one section. The second return is
// false when the section should be omitted from the document.
func sectionContent(payload map[string]interface{}, section string) (interface{}, bool) {
	raw, ok := payload[section]
	if !ok {
		return nil, false
	}

	content := stripTempKeys(raw)

	switch section {
	case "libraries":
		flat, isMap := content.(map[string]interface{})
		if !isMap {
			return nil, false
		}
		assembled := AssembleLibraries(flat)
		inner, _ := assembled.Get("libraries")
		entries, _ := inner.(*Dict)
		if entries == nil || entries.Len() == 0 {
			return nil, false
		}
		return enforceStringFieldsValue(stripValidKeys(entries)), true

	case "playlist_files":
		m, isMap := content.(map[string]interface{})
		if !isMap {
			return nil, false
		}
		return playlistFilesContent(m), true

	case "webhooks":
		m, isMap := content.(map[string]interface{})
		if !isMap {
			return nil, false
		}
		pruned := pruneEmpty(m)
		if len(pruned) == 0 {
			return nil, false
		}
		content = pruned

	case "settings":
		if m, isMap := content.(map[string]interface{}); isMap {
			normalizeAssetDirectory(m)
		}

	case "mal":
		if m, isMap := content.(map[string]interface{}); isMap {
			if auth, isAuth := m["authorization"].(map[string]interface{}); isAuth {
				delete(auth, "code_verifier")
			}
		}
	}

	content = enforceStringFieldsValue(stripValidKeys(content))

	if alphabetizedSections[section] {
		if m, isMap := content.(map[string]interface{}); isMap {
			return SortedDict(m), true
		}
	}
	return content, true
}

// playlistFilesContent rewrites the stored comma-separated library list
// into the structured defaults-file shape.
func playlistFilesContent(m map[string]interface{}) interface{} {
	libraries := ""
	if v, ok := m["libraries"].(string); ok {
		libraries = v
	}

	list := FlowList{}
	for _, lib := range strings.Split(libraries, ",") {
		if trimmed := strings.TrimSpace(lib); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	tv := NewDict()
	tv.Set("libraries", list)
	entry := NewDict()
	entry.Set("default", "playlist")
	entry.Set("template_variables", tv)
	return []interface{}{entry}
}

func normalizeAssetDirectory(settings map[string]interface{}) {
	switch v := settings["asset_directory"].(type) {
	case string:
		dirs := []interface{}{}
		for _, line := range strings.Split(v, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				dirs = append(dirs, trimmed)
			}
		}
		settings["asset_directory"] = dirs
	case []interface{}:
		dirs := make([]interface{}, 0, len(v))
		for _, item := range v {
			dirs = append(dirs, strings.TrimSpace(fmt.Sprintf("%v", item)))
		}
		settings["asset_directory"] = dirs
	}
}

// stripTempKeys drops "tmp_"-prefixed keys from the section's immediate
// sub-mapping; they are scratch fields the UI stores alongside real ones.
func stripTempKeys(content interface{}) interface{} {
	m, ok := content.(map[string]interface{})
	if !ok {
		return content
	}
	clean := map[string]interface{}{}
	for k, v := range m {
		if !strings.HasPrefix(k, "tmp_") {
			clean[k] = v
		}
	}
	return clean
}

// stripValidKeys removes the internal "valid" marker at every nesting level.
func stripValidKeys(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := map[string]interface{}{}
		for k, val := range t {
			if k == "valid" {
				continue
			}
			out[k] = stripValidKeys(val)
		}
		return out
	case *Dict:
		out := NewDict()
		for _, k := range t.Keys() {
			if k == "valid" {
				continue
			}
			val, _ := t.Get(k)
			out.Set(k, stripValidKeys(val))
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = stripValidKeys(item)
		}
		return out
	default:
		return v
	}
}

// enforceStringFieldsValue coerces credential fields to strings at every
// nesting depth, including list members stored under a credential key.
func enforceStringFieldsValue(v interface{}) interface{} {
	return enforceStringFieldsUnder(v, false)
}

func enforceStringFieldsUnder(v interface{}, stringify bool) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := map[string]interface{}{}
		for k, val := range t {
			out[k] = enforceStringFieldsUnder(val, stringFields[k])
		}
		return out
	case *Dict:
		out := NewDict()
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out.Set(k, enforceStringFieldsUnder(val, stringFields[k]))
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = enforceStringFieldsUnder(item, stringify)
		}
		return out
	default:
		if stringify && t != nil {
			return fmt.Sprintf("%v", t)
		}
		return t
	}
}

func pruneEmpty(m map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t == "" {
				continue
			}
		case []interface{}:
			if len(t) == 0 {
				continue
			}
		case map[string]interface{}:
			if len(t) == 0 {
				continue
			}
		}
		out[k] = v
	}
	return out
}

func writeBanner(sb *strings.Builder, banner string) {
	if banner != "" {
		sb.WriteString(banner + "\n\n")
	}
}

func stepForSection(section string) (Step, bool) {
	for _, s := range Steps {
		if s.Section == section {
			return s, true
		}
	}
	return Step{}, false
}

func marshalBlock(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// validateDocument re-parses the rendered document and checks it against
// the schema. The document has already been produced; failures only mark
// it invalid.
func validateDocument(content string, schema SchemaValidator) (bool, error) {
	if schema == nil {
		return false, shared.ErrSchemaUnavailable
	}

	var doc interface{}
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return false, fmt.Errorf("rendered document is not parseable: %w", err)
	}

	// Route through JSON so the validator sees the value kinds it expects.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("failed to prepare document for validation: %w", err)
	}
	var jsonDoc interface{}
	if err := json.Unmarshal(jsonBytes, &jsonDoc); err != nil {
		return false, err
	}

	if err := schema.Validate(jsonDoc); err != nil {
		return false, err
	}
	return true, nil
}
