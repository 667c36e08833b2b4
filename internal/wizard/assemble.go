package wizard

import (
	"sort"
	"strings"

	"quickstart/internal/shared"
)

// libraryGroups holds one library's per-facet fields, keyed by subkey.
type libraryGroups struct {
	selected     bool
	collections  map[string]interface{}
	overlays     map[string]interface{}
	attributes   map[string]interface{}
	templateVars map[string]interface{}
	topLevel     map[string]interface{}
}

func newLibraryGroups() *libraryGroups {
	return &libraryGroups{
		collections:  map[string]interface{}{},
		overlays:     map[string]interface{}{},
		attributes:   map[string]interface{}{},
		templateVars: map[string]interface{}{},
		topLevel:     map[string]interface{}{},
	}
}

func (g *libraryGroups) populated() bool {
	return len(g.collections) > 0 || len(g.overlays) > 0 ||
		len(g.attributes) > 0 || len(g.templateVars) > 0 || len(g.topLevel) > 0
}

// AssembleLibraries rebuilds the nested libraries section from the flat,
// prefix-encoded payload of the libraries step. The result maps each
// selected library's display name to its ordered entry; libraries with no
// populated facets are omitted entirely.
func AssembleLibraries(payload map[string]interface{}) *Dict {
	grouped := map[LibraryType]map[string]*libraryGroups{
		TypeMovie: {},
		TypeShow:  {},
	}

	for _, key := range sortedKeys(payload) {
		tagged, ok := ParseLibraryKey(key)
		if !ok {
			continue
		}
		value := payload[key]

		groups, exists := grouped[tagged.Type][tagged.Library]
		if !exists {
			groups = newLibraryGroups()
			grouped[tagged.Type][tagged.Library] = groups
		}

		switch tagged.Facet {
		case FacetLibrary:
			groups.selected = shared.Booler(value)
		case FacetCollection:
			groups.collections[tagged.Subkey] = value
		case FacetOverlay:
			groups.overlays[tagged.Subkey] = value
		case FacetAttribute:
			groups.attributes[tagged.Subkey] = value
		case FacetTemplateVars:
			mergeTemplateVars(groups.templateVars, tagged.Subkey, value)
		case FacetTopLevel:
			groups.topLevel[tagged.Subkey] = value
		}
	}

	libraries := NewDict()
	for _, typ := range LibraryTypes {
		typeTV := typeTemplateVars(payload, typ)
		for _, name := range sortedGroupNames(grouped[typ]) {
			groups := grouped[typ][name]
			if !groups.selected || !groups.populated() {
				continue
			}
			libraries.Set(name, buildLibraryEntry(groups, typeTV))
		}
	}

	result := NewDict()
	result.Set("libraries", libraries)
	return result
}

// buildLibraryEntry assembles one library's output mapping in its fixed
// ordering: remove_overlays, reset_overlays, template_variables,
// operations, then the remaining keys.
func buildLibraryEntry(groups *libraryGroups, typeTV map[string]interface{}) *Dict {
	entry := NewDict()

	if shared.Booler(groups.topLevel["remove_overlays"]) {
		entry.Set("remove_overlays", true)
	}
	if reset, ok := groups.topLevel["reset_overlays"]; ok && isSet(reset) {
		entry.Set("reset_overlays", reset)
	}

	tv := groups.templateVars
	if len(tv) == 0 {
		tv = typeTV
	}
	entry.Set("template_variables", buildTemplateVariables(tv))

	if ops := buildOperations(groups.attributes); ops.Len() > 0 {
		entry.Set("operations", ops)
	}

	if files := buildCollectionFiles(groups.collections); len(files) > 0 {
		entry.Set("collection_files", files)
	}
	if files := buildOverlayFiles(groups.overlays); len(files) > 0 {
		entry.Set("overlay_files", files)
	}

	return entry
}

func buildCollectionFiles(collections map[string]interface{}) []interface{} {
	files := make([]interface{}, 0, len(collections))
	for _, name := range sortedKeys(collections) {
		if shared.Booler(collections[name]) {
			files = append(files, defaultsFile(name))
		}
	}
	return files
}

// buildOverlayFiles maps each selected overlay to a defaults file entry.
// String-valued overlays select a content rating scheme: "commonsense"
// stands alone, any other value becomes "content_rating_{value}".
func buildOverlayFiles(overlays map[string]interface{}) []interface{} {
	files := make([]interface{}, 0, len(overlays))
	for _, name := range sortedKeys(overlays) {
		switch v := overlays[name].(type) {
		case bool:
			if v {
				files = append(files, defaultsFile(name))
			}
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" || strings.EqualFold(trimmed, "none") {
				continue
			}
			if strings.EqualFold(trimmed, "commonsense") {
				files = append(files, defaultsFile("commonsense"))
			} else {
				files = append(files, defaultsFile("content_rating_"+trimmed))
			}
		}
	}
	return files
}

// buildTemplateVariables always yields a mapping: use_separator reports
// whether a separator color was chosen at all, and sep_style carries the
// chosen style when one was set.
func buildTemplateVariables(tv map[string]interface{}) *Dict {
	out := NewDict()
	out.Set("use_separator", isSet(tv["use_separators"]))
	if sep, ok := tv["sep_style"]; ok && isSet(sep) {
		if s, isString := sep.(string); isString {
			out.Set("sep_style", strings.TrimSpace(s))
		} else {
			out.Set("sep_style", sep)
		}
	}
	return out
}

// typeTemplateVars reads the step-wide template variables stored under
// "{type}-template_variables"; they apply to every library of that type
// that has no scoped template variables of its own.
func typeTemplateVars(payload map[string]interface{}, typ LibraryType) map[string]interface{} {
	if tv, ok := payload[string(typ)+"-template_variables"].(map[string]interface{}); ok {
		return tv
	}
	return map[string]interface{}{}
}

func defaultsFile(name string) *Dict {
	d := NewDict()
	d.Set("default", name)
	return d
}

func mergeTemplateVars(dst map[string]interface{}, subkey string, value interface{}) {
	if subkey != "" {
		dst[subkey] = value
		return
	}
	// Whole-mapping form: the normalizer stores nested template variables
	// under the bare key.
	if nested, ok := value.(map[string]interface{}); ok {
		for k, v := range nested {
			dst[k] = v
		}
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedGroupNames(m map[string]*libraryGroups) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
