package wizard

import (
	"encoding/json"
	"strconv"
	"strings"

	"quickstart/internal/logging"
)

// operationsOrder is the published catalog order for a library's operations
// block. Keys outside the catalog are appended after these, in the order
// they were built.
var operationsOrder = []string{
	"assets_for_all",
	"delete_collections",
	"mass_genre_update",
	"mass_content_rating_update",
	"mass_original_title_update",
	"mass_studio_update",
	"mass_originally_available_update",
	"mass_added_at_update",
	"mass_audience_rating_update",
	"mass_critic_rating_update",
	"mass_user_rating_update",
	"mass_episode_audience_rating_update",
	"mass_episode_critic_rating_update",
	"mass_episode_user_rating_update",
	"mass_imdb_parental_labels",
	"mass_collection_mode",
	"mass_poster_update",
	"mass_background_update",
	"update_blank_track_titles",
	"remove_title_parentheses",
	"split_duplicates",
	"radarr_add_all",
	"radarr_remove_by_tag",
	"sonarr_add_all",
	"sonarr_remove_by_tag",
	"metadata_backup",
}

// simpleOperations are copied straight through from their attribute field
// when set to anything other than nil/false/"".
var simpleOperations = []string{
	"assets_for_all",
	"mass_imdb_parental_labels",
	"mass_collection_mode",
	"update_blank_track_titles",
	"remove_title_parentheses",
	"split_duplicates",
	"radarr_add_all",
	"radarr_remove_by_tag",
	"sonarr_add_all",
	"sonarr_remove_by_tag",
}

// massUpdateOperations combine up to three input channels: an ordered list
// of predefined source tokens ({op}_order, JSON), a list of free-form
// custom values ({op}_custom, JSON), and a single scalar fallback ({op}).
var massUpdateOperations = []string{
	"mass_genre_update",
	"mass_content_rating_update",
	"mass_original_title_update",
	"mass_studio_update",
	"mass_originally_available_update",
	"mass_added_at_update",
	"mass_audience_rating_update",
	"mass_critic_rating_update",
	"mass_user_rating_update",
	"mass_episode_audience_rating_update",
	"mass_episode_critic_rating_update",
	"mass_episode_user_rating_update",
}

var deleteCollectionsFields = []string{"configured", "managed", "less", "ignore_empty_smart"}

var imageUpdateFields = []string{"source", "seasons", "episodes"}

// buildOperations assembles a library's operations block from its attribute
// fields. Each sub-builder is independent; an operation appears only when
// it yields at least one value, and the result follows the catalog order.
func buildOperations(attrs map[string]interface{}) *Dict {
	ops := NewDict()

	for _, name := range simpleOperations {
		if v, ok := attrs[name]; ok && isSet(v) {
			ops.Set(name, v)
		}
	}

	if dc := buildPrefixedBlock(attrs, "delete_collections_", deleteCollectionsFields); dc.Len() > 0 {
		ops.Set("delete_collections", dc)
	}

	for _, name := range massUpdateOperations {
		if values, ok := collectMassUpdate(attrs, name); ok {
			ops.Set(name, values)
		}
	}

	for _, name := range []string{"mass_poster_update", "mass_background_update"} {
		if block := buildPrefixedBlock(attrs, name+"_", imageUpdateFields); block.Len() > 0 {
			ops.Set(name, block)
		}
	}

	if mb := buildMetadataBackup(attrs); mb.Len() > 0 {
		ops.Set("metadata_backup", mb)
	}

	return reorderOperations(ops)
}

// collectMassUpdate merges the three input channels of one mass-update
// operation. A malformed JSON channel is logged and skipped; it never
// aborts the build. Rating operations coerce a scalar fallback to float,
// discarding it when coercion fails.
func collectMassUpdate(attrs map[string]interface{}, name string) (interface{}, bool) {
	var values []interface{}
	values = append(values, parseJSONChannel(attrs, name+"_order")...)
	values = append(values, parseJSONChannel(attrs, name+"_custom")...)

	fallback, haveFallback := attrs[name]
	if haveFallback && isSet(fallback) {
		if s, isString := fallback.(string); isString && isRatingOperation(name) {
			if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				fallback = f
			} else {
				haveFallback = false
			}
		}
	} else {
		haveFallback = false
	}

	switch {
	case len(values) > 0:
		if haveFallback {
			values = append(values, fallback)
		}
		return values, true
	case haveFallback:
		return fallback, true
	default:
		return nil, false
	}
}

func parseJSONChannel(attrs map[string]interface{}, key string) []interface{} {
	raw, ok := attrs[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		if list, isList := raw.([]interface{}); isList {
			return list
		}
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var values []interface{}
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		logging.Log.Warnf("Skipping malformed %s channel: %v", key, err)
		return nil
	}
	return values
}

func isRatingOperation(name string) bool {
	return strings.Contains(name, "_rating_")
}

// buildPrefixedBlock gathers "{prefix}{field}" attributes into a nested
// block keyed by the bare field names.
func buildPrefixedBlock(attrs map[string]interface{}, prefix string, fields []string) *Dict {
	block := NewDict()
	for _, field := range fields {
		if v, ok := attrs[prefix+field]; ok && isSet(v) {
			block.Set(field, v)
		}
	}
	return block
}

func buildMetadataBackup(attrs map[string]interface{}) *Dict {
	backup := NewDict()
	if v, ok := attrs["metadata_backup_path"]; ok && isSet(v) {
		backup.Set("path", v)
	}
	if exclude := parseJSONChannel(attrs, "metadata_backup_exclude"); len(exclude) > 0 {
		backup.Set("exclude", exclude)
	}
	if v, ok := attrs["metadata_backup_sync_tags"]; ok && isSet(v) {
		backup.Set("sync_tags", v)
	}
	if v, ok := attrs["metadata_backup_add_blank_entries"]; ok && isSet(v) {
		backup.Set("add_blank_entries", v)
	}
	return backup
}

// reorderOperations emits catalog operations first, in catalog order, then
// any remaining keys in the order they were built.
func reorderOperations(ops *Dict) *Dict {
	ordered := NewDict()
	for _, name := range operationsOrder {
		if v, ok := ops.Get(name); ok {
			ordered.Set(name, v)
		}
	}
	catalog := map[string]bool{}
	for _, name := range operationsOrder {
		catalog[name] = true
	}
	for _, key := range ops.Keys() {
		if !catalog[key] {
			v, _ := ops.Get(key)
			ordered.Set(key, v)
		}
	}
	return ordered
}

// isSet reports whether an operation input carries a usable value:
// nil, false, and empty strings all mean "not set".
func isSet(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return strings.TrimSpace(t) != "" && !strings.EqualFold(t, "none")
	default:
		return true
	}
}
