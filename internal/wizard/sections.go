package wizard

import (
	"strconv"
	"strings"
)

// Sections whose payloads hold OAuth-style credentials: a small fixed set
// of fields stays at the section's top level, everything else nests under
// "authorization".
var oauthSections = map[string]bool{
	"trakt": true,
	"mal":   true,
}

// oauthTopLevelFields are stored directly under the section key instead of
// inside the authorization block.
var oauthTopLevelFields = map[string]bool{
	"client_id":        true,
	"client_secret":    true,
	"pin":              true,
	"cache_expiration": true,
	"localhost_url":    true,
}

// defaultRunOrder is substituted when a settings submission carries no
// run_order of its own.
var defaultRunOrder = []interface{}{"operations", "metadata", "collections", "overlays"}

// BuildSectionPayload shapes a normalized field set into the nested payload
// persisted for one section.
func BuildSectionPayload(source string, clean map[string]interface{}) map[string]interface{} {
	if oauthSections[source] {
		return buildOAuthPayload(source, clean)
	}
	return buildSimplePayload(source, clean)
}

func buildOAuthPayload(source string, clean map[string]interface{}) map[string]interface{} {
	section := map[string]interface{}{}
	authorization := map[string]interface{}{}
	data := map[string]interface{}{source: section}
	section["authorization"] = authorization

	for key, value := range clean {
		finalKey := strings.Replace(key, source+"_", "", 1)
		switch {
		case oauthTopLevelFields[finalKey]:
			section[finalKey] = value
		case finalKey == "validated":
			data["validated"] = value
		case finalKey == "url":
			// Transient UI field, never persisted.
		default:
			authorization[finalKey] = value
		}
	}

	return data
}

func buildSimplePayload(source string, clean map[string]interface{}) map[string]interface{} {
	section := map[string]interface{}{}
	data := map[string]interface{}{source: section}

	for key, value := range clean {
		finalKey := strings.Replace(key, source+"_", "", 1)

		switch v := value.(type) {
		case nil, bool, []interface{}, map[string]interface{}:
			// Kept as-is.
		case string:
			// Best-effort integer conversion; failure keeps the string.
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				value = n
			} else {
				value = strings.TrimSpace(v)
			}
		default:
			_ = v
		}

		if finalKey == "validated" {
			data["validated"] = value
		} else {
			section[finalKey] = value
		}
	}

	if raw, ok := section["run_order"]; ok {
		section["run_order"] = parseRunOrder(raw)
	}

	return data
}

func parseRunOrder(raw interface{}) []interface{} {
	if s, ok := raw.(string); ok {
		fields := strings.Fields(s)
		if len(fields) > 0 {
			order := make([]interface{}, len(fields))
			for i, f := range fields {
				order[i] = f
			}
			return order
		}
	}
	return append([]interface{}(nil), defaultRunOrder...)
}
