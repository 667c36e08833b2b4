package wizard

import (
	"net/url"
	"strings"
)

// CleanFormData converts a raw form submission into typed values. The rules
// mirror what every wizard step expects:
//
//   - asset_directory always becomes a list of trimmed, non-empty strings.
//   - use_separators / sep_style fields are redirected into the per-type
//     "{mov|sho}-template_variables" nested mapping.
//   - ""/"none" become nil, "true"/"on" true, "false" false, anything else
//     the trimmed string. Numeric coercion is deliberately NOT done here;
//     it happens once, later, where a field is known to be numeric.
//
// The function never fails: malformed compound keys pass through as opaque
// strings so a bad field can never abort a save.
func CleanFormData(form url.Values) map[string]interface{} {
	clean := map[string]interface{}{}

	for key, values := range form {
		value := ""
		if len(values) > 0 {
			value = values[0]
		}

		// Bracketed compound keys carry their real name inside the brackets,
		// e.g. "mov-template_variables[use_separators]".
		bare := strings.TrimSuffix(key, "]")

		switch {
		case key == "asset_directory":
			list := make([]interface{}, 0, len(values))
			for _, v := range values {
				if trimmed := strings.TrimSpace(v); trimmed != "" {
					list = append(list, trimmed)
				}
			}
			clean[key] = list

		case strings.HasSuffix(bare, "use_separators"):
			prefix, ok := typePrefix(key)
			if !ok {
				clean[key] = NormalizeValue(value)
				break
			}
			tv := templateVars(clean, prefix)
			if value == "none" {
				tv["use_separators"] = nil
			} else {
				tv["use_separators"] = value
			}

		case strings.HasSuffix(bare, "sep_style"):
			prefix, ok := typePrefix(key)
			if !ok {
				clean[key] = NormalizeValue(value)
				break
			}
			use := form.Get(prefix + "-template_variables[use_separators]")
			if use == "" {
				use = "false"
			}
			if use != "none" {
				tv := templateVars(clean, prefix)
				tv["sep_style"] = strings.TrimSpace(value)
			}

		default:
			clean[key] = NormalizeValue(value)
		}
	}

	return clean
}

// NormalizeValue applies the standard string-value rules to one raw value.
func NormalizeValue(value string) interface{} {
	lc := strings.ToLower(strings.TrimSpace(value))
	switch {
	case len(value) == 0 || lc == "none":
		return nil
	case lc == "true" || lc == "on":
		return true
	case lc == "false":
		return false
	default:
		return strings.TrimSpace(value)
	}
}

// typePrefix resolves the library type a separator field belongs to. Keys
// carrying neither known prefix are not guessed at; the caller passes them
// through untouched.
func typePrefix(key string) (string, bool) {
	for _, typ := range LibraryTypes {
		if strings.HasPrefix(key, string(typ)) {
			return string(typ), true
		}
	}
	return "", false
}

func templateVars(clean map[string]interface{}, prefix string) map[string]interface{} {
	key := prefix + "-template_variables"
	if existing, ok := clean[key].(map[string]interface{}); ok {
		return existing
	}
	tv := map[string]interface{}{}
	clean[key] = tv
	return tv
}
