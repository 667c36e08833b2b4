package shared

import "strings"

// Booler converts loosely-typed truthiness values (checkbox strings, stored
// ints, bools) into a bool. Unrecognized strings are false.
func Booler(thing interface{}) bool {
	switch v := thing.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return true
		default:
			return false
		}
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
