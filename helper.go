// File: flight-configuration/helper.go
package configuration

import (
	"fmt"
	"strings"
)

// flattenMap converts a nested document into a flat map with dot-notation
// keys. Nested map keys of any scalar type are stringified first so numeric
// or otherwise non-string keys in source documents still match declared
// attribute names.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		switch sub := value.(type) {
		case map[string]any:
			for subPath, subValue := range flattenMap(sub, path) {
				flat[subPath] = subValue
			}
		case map[any]any:
			for subPath, subValue := range flattenMap(stringifyKeys(sub), path) {
				flat[subPath] = subValue
			}
		default:
			flat[path] = value
		}
	}

	return flat
}

// stringifyKeys converts arbitrary map keys to their string form.
func stringifyKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[fmt.Sprintf("%v", key)] = value
	}
	return out
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// Intermediate maps are created as needed; a non-map intermediate value is
// replaced by a map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		next, exists := current[segment]
		if !exists {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
			continue
		}

		if nextMap, isMap := next.(map[string]any); isMap {
			current = nextMap
		} else {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
		}
	}

	current[segments[len(segments)-1]] = value
}

// isValidKeySegment checks if a single dot-separated segment is a valid bare
// key: ASCII letters, digits, underscores, and dashes.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'

		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

// envName maps an attribute name to its environment variable: dots become
// underscores, the result is uppercased and prefixed ("foo_bar" with prefix
// "APP" resolves from APP_FOO_BAR).
func envName(prefix, name string) string {
	env := strings.ReplaceAll(name, ".", "_")
	env = strings.ToUpper(env)
	if prefix != "" {
		env = prefix + "_" + env
	}
	return env
}
