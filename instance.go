// File: flight-configuration/instance.go
package configuration

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Instance is one fully resolved configuration: the coerced value per
// declared key, plus the per-key provenance records retained for the
// lifetime of the instance. Values are set exactly once during Load and
// never reassigned by the engine.
type Instance struct {
	values  map[string]any
	sources map[string]*SourceValue
	files   []string
	log     *Log
}

// Get returns the coerced value for a declared key. ok is false for keys
// that were never declared or whose coercion failed.
func (in *Instance) Get(key string) (any, bool) {
	value, ok := in.values[key]
	return value, ok
}

// Source returns the provenance record for key, including records for
// unrecognized keys found in documents.
func (in *Instance) Source(key string) (*SourceValue, bool) {
	sv, ok := in.sources[key]
	return sv, ok
}

// Files returns the document paths in declared precedence order.
func (in *Instance) Files() []string {
	out := make([]string, len(in.files))
	copy(out, in.files)
	return out
}

// Diagnostics returns the log accumulated while this instance was loaded.
func (in *Instance) Diagnostics() *Log { return in.log }

// String retrieves a string value, converting common scalar types.
func (in *Instance) String(key string) (string, error) {
	value, found := in.Get(key)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrNotSet, key)
	}
	if value == nil {
		return "", nil // Treat nil as empty string for convenience
	}
	converted, err := ToString(value)
	if err != nil {
		return "", fmt.Errorf("%v for attribute %s", err, key)
	}
	return converted.(string), nil
}

// Int64 retrieves an integer value, converting numeric types, parsable
// strings, and booleans.
func (in *Instance) Int64(key string) (int64, error) {
	value, found := in.Get(key)
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrNotSet, key)
	}
	if value == nil {
		return 0, fmt.Errorf("value for attribute %s is nil, cannot convert to int64", key)
	}
	converted, err := ToInt(value)
	if err != nil {
		return 0, fmt.Errorf("%v for attribute %s", err, key)
	}
	return converted.(int64), nil
}

// Bool retrieves a boolean value, converting parsable strings and numbers.
func (in *Instance) Bool(key string) (bool, error) {
	value, found := in.Get(key)
	if !found {
		return false, fmt.Errorf("%w: %s", ErrNotSet, key)
	}
	if value == nil {
		return false, fmt.Errorf("value for attribute %s is nil, cannot convert to bool", key)
	}
	converted, err := ToBool(value)
	if err != nil {
		return false, fmt.Errorf("%v for attribute %s", err, key)
	}
	return converted.(bool), nil
}

// Float64 retrieves a float value, converting numeric types and parsable
// strings.
func (in *Instance) Float64(key string) (float64, error) {
	value, found := in.Get(key)
	if !found {
		return 0.0, fmt.Errorf("%w: %s", ErrNotSet, key)
	}
	if value == nil {
		return 0.0, fmt.Errorf("value for attribute %s is nil, cannot convert to float64", key)
	}
	converted, err := ToFloat(value)
	if err != nil {
		return 0.0, fmt.Errorf("%v for attribute %s", err, key)
	}
	return converted.(float64), nil
}

// Scan decodes the resolved values into target, a non-nil pointer to a
// struct or map. Dotted attribute names become nested sections; fields are
// matched by `toml` tag.
func (in *Instance) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	for key, value := range in.values {
		setNestedValue(nested, key, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("failed to scan configuration into %T: %w", target, err)
	}

	return nil
}

// Debug returns a formatted dump of every resolved key with its provenance,
// raw value, and coerced value. Intended for troubleshooting output only;
// the format is not stable.
func (in *Instance) Debug() string {
	keys := make([]string, 0, len(in.sources))
	for key := range in.sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	for _, key := range keys {
		sv := in.sources[key]
		b.WriteString(fmt.Sprintf("  %s:\n", key))
		b.WriteString(fmt.Sprintf("    Source: %s\n", sv.describe()))
		if !sv.Recognized {
			b.WriteString("    Recognized: false\n")
			continue
		}
		b.WriteString(fmt.Sprintf("    Raw: %v\n", sv.Raw()))
		if value, ok := in.values[key]; ok {
			b.WriteString(fmt.Sprintf("    Value: %v\n", value))
		} else if sv.Failed() {
			b.WriteString("    Value: <coercion failed>\n")
		}
	}
	return b.String()
}
