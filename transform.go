// File: flight-configuration/transform.go
package configuration

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// TransformFunc converts a raw source value into the attribute's intended
// type. Returning an error (or panicking) marks the attribute's coercion as
// failed without aborting resolution of the remaining keys.
type TransformFunc func(raw any) (any, error)

// ToString converts common scalar types to string.
func ToString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case error:
		return v.Error(), nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}

	return nil, fmt.Errorf("cannot convert type %T to string", raw)
}

// ToInt converts numeric types, parsable strings, and booleans to int64.
// String parsing uses base auto-detection ("0xFF" works) with a float
// fallback that truncates.
func ToInt(raw any) (any, error) {
	if n, ok := raw.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), nil
		}
		return nil, fmt.Errorf("cannot convert %q to integer", n.String())
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		maxInt64 := uint64(^uint64(0) >> 1)
		if u > maxInt64 {
			return nil, fmt.Errorf("cannot convert %d to integer: overflow", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// Truncate float to int
		return int64(rv.Float()), nil
	case reflect.String:
		s := rv.String()
		if i, err := strconv.ParseInt(s, 0, 64); err == nil {
			return i, nil
		} else {
			if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
				return int64(f), nil // Truncate
			}
			return nil, fmt.Errorf("cannot convert %q to integer: %w", s, err)
		}
	case reflect.Bool:
		if rv.Bool() {
			return int64(1), nil
		}
		return int64(0), nil
	}

	return nil, fmt.Errorf("cannot convert type %T to integer", raw)
}

// ToFloat converts numeric types, parsable strings, and booleans to float64.
func ToFloat(raw any) (any, error) {
	if n, ok := raw.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float: %w", n.String(), err)
		}
		return f, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.String:
		s := rv.String()
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float: %w", s, err)
		}
		return f, nil
	case reflect.Bool:
		if rv.Bool() {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return nil, fmt.Errorf("cannot convert type %T to float", raw)
}

// ToBool converts booleans, parsable strings, and numbers (0 is false,
// non-zero is true) to bool.
func ToBool(raw any) (any, error) {
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		s := rv.String()
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to bool: %w", s, err)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	}

	return nil, fmt.Errorf("cannot convert type %T to bool", raw)
}

// ToDuration converts a time.Duration, a parsable duration string ("1m30s"),
// or an integer nanosecond count to time.Duration.
func ToDuration(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to duration: %w", v, err)
		}
		return d, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Duration(rv.Int()), nil
	}

	return nil, fmt.Errorf("cannot convert type %T to duration", raw)
}

// ToStringSlice converts a comma-separated string or a slice of scalars to
// []string. Elements are converted with ToString.
func ToStringSlice(raw any) (any, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case string:
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, err := ToString(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, s.(string))
		}
		return out, nil
	}

	return nil, fmt.Errorf("cannot convert type %T to string slice", raw)
}
