// File: flight-configuration/source.go
package configuration

import "fmt"

// SourceType identifies the kind of source that supplied a value.
type SourceType string

const (
	// SourceEnv marks a value supplied by an environment variable.
	SourceEnv SourceType = "env"
	// SourceFile marks a value supplied by a configuration file.
	SourceFile SourceType = "file"
	// SourceDefault marks a value supplied by the declared default, or the
	// absence of any value at all.
	SourceDefault SourceType = "default"
)

// coerceState is the tri-state cell guarding the memoized transform result.
type coerceState int8

const (
	notComputed coerceState = iota
	computedOK
	computedFailed
)

// SourceValue records the provenance of one resolved key: which source
// produced the raw value, the raw value itself, and the memoized outcome of
// coercing it. Exactly one SourceValue exists per key after resolution, even
// when no source supplied a value (Type is then SourceDefault and Raw may be
// nil). Keys found in a document but absent from the registry get a
// SourceValue with Recognized false so they can be surfaced as a warning;
// they are never copied onto the instance.
type SourceValue struct {
	Key        string
	Type       SourceType
	Origin     string // env var name or file path; empty for defaults
	Recognized bool

	raw       any
	rawReady  bool
	defaultFn func() any // default producer bound over the in-progress instance

	transform TransformFunc
	state     coerceState
	coerced   any
	coerceErr error

	log *Log
}

// Raw returns the value as found at the source, before coercion. For a
// default-sourced key the producer runs on first access, at most once per
// load.
func (s *SourceValue) Raw() any {
	if !s.rawReady {
		if s.defaultFn != nil {
			s.raw = s.defaultFn()
		}
		s.rawReady = true
	}
	return s.raw
}

// Value returns the coerced value, computing it on first access. The
// outcome, success or failure, is memoized: the transform function never
// runs a second time, so transforms with side effects fire at most once.
func (s *SourceValue) Value() (any, error) {
	switch s.state {
	case computedOK:
		return s.coerced, nil
	case computedFailed:
		return nil, s.coerceErr
	}

	s.coerced, s.coerceErr = s.coerce()
	if s.coerceErr != nil {
		s.state = computedFailed
		s.log.Errorf("failed to coerce %s from %s: %v", s.Key, s.describe(), s.coerceErr)
		return nil, s.coerceErr
	}
	s.state = computedOK
	return s.coerced, nil
}

// Failed reports whether coercion has run and failed.
func (s *SourceValue) Failed() bool { return s.state == computedFailed }

// coerce applies the declared transform once. A panicking transform is
// recovered into an ordinary coercion failure so a single bad key never
// aborts resolution of the others. Nil raw values bypass the transform.
func (s *SourceValue) coerce() (value any, err error) {
	raw := s.Raw()
	if s.transform == nil || raw == nil {
		return raw, nil
	}

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("transform panicked: %v", r)
		}
	}()

	return s.transform(raw)
}

// describe renders the provenance for diagnostics and reports.
func (s *SourceValue) describe() string {
	switch s.Type {
	case SourceEnv:
		return "environment variable " + s.Origin
	case SourceFile:
		return "file " + s.Origin
	default:
		return "default"
	}
}
