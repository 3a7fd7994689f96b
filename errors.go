// File: flight-configuration/errors.go
package configuration

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateAttribute reports a second Declare call for a name the
	// registry already holds.
	ErrDuplicateAttribute = errors.New("attribute already declared")

	// ErrNotSet reports an accessor call for an attribute that resolved to
	// no usable value (undeclared, or its coercion failed).
	ErrNotSet = errors.New("attribute not set")
)

// ParseError reports a document source whose content could not be parsed.
// It aborts the whole load: keys from a malformed document cannot be
// trusted, so there is no per-key recovery.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file '%s': %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvalidError is the single error returned for an aggregate-invalid load.
// Its text is the complete grouped report; it carries no structured failure
// detail. Callers that need structure attach a Validator and inspect the
// instance's SourceValue state instead.
type InvalidError struct {
	report string
}

func (e *InvalidError) Error() string { return e.report }
