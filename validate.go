// File: flight-configuration/validate.go
package configuration

import "strings"

// FailureKind classifies a validation failure.
type FailureKind string

const (
	// FailureMissing marks a required attribute whose resolved raw value is nil.
	FailureMissing FailureKind = "missing"
	// FailureTransform marks an attribute whose coercion failed.
	FailureTransform FailureKind = "transform"
	// FailureExternal marks a failure reported by the attached Validator.
	FailureExternal FailureKind = "external"
)

// Failure is one validation problem, attributed to the source that produced
// the offending value.
type Failure struct {
	Key     string
	Kind    FailureKind
	Message string

	source *SourceValue // nil when the key cannot be attributed
}

// ValidationError is one failure reported by an external validation
// collaborator.
type ValidationError struct {
	Attribute string
	Message   string
}

// Validator is the capability shape for a pluggable external validation
// mechanism. The engine never assumes a specific validation library, only
// this pair of methods. When no Validator is attached, the built-in checks
// (required attributes present, transforms succeeded) run alone.
type Validator interface {
	Valid() bool
	Errors() []ValidationError
}

// beforeTypeCastSuffix is appended by some external validation mechanisms to
// an attribute name when the pre-coercion value was validated; it is
// stripped so every external failure still maps back to env/file/default
// provenance.
const beforeTypeCastSuffix = "_before_type_cast"

// collectFailures runs the built-in checks over every declared key in
// declaration order and merges failures from the external validator when
// one is attached. It never stops at the first problem: the caller reports
// the complete set in a single message so operators can fix everything in
// one edit-reload cycle.
func collectFailures(reg *Registry, sources map[string]*SourceValue, external Validator) []Failure {
	var failures []Failure

	for _, spec := range reg.All() {
		sv := sources[spec.Name]
		if sv == nil {
			// Resolution always produces one record per declared key.
			continue
		}

		if spec.Required && sv.Raw() == nil {
			failures = append(failures, Failure{
				Key:     spec.Name,
				Kind:    FailureMissing,
				Message: "has not been set",
				source:  sv,
			})
			continue
		}

		if _, err := sv.Value(); err != nil {
			failures = append(failures, Failure{
				Key:     spec.Name,
				Kind:    FailureTransform,
				Message: err.Error(),
				source:  sv,
			})
		}
	}

	if external != nil && !external.Valid() {
		for _, verr := range external.Errors() {
			key := strings.TrimSuffix(verr.Attribute, beforeTypeCastSuffix)
			failures = append(failures, Failure{
				Key:     key,
				Kind:    FailureExternal,
				Message: verr.Message,
				source:  sources[key],
			})
		}
	}

	return failures
}
