// File: flight-configuration/registry.go
package configuration

import (
	"fmt"
	"strings"
)

// AttributeSpec declares one configuration key and its resolution rules.
// Specs are immutable once declared.
type AttributeSpec struct {
	// Name uniquely identifies the attribute within a registry. Dot-separated
	// segments are allowed (e.g. "server.port"); each segment must be a valid
	// bare key (letters, digits, underscore, dash).
	Name string

	// Env controls whether the key may be supplied via an environment
	// variable named {prefix}_{NAME uppercased, dots mapped to underscores}.
	Env bool

	// Required marks a nil resolved raw value as a load failure.
	Required bool

	// Default supplies the value when neither the environment nor any file
	// provides the key. It may be a literal, a func() any, or a
	// func(*Instance) any receiving the in-progress instance so a default
	// can reference already-resolved siblings declared before it. Producers
	// run at most once per load, lazily, on first access.
	Default any

	// Transform is the optional coercion applied to the winning raw value,
	// either one of the named primitives (ToInt, ToString, ...) or any
	// single-argument conversion. A nil raw value is never transformed.
	Transform TransformFunc
}

// Registry holds the declared schema for one configuration type. It is
// populated once at composition time and must be treated as read-only for
// all subsequent loads; concurrent loads over a frozen registry are safe.
type Registry struct {
	specs []AttributeSpec
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Declare adds an attribute to the registry. Declaration order is preserved;
// it determines diagnostic ordering only, never source precedence.
func (r *Registry) Declare(spec AttributeSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("attribute name cannot be empty")
	}
	for _, segment := range strings.Split(spec.Name, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("invalid name segment %q in attribute %q", segment, spec.Name)
		}
	}

	if _, exists := r.index[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateAttribute, spec.Name)
	}

	r.index[spec.Name] = len(r.specs)
	r.specs = append(r.specs, spec)
	return nil
}

// MustDeclare is like Declare but panics on error. Intended for composition
// at program start, where a bad declaration is a programming error.
func (r *Registry) MustDeclare(spec AttributeSpec) *Registry {
	if err := r.Declare(spec); err != nil {
		panic(fmt.Sprintf("configuration: %v", err))
	}
	return r
}

// Lookup returns the spec declared under name.
func (r *Registry) Lookup(name string) (AttributeSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return AttributeSpec{}, false
	}
	return r.specs[i], true
}

// All returns the specs in declaration order.
func (r *Registry) All() []AttributeSpec {
	out := make([]AttributeSpec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Len returns the number of declared attributes.
func (r *Registry) Len() int { return len(r.specs) }
