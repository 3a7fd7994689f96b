// File: flight-configuration/structval.go
package configuration

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator adapts go-playground/validator to the Validator
// capability: the caller scans the instance into a struct carrying
// `validate` rules, and the adapter reports rule failures keyed by the
// struct's `toml` tags so they map back to attribute provenance.
//
// Validation runs at most once; Valid and Errors share the memoized result.
type StructValidator struct {
	target any
	v      *validator.Validate
	errs   []ValidationError
	run    bool
}

// NewStructValidator wraps target, a pointer to a struct tagged with
// `validate` rules and `toml` names.
func NewStructValidator(target any) *StructValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.SplitN(field.Tag.Get("toml"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})
	return &StructValidator{target: target, v: v}
}

func (s *StructValidator) Valid() bool {
	s.validate()
	return len(s.errs) == 0
}

func (s *StructValidator) Errors() []ValidationError {
	s.validate()
	return s.errs
}

func (s *StructValidator) validate() {
	if s.run {
		return
	}
	s.run = true

	err := s.v.Struct(s.target)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		s.errs = append(s.errs, ValidationError{Message: err.Error()})
		return
	}

	for _, fe := range verrs {
		s.errs = append(s.errs, ValidationError{
			Attribute: fe.Field(),
			Message:   fmt.Sprintf("failed the '%s' validation", fe.Tag()),
		})
	}
}
