// File: flight-configuration/validate_test.go
package configuration_test

import (
	"strings"
	"testing"

	configuration "github.com/openflighthpc/flight-configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeValidator is a minimal external validation collaborator.
type fakeValidator struct {
	errs []configuration.ValidationError
}

func (f *fakeValidator) Valid() bool { return len(f.errs) == 0 }

func (f *fakeValidator) Errors() []configuration.ValidationError { return f.errs }

func TestExternalValidation(t *testing.T) {
	t.Run("Failures Merge Into The Report", func(t *testing.T) {
		file := writeFile(t, t.TempDir(), "config.yaml", "port: 80\n")

		reg := configuration.NewRegistry().
			MustDeclare(configuration.AttributeSpec{
				Name: "port", Env: true, Transform: configuration.ToInt,
			})

		fake := &fakeValidator{errs: []configuration.ValidationError{
			{Attribute: "port", Message: "must be at least 1024"},
		}}

		_, err := configuration.NewLoader(reg).
			WithEnvLookup(envFrom(nil)).
			WithFiles(file).
			WithValidator(func(*configuration.Instance) configuration.Validator { return fake }).
			Load()
		require.Error(t, err)

		// The failure is attributed to the file that supplied the value.
		assert.Contains(t, err.Error(), "invalid in '"+file+"'")
		assert.Contains(t, err.Error(), " - port: must be at least 1024")
	})

	t.Run("Before Type Cast Suffix Is Stripped", func(t *testing.T) {
		reg := configuration.NewRegistry().
			MustDeclare(configuration.AttributeSpec{
				Name: "port", Env: true, Transform: configuration.ToInt,
			})

		fake := &fakeValidator{errs: []configuration.ValidationError{
			{Attribute: "port_before_type_cast", Message: "is not a number"},
		}}

		_, err := configuration.NewLoader(reg).
			WithEnvPrefix("APP").
			WithEnvLookup(envFrom(map[string]string{"APP_PORT": "9090"})).
			WithValidator(func(*configuration.Instance) configuration.Validator { return fake }).
			Load()
		require.Error(t, err)

		// Mapped back to the env provenance of "port", not treated as an
		// unknown attribute.
		assert.Contains(t, err.Error(), " - APP_PORT: is not a number")
	})

	t.Run("Unattributable Failures Come First", func(t *testing.T) {
		reg := configuration.NewRegistry().
			MustDeclare(configuration.AttributeSpec{
				Name: "port", Env: true, Transform: configuration.ToInt,
			})

		fake := &fakeValidator{errs: []configuration.ValidationError{
			{Attribute: "ghost", Message: "does not exist"},
		}}

		_, err := configuration.NewLoader(reg).
			WithEnvPrefix("APP").
			WithEnvLookup(envFrom(map[string]string{"APP_PORT": "bad"})).
			WithValidator(func(*configuration.Instance) configuration.Validator { return fake }).
			Load()
		require.Error(t, err)
		report := err.Error()

		ghostIdx := strings.Index(report, "ghost: does not exist")
		envIdx := strings.Index(report, "APP_PORT")
		require.NotEqual(t, -1, ghostIdx)
		require.NotEqual(t, -1, envIdx)
		assert.Less(t, ghostIdx, envIdx)
	})

	t.Run("Valid Collaborator Adds Nothing", func(t *testing.T) {
		reg := configuration.NewRegistry().
			MustDeclare(configuration.AttributeSpec{Name: "host", Default: "h"})

		inst, err := configuration.NewLoader(reg).
			WithEnvLookup(envFrom(nil)).
			WithValidator(func(*configuration.Instance) configuration.Validator {
				return &fakeValidator{}
			}).
			Load()
		require.NoError(t, err)
		require.NotNil(t, inst)
	})

	t.Run("Nil Collaborator Falls Back To Built In Checks", func(t *testing.T) {
		reg := configuration.NewRegistry().
			MustDeclare(configuration.AttributeSpec{Name: "port", Required: true})

		_, err := configuration.NewLoader(reg).
			WithEnvLookup(envFrom(nil)).
			WithValidator(func(*configuration.Instance) configuration.Validator { return nil }).
			Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required attribute(s) have not been set")
	})
}

func TestStructValidator(t *testing.T) {
	type serverSettings struct {
		Host string `toml:"host" validate:"required"`
		Port int    `toml:"port" validate:"min=1024"`
	}

	t.Run("Standalone", func(t *testing.T) {
		sv := configuration.NewStructValidator(&serverSettings{Host: "h", Port: 80})
		assert.False(t, sv.Valid())

		errs := sv.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "port", errs[0].Attribute)
		assert.Contains(t, errs[0].Message, "min")
	})

	t.Run("Passing Struct", func(t *testing.T) {
		sv := configuration.NewStructValidator(&serverSettings{Host: "h", Port: 8080})
		assert.True(t, sv.Valid())
		assert.Empty(t, sv.Errors())
	})

	t.Run("Wired Through A Load", func(t *testing.T) {
		file := writeFile(t, t.TempDir(), "config.yaml", "host: example.com\nport: 80\n")

		reg := configuration.NewRegistry().
			MustDeclare(configuration.AttributeSpec{Name: "host", Env: true}).
			MustDeclare(configuration.AttributeSpec{
				Name: "port", Env: true, Transform: configuration.ToInt,
			})

		_, err := configuration.NewLoader(reg).
			WithEnvLookup(envFrom(nil)).
			WithFiles(file).
			WithValidator(func(in *configuration.Instance) configuration.Validator {
				var settings serverSettings
				if err := in.Scan(&settings); err != nil {
					return nil
				}
				return configuration.NewStructValidator(&settings)
			}).
			Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid in '"+file+"'")
		assert.Contains(t, err.Error(), "port")
	})
}
