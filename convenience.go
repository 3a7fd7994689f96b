// File: flight-configuration/convenience.go
package configuration

import "fmt"

// Quick resolves a configuration in one call with the standard setup: the
// process environment under the given prefix, then files in declared order,
// then defaults.
func Quick(registry *Registry, envPrefix string, files ...string) (*Instance, error) {
	return NewLoader(registry).
		WithEnvPrefix(envPrefix).
		WithFiles(files...).
		Load()
}

// MustQuick is like Quick but panics on error. Intended for program
// initialization where configuration failure is unrecoverable anyway.
func MustQuick(registry *Registry, envPrefix string, files ...string) *Instance {
	inst, err := Quick(registry, envPrefix, files...)
	if err != nil {
		panic(fmt.Sprintf("configuration load failed:\n%v", err))
	}
	return inst
}
