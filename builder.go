// File: flight-configuration/builder.go
package configuration

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Loader assembles the inputs for one resolution pass: the frozen schema,
// the environment snapshot, and the ordered document sources. Configure it
// with With* calls, then run Load. Each Load produces a fresh, independent
// Instance and a fresh diagnostics log.
type Loader struct {
	registry  *Registry
	envPrefix string
	lookupEnv func(string) (string, bool)
	envFile   string
	docs      []DocumentSource
	validator func(*Instance) Validator
	log       *Log
}

// NewLoader creates a Loader over a registry. The live process environment
// is the default snapshot.
func NewLoader(registry *Registry) *Loader {
	return &Loader{
		registry:  registry,
		lookupEnv: os.LookupEnv,
		log:       &Log{},
	}
}

// WithEnvPrefix sets the environment variable prefix: attribute "foo_bar"
// with prefix "APP" resolves from APP_FOO_BAR.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithFiles declares configuration files, in precedence order: the first
// declared file wins a key over every later one, so declare overrides
// before fallbacks. Nonexistent files are treated as empty documents.
func (l *Loader) WithFiles(paths ...string) *Loader {
	for _, path := range paths {
		l.docs = append(l.docs, NewFileSource(path))
	}
	return l
}

// WithDocuments appends pre-parsed document sources. They share one
// declared order with any files.
func (l *Loader) WithDocuments(docs ...DocumentSource) *Loader {
	l.docs = append(l.docs, docs...)
	return l
}

// WithEnvFile overlays a dotenv file beneath the live environment: process
// variables win, the dotenv file fills the gaps. A missing file is recorded
// at debug level only.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// WithEnvLookup replaces the environment snapshot, mostly for tests.
func (l *Loader) WithEnvLookup(fn func(string) (string, bool)) *Loader {
	l.lookupEnv = fn
	return l
}

// WithValidator attaches the external validation collaborator. The factory
// receives the resolved instance so the validator can inspect coerced
// values; returning nil falls back to the built-in checks alone.
func (l *Loader) WithValidator(fn func(*Instance) Validator) *Loader {
	l.validator = fn
	return l
}

// Diagnostics returns the append-only log for the most recent Load,
// populated on success and failure alike.
func (l *Loader) Diagnostics() *Log { return l.log }

// DiscoverEnv reports which declared environment-enabled attributes have a
// matching variable set in the snapshot, as attribute name to variable name.
func (l *Loader) DiscoverEnv() map[string]string {
	discovered := make(map[string]string)
	for _, spec := range l.registry.All() {
		if !spec.Env {
			continue
		}
		name := envName(l.envPrefix, spec.Name)
		if _, ok := l.lookupEnv(name); ok {
			discovered[spec.Name] = name
		}
	}
	return discovered
}

// Load runs one resolution pass and either returns a fully populated
// Instance or a single error. Structural problems (unreadable or malformed
// documents) surface as their own errors; everything else is aggregated
// into one *InvalidError whose text is the complete grouped report. There
// is no partial-success return.
func (l *Loader) Load() (*Instance, error) {
	l.log = &Log{}

	lookup, err := l.envSnapshot()
	if err != nil {
		return nil, err
	}

	// Read every document up front; a parse failure aborts the load since a
	// malformed document's keys cannot be trusted at all.
	docs := make([]document, 0, len(l.docs))
	for _, src := range l.docs {
		data, err := src.Read()
		if err != nil {
			return nil, err
		}
		if data == nil {
			l.log.Debugf("config file %s not found", src.Path())
			data = map[string]any{}
		} else {
			l.log.Infof("loaded config file %s", src.Path())
		}
		docs = append(docs, document{path: src.Path(), data: data})
	}

	inst := &Instance{
		values: make(map[string]any),
		files:  l.paths(),
		log:    l.log,
	}

	res := &resolver{
		registry:  l.registry,
		envPrefix: l.envPrefix,
		lookupEnv: lookup,
		docs:      docs,
		log:       l.log,
	}
	inst.sources = res.resolve(inst)

	// Coerce and assign in declaration order so instance-dependent defaults
	// can read siblings declared before them. Failed coercions stay off the
	// instance; they surface through the failure report.
	for _, spec := range l.registry.All() {
		sv := inst.sources[spec.Name]
		if value, err := sv.Value(); err == nil {
			inst.values[spec.Name] = value
		}
	}

	var external Validator
	if l.validator != nil {
		external = l.validator(inst)
	}

	failures := collectFailures(l.registry, inst.sources, external)
	if len(failures) > 0 {
		return nil, &InvalidError{report: formatReport(failures, inst.files)}
	}

	return inst, nil
}

// envSnapshot builds the lookup function for this load, overlaying the
// dotenv file beneath the configured snapshot when one was declared.
func (l *Loader) envSnapshot() (func(string) (string, bool), error) {
	lookup := l.lookupEnv
	if l.envFile == "" {
		return lookup, nil
	}

	overlay, err := godotenv.Read(l.envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.log.Debugf("env file %s not found", l.envFile)
			return lookup, nil
		}
		return nil, fmt.Errorf("failed to read env file '%s': %w", l.envFile, err)
	}
	l.log.Infof("loaded env file %s", l.envFile)

	return func(name string) (string, bool) {
		if value, ok := lookup(name); ok {
			return value, true
		}
		value, ok := overlay[name]
		return value, ok
	}, nil
}

func (l *Loader) paths() []string {
	out := make([]string, len(l.docs))
	for i, d := range l.docs {
		out[i] = d.Path()
	}
	return out
}
