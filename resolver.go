// File: flight-configuration/resolver.go
package configuration

import "sort"

// document pairs a source path with its flattened content for one load.
type document struct {
	path string
	data map[string]any
}

// resolver computes the winning value per key for one load from a fixed
// snapshot of the environment and an ordered list of documents.
type resolver struct {
	registry  *Registry
	envPrefix string
	lookupEnv func(string) (string, bool)
	docs      []document
	log       *Log
}

// resolve produces exactly one SourceValue per declared key, plus one per
// unrecognized document key. Precedence, highest to lowest: environment
// variable, then files in declared order (the first document to claim a key
// wins), then the declared default.
func (r *resolver) resolve(inst *Instance) map[string]*SourceValue {
	resolved := make(map[string]*SourceValue)

	// 1. Environment snapshot. Absence of a variable means "not sourced from
	// environment", never an empty string.
	for _, spec := range r.registry.All() {
		if !spec.Env {
			continue
		}
		name := envName(r.envPrefix, spec.Name)
		value, ok := r.lookupEnv(name)
		if !ok {
			continue
		}
		resolved[spec.Name] = &SourceValue{
			Key:        spec.Name,
			Type:       SourceEnv,
			Origin:     name,
			Recognized: true,
			raw:        value,
			rawReady:   true,
			transform:  spec.Transform,
			log:        r.log,
		}
		r.log.Debugf("%s set from environment variable %s", spec.Name, name)
	}

	// 2. Documents, first declared wins. Keys are walked in sorted order so
	// diagnostics stay deterministic.
	for _, doc := range r.docs {
		keys := make([]string, 0, len(doc.data))
		for key := range doc.data {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if _, claimed := resolved[key]; claimed {
				continue
			}
			spec, known := r.registry.Lookup(key)
			resolved[key] = &SourceValue{
				Key:        key,
				Type:       SourceFile,
				Origin:     doc.path,
				Recognized: known,
				raw:        doc.data[key],
				rawReady:   true,
				transform:  spec.Transform,
				log:        r.log,
			}
			if known {
				r.log.Debugf("%s set from file %s", key, doc.path)
			} else {
				r.log.Warnf("unrecognized key %s in file %s", key, doc.path)
			}
		}
	}

	// 3. Defaults for everything still unresolved. Producers stay lazy: they
	// run on first Raw access, so a func(*Instance) default sees the
	// already-resolved siblings declared before its own attribute.
	for _, spec := range r.registry.All() {
		if _, claimed := resolved[spec.Name]; claimed {
			continue
		}
		resolved[spec.Name] = &SourceValue{
			Key:        spec.Name,
			Type:       SourceDefault,
			Recognized: true,
			defaultFn:  bindDefault(spec.Default, inst),
			transform:  spec.Transform,
			log:        r.log,
		}
	}

	return resolved
}

// bindDefault normalizes the three accepted default forms (literal,
// zero-argument producer, instance-dependent producer) into one
// zero-argument producer closed over the in-progress instance.
func bindDefault(def any, inst *Instance) func() any {
	switch fn := def.(type) {
	case nil:
		return nil
	case func() any:
		return fn
	case func(*Instance) any:
		return func() any { return fn(inst) }
	default:
		return func() any { return def }
	}
}
