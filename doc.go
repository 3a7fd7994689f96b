// File: flight-configuration/doc.go

// Package configuration resolves typed application configuration from
// multiple overlapping sources - environment variables, layered
// configuration files, and declared defaults - into a single validated
// Instance, with per-key provenance tracking and aggregated diagnostics.
//
// Features:
//   - Declared schema: per-attribute source rules, required flag, lazy
//     defaults, and coercion transforms
//   - Fixed precedence: environment > files in declared order (first
//     declared wins) > default
//   - Per-key provenance (SourceValue) retained for the lifetime of the
//     instance, consulted by diagnostics
//   - Memoized, failure-capturing coercion: a transform runs at most once
//     per key per load
//   - Complete failure aggregation: one load error reports every problem,
//     grouped by originating source
//   - TOML, JSON, and YAML configuration files with format auto-detection
//   - Pluggable external validation via a minimal capability interface
//   - Struct decoding of the resolved values via mapstructure
//
// Quick Start:
//
//	reg := configuration.NewRegistry().
//	    MustDeclare(configuration.AttributeSpec{
//	        Name: "port", Env: true, Required: true,
//	        Transform: configuration.ToInt,
//	    }).
//	    MustDeclare(configuration.AttributeSpec{
//	        Name: "host", Env: true, Default: "localhost",
//	    })
//
//	inst, err := configuration.Quick(reg, "APP", "config.yaml", "config.local.yaml")
//	if err != nil {
//	    log.Fatal(err) // err.Error() is the full grouped report
//	}
//
//	port, _ := inst.Int64("port")
//	host, _ := inst.String("host")
//
// Precedence (highest to lowest):
//  1. Environment variables (APP_PORT=9090)
//  2. Configuration files, in declared order - the first declared file
//     wins a key over every later one
//  3. Declared default values
//
// Resolution is synchronous and one-shot: each Load produces a fresh,
// independent Instance from a fixed snapshot of the environment and file
// contents. Instances are not mutated by the engine after Load returns.
package configuration
