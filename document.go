// File: flight-configuration/document.go
package configuration

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DocumentSource supplies one parsed configuration document as a flat,
// string-keyed mapping from attribute name to raw value. Implementations
// report an absent document as (nil, nil) and a malformed one as a
// *ParseError, which aborts the whole load.
type DocumentSource interface {
	// Path identifies the source in diagnostics and failure reports.
	Path() string
	// Read returns the flattened document. A nil map with a nil error means
	// the source does not exist and is treated as an empty document.
	Read() (map[string]any, error)
}

// FileSource reads a configuration file from disk. The format is detected
// from the extension first and the content second (TOML, JSON, or YAML). A
// nonexistent file is an empty document, not an error.
type FileSource struct {
	path string
}

// NewFileSource creates a document source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Path() string { return f.path }

func (f *FileSource) Read() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", f.path, err)
	}

	format := detectFileFormat(f.path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	doc := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: f.path, Err: err}
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, &ParseError{Path: f.path, Err: err}
		}
	case "yaml":
		var raw map[any]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ParseError{Path: f.path, Err: err}
		}
		doc = stringifyKeys(raw)
	default:
		return nil, &ParseError{Path: f.path, Err: fmt.Errorf("unable to determine config format")}
	}

	return flattenMap(doc, ""), nil
}

// MapSource serves a fixed in-memory document. Useful for tests and for
// embedding applications that parse their documents elsewhere.
type MapSource struct {
	Name string
	Data map[string]any
}

func (m *MapSource) Path() string { return m.Name }

func (m *MapSource) Read() (map[string]any, error) {
	if m.Data == nil {
		return nil, nil
	}
	return flattenMap(m.Data, ""), nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		// Try to detect from content
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try YAML (superset of JSON, so check after JSON)
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	// Try TOML last
	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
