package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"quizharvest/internal/fsutil"
)

// Format is a results file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatYAML
}

// FormatForPath picks a format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes results in the given format.
func Encode(results *Results, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(results); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetEscapeHTML(false)
		encoder.SetIndent("", "    ")
		if err := encoder.Encode(results); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// Decode parses results in the given format.
func Decode(data []byte, format Format) (*Results, error) {
	results := New()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, results); err != nil {
			return nil, err
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, results); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return results, nil
}

// LoadFile reads a results file, choosing the format from its extension.
func LoadFile(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	results, err := Decode(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return results, nil
}

// WriteFile writes results atomically. Serialization happens before the file
// is touched, so a failed encode never leaves a partial document.
func WriteFile(path string, results *Results, format Format) error {
	data, err := Encode(results, format)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// Validator checks a raw results document before it is joined.
type Validator interface {
	Validate(data []byte) error
}

// JoinDir joins every *.json results file in dir, in lexical file order, and
// returns the files that were read.
func JoinDir(dir string, validator Validator) (*Results, []string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, nil, fmt.Errorf("list results: %w", err)
	}
	sort.Strings(paths)
	sets := make([]*Results, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read results: %w", err)
		}
		if validator != nil {
			if err := validator.Validate(data); err != nil {
				return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
		}
		set, err := Decode(data, FormatJSON)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		sets = append(sets, set)
	}
	return Join(sets...), paths, nil
}
