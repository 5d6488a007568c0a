package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialized form of a workflow.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks YAML for .yml/.yaml files and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Marshal serializes w. JSON is indented with four spaces.
func Marshal(w *Workflow, format Format) ([]byte, error) {
	if w == nil {
		return nil, fmt.Errorf("workflow is nil")
	}
	doc := *w
	if doc.Jobs == nil {
		doc.Jobs = NewJobs()
	}
	if doc.Dependencies == nil {
		doc.Dependencies = map[string][]string{}
	}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return nil, fmt.Errorf("failed to encode workflow: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		data, err := json.MarshalIndent(&doc, "", "    ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode workflow: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported workflow format %q", format)
	}
}

// Unmarshal parses a workflow document. Unknown keys are rejected at every
// level.
func Unmarshal(data []byte, format Format) (*Workflow, error) {
	var w Workflow
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to parse workflow: %w", err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to parse workflow: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported workflow format %q", format)
	}

	if w.Jobs == nil {
		w.Jobs = NewJobs()
	}
	if w.Dependencies == nil {
		w.Dependencies = make(map[string][]string)
	}
	return &w, nil
}

// Save writes w to path in the format implied by its extension.
func Save(w *Workflow, path string) error {
	data, err := Marshal(w, FormatForPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workflow %s: %w", path, err)
	}
	return nil
}

// Load reads a workflow saved by Save.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow %s: %w", path, err)
	}
	w, err := Unmarshal(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}
