package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/job"
)

// Jobs maps job names to specifications and remembers insertion order.
// Insertion order is the tie-break used when computing submission order,
// so it survives JSON and YAML round trips.
type Jobs struct {
	names []string
	specs map[string]job.Spec
}

func NewJobs() *Jobs {
	return &Jobs{specs: make(map[string]job.Spec)}
}

// Add appends a job. Names must be unique.
func (j *Jobs) Add(name string, spec job.Spec) error {
	if name == "" {
		return fmt.Errorf("job name is required")
	}
	if j.specs == nil {
		j.specs = make(map[string]job.Spec)
	}
	if _, exists := j.specs[name]; exists {
		return fmt.Errorf("duplicate job name '%s'", name)
	}
	j.names = append(j.names, name)
	j.specs[name] = spec
	return nil
}

// Get returns a copy of the named spec.
func (j *Jobs) Get(name string) (job.Spec, bool) {
	if j == nil {
		return job.Spec{}, false
	}
	spec, ok := j.specs[name]
	if !ok {
		return job.Spec{}, false
	}
	return spec.Clone(), true
}

func (j *Jobs) Has(name string) bool {
	if j == nil {
		return false
	}
	_, ok := j.specs[name]
	return ok
}

// Names returns job names in insertion order.
func (j *Jobs) Names() []string {
	if j == nil {
		return nil
	}
	out := make([]string, len(j.names))
	copy(out, j.names)
	return out
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.names)
}

func (j *Jobs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range j.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(j.specs[name])
		if err != nil {
			return nil, fmt.Errorf("job '%s': %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON streams the object so key order is kept.
func (j *Jobs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("jobs must be an object")
	}

	parsed := NewJobs()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in jobs", tok)
		}
		var spec job.Spec
		if err := dec.Decode(&spec); err != nil {
			return fmt.Errorf("job '%s': %w", name, err)
		}
		if err := parsed.Add(name, spec); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*j = *parsed
	return nil
}

func (j *Jobs) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range j.names {
		var value yaml.Node
		if err := value.Encode(j.specs[name]); err != nil {
			return nil, fmt.Errorf("job '%s': %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}
	return node, nil
}

func (j *Jobs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: jobs must be a mapping", node.Line)
	}

	parsed := NewJobs()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		var spec job.Spec
		if err := value.Decode(&spec); err != nil {
			return fmt.Errorf("job '%s': %w", key.Value, err)
		}
		if err := parsed.Add(key.Value, spec); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}

	*j = *parsed
	return nil
}
