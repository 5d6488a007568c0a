// Package job defines the specification of one containerized unit of work.
package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/preload"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

// Platform is the compute platform a job runs on.
type Platform string

const (
	Fargate Platform = "FARGATE"
	EC2     Platform = "EC2"
)

func (p Platform) Valid() bool {
	return p == Fargate || p == EC2
}

const (
	DefaultVCPUs     = 1
	DefaultMemoryMiB = 2048
	DefaultPlatform  = Fargate
)

// Spec describes one job. It is treated as immutable once built; use Clone
// before changing a copy.
//
// Example YAML:
//
//	image: public.ecr.aws/docker/library/python:3.12
//	command: python3 /data/train.py --epochs 10
//	vcpus: 2
//	memory: 4096
//	preloader: true
//	mounts:
//	  read:
//	    - source: s3://datasets/train.py
//	      destination: /data/train.py
type Spec struct {
	// Image is the container image reference
	Image string `json:"image" yaml:"image" mapstructure:"image"`
	// Command is evaluated by a shell when preloading, otherwise split on spaces
	Command string `json:"command" yaml:"command" mapstructure:"command"`
	// Environment holds container environment variables
	Environment map[string]string `json:"environment" yaml:"environment" mapstructure:"environment"`
	// Mounts are the data staging rules applied by the preload hook
	Mounts mount.Set `json:"mounts" yaml:"mounts" mapstructure:"-"`
	// VCPUs requested for the container
	VCPUs int `json:"vcpus" yaml:"vcpus" mapstructure:"vcpus"`
	// MemoryMiB requested for the container
	MemoryMiB int `json:"memory" yaml:"memory" mapstructure:"memory"`
	// StorageGiB is the ephemeral storage size, platform default when nil
	StorageGiB *int `json:"storage_size,omitempty" yaml:"storage_size,omitempty" mapstructure:"storage_size"`
	// Platform is FARGATE or EC2
	Platform Platform `json:"platform" yaml:"platform" mapstructure:"platform"`
	// Tags are attached to the definition and the submitted job
	Tags map[string]string `json:"tags" yaml:"tags" mapstructure:"tags"`
	// Queue overrides the submit-level queue when set
	Queue string `json:"queue,omitempty" yaml:"queue,omitempty" mapstructure:"queue"`
	// Preload wraps the command with the staging hook
	Preload bool `json:"preloader" yaml:"preloader" mapstructure:"preloader"`
}

// New returns a Spec with defaults applied.
func New(image, command string) Spec {
	s := Spec{Image: image, Command: command}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills resource and platform fields left at their zero value.
func (s *Spec) ApplyDefaults() {
	if s.VCPUs == 0 {
		s.VCPUs = DefaultVCPUs
	}
	if s.MemoryMiB == 0 {
		s.MemoryMiB = DefaultMemoryMiB
	}
	if s.Platform == "" {
		s.Platform = DefaultPlatform
	}
}

// Validate checks the fields of the job declared under jobName. Mounts are
// checked for shape only.
func (s Spec) Validate(jobName string) error {
	invalid := func(field, reason string) error {
		return &ezerrors.InvalidJobSpecError{Job: jobName, Field: field, Reason: reason}
	}

	if strings.TrimSpace(s.Image) == "" {
		return invalid("image", "required")
	}
	if _, err := name.ParseReference(s.Image); err != nil {
		return invalid("image", err.Error())
	}
	if strings.TrimSpace(s.Command) == "" {
		return invalid("command", "required")
	}
	if s.VCPUs <= 0 {
		return invalid("vcpus", fmt.Sprintf("must be positive, got %d", s.VCPUs))
	}
	if s.MemoryMiB <= 0 {
		return invalid("memory", fmt.Sprintf("must be positive, got %d", s.MemoryMiB))
	}
	if s.StorageGiB != nil && *s.StorageGiB <= 0 {
		return invalid("storage_size", fmt.Sprintf("must be positive, got %d", *s.StorageGiB))
	}
	if !s.Platform.Valid() {
		return invalid("platform", fmt.Sprintf("unknown platform %q (want FARGATE or EC2)", s.Platform))
	}
	if s.Preload {
		for key := range s.Environment {
			if preload.IsReserved(key) {
				return invalid("environment", fmt.Sprintf("%s is reserved when preloader is enabled", key))
			}
		}
	}

	if err := s.Mounts.CheckShape(); err != nil {
		var me *ezerrors.InvalidMountError
		if errors.As(err, &me) {
			me.Job = jobName
		}
		return err
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ContainerName derives the container name from the last path segment of
// the image reference.
func (s Spec) ContainerName() string {
	segments := strings.Split(s.Image, "/")
	return unsafeChars.ReplaceAllString(segments[len(segments)-1], "_")
}

// Clone returns a deep copy.
func (s Spec) Clone() Spec {
	c := s
	c.Environment = cloneMap(s.Environment)
	c.Tags = cloneMap(s.Tags)
	if s.StorageGiB != nil {
		v := *s.StorageGiB
		c.StorageGiB = &v
	}
	c.Mounts = mount.Set{
		Read:  cloneMounts(s.Mounts.Read),
		Write: cloneMounts(s.Mounts.Write),
	}
	return c
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneMounts(ds []mount.Descriptor) []mount.Descriptor {
	if ds == nil {
		return nil
	}
	out := make([]mount.Descriptor, len(ds))
	for i, d := range ds {
		if d.Recursive != nil {
			r := *d.Recursive
			d.Recursive = &r
		}
		out[i] = d
	}
	return out
}

// FromMap builds a Spec from a plain mapping, applying defaults for missing
// fields and rejecting unknown keys.
func FromMap(m map[string]interface{}) (Spec, error) {
	var s Spec

	fields := make(map[string]interface{}, len(m))
	for k, v := range m {
		fields[k] = v
	}
	if rawMounts, ok := fields["mounts"]; ok {
		delete(fields, "mounts")
		if rawMounts != nil {
			set, err := mount.SetFromAny(rawMounts)
			if err != nil {
				return Spec{}, err
			}
			s.Mounts = set
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		DecodeHook:  wholeNumberHook,
		Result:      &s,
	})
	if err != nil {
		return Spec{}, err
	}
	if err := dec.Decode(fields); err != nil {
		return Spec{}, fmt.Errorf("invalid job specification: %w", err)
	}

	s.ApplyDefaults()
	return s, nil
}

// wholeNumberHook accepts floats for integer fields only when they have no
// fractional part. JSON documents decode every number as float64.
func wholeNumberHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Int {
		return data, nil
	}
	var f float64
	switch v := data.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", data)
	}
	if math.Abs(f) > math.MaxInt32 {
		return nil, fmt.Errorf("%v is out of range", data)
	}
	return int(f), nil
}

// UnmarshalJSON routes decoding through FromMap so JSON documents get the
// same defaults and unknown key checks as mappings.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	spec, err := FromMap(m)
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]interface{}
	if err := node.Decode(&m); err != nil {
		return err
	}
	spec, err := FromMap(m)
	if err != nil {
		return err
	}
	*s = spec
	return nil
}
