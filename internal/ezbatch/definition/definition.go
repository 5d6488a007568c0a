// Package definition translates job specifications into the registration
// payload understood by the batch scheduler. Translation is pure: it never
// performs I/O.
package definition

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/job"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/preload"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

const (
	ResourceVCPU   = "VCPU"
	ResourceMemory = "MEMORY"

	// DefaultFargateStorageGiB is used when a Fargate job does not size its
	// ephemeral storage.
	DefaultFargateStorageGiB = 30

	minFargateStorageGiB = 21
	maxFargateStorageGiB = 200
)

// KeyValue is one environment entry.
type KeyValue struct {
	Name  string
	Value string
}

// ResourceRequirement is a resource amount rendered as the scheduler expects it.
type ResourceRequirement struct {
	Type  string
	Value string
}

// Container is the single container of a definition.
type Container struct {
	Name                 string
	Image                string
	Command              []string
	Environment          []KeyValue
	ResourceRequirements []ResourceRequirement
}

// JobDefinition is the translated, scheduler-shaped form of a job.Spec.
type JobDefinition struct {
	Name                string
	Platform            job.Platform
	Container           Container
	EphemeralStorageGiB *int
	ExecutionRoleArn    string
	TaskRoleArn         string
	PlatformVersion     string
	AssignPublicIP      bool
	Tags                map[string]string
}

// Options carries the account level settings a definition needs.
type Options struct {
	// DefinitionName is the registered name. The job name is used when empty.
	DefinitionName   string
	ExecutionRoleArn string
	TaskRoleArn      string
	// PlatformVersion applies to Fargate only. Empty means LATEST.
	PlatformVersion string
	AssignPublicIP  bool
	// Tags are merged over the job's own tags.
	Tags map[string]string
}

// Translate maps the spec of the job declared as name to a definition.
// Errors name the declared job. For Fargate the vCPU/memory pair must be one
// the platform accepts.
func Translate(name string, spec job.Spec, opts Options) (*JobDefinition, error) {
	spec.ApplyDefaults()
	if err := spec.Validate(name); err != nil {
		return nil, err
	}

	if spec.Platform == job.Fargate {
		if !FargateSupports(spec.VCPUs, spec.MemoryMiB) {
			return nil, &ezerrors.UnsupportedResourceShapeError{
				Job:       name,
				Platform:  string(spec.Platform),
				VCPUs:     spec.VCPUs,
				MemoryMiB: spec.MemoryMiB,
			}
		}
		if spec.StorageGiB != nil && (*spec.StorageGiB < minFargateStorageGiB || *spec.StorageGiB > maxFargateStorageGiB) {
			return nil, &ezerrors.InvalidJobSpecError{
				Job:    name,
				Field:  "storage_size",
				Reason: fmt.Sprintf("FARGATE ephemeral storage must be between %d and %d GiB, got %d", minFargateStorageGiB, maxFargateStorageGiB, *spec.StorageGiB),
			}
		}
	}
	if spec.Platform == job.EC2 && spec.StorageGiB != nil {
		return nil, &ezerrors.InvalidJobSpecError{
			Job:    name,
			Field:  "storage_size",
			Reason: "ephemeral storage can only be sized on FARGATE",
		}
	}

	env := make(map[string]string, len(spec.Environment)+2)
	for k, v := range spec.Environment {
		env[k] = v
	}

	var command []string
	if spec.Preload {
		wire, err := spec.Mounts.WireForm()
		if err != nil {
			return nil, fmt.Errorf("job '%s': encoding mounts: %w", name, err)
		}
		env[preload.MountsEnv] = wire
		env[preload.CommandEnv] = spec.Command
		command = preload.Command()
	} else {
		command = strings.Split(spec.Command, " ")
	}

	defName := opts.DefinitionName
	if defName == "" {
		defName = name
	}

	def := &JobDefinition{
		Name:     defName,
		Platform: spec.Platform,
		Container: Container{
			Name:        spec.ContainerName(),
			Image:       spec.Image,
			Command:     command,
			Environment: sortedEnvironment(env),
			ResourceRequirements: []ResourceRequirement{
				{Type: ResourceVCPU, Value: strconv.Itoa(spec.VCPUs)},
				{Type: ResourceMemory, Value: strconv.Itoa(spec.MemoryMiB)},
			},
		},
		ExecutionRoleArn: opts.ExecutionRoleArn,
		TaskRoleArn:      opts.TaskRoleArn,
		Tags:             mergeTags(spec.Tags, opts.Tags),
	}

	if spec.Platform == job.Fargate {
		storage := DefaultFargateStorageGiB
		if spec.StorageGiB != nil {
			storage = *spec.StorageGiB
		}
		def.EphemeralStorageGiB = &storage
		def.PlatformVersion = opts.PlatformVersion
		if def.PlatformVersion == "" {
			def.PlatformVersion = "LATEST"
		}
		def.AssignPublicIP = opts.AssignPublicIP
	}

	return def, nil
}

func sortedEnvironment(env map[string]string) []KeyValue {
	out := make([]KeyValue, 0, len(env))
	for k, v := range env {
		out = append(out, KeyValue{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func mergeTags(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Environment returns the container environment as a map.
func (d *JobDefinition) Environment() map[string]string {
	out := make(map[string]string, len(d.Container.Environment))
	for _, kv := range d.Container.Environment {
		out[kv.Name] = kv.Value
	}
	return out
}
