// Package errors defines the error taxonomy shared by the ezbatch packages.
// Every error is either a validation error, raised before any remote call,
// or a remote error, raised by the scheduler or storage collaborators.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Typed errors below match their own kind and their parent kind
// with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrRemote     = errors.New("remote error")

	// Validation subtypes
	ErrUnknownJobReference      = errors.New("unknown job reference")
	ErrCyclicDependency         = errors.New("cyclic dependency")
	ErrInvalidMount             = errors.New("invalid mount")
	ErrUnsupportedResourceShape = errors.New("unsupported resource shape")
	ErrNoQueueSpecified         = errors.New("no queue specified")
	ErrInvalidJobSpec           = errors.New("invalid job specification")

	// Remote subtypes
	ErrDefinitionRegistration   = errors.New("job definition registration failed")
	ErrJobSubmission            = errors.New("job submission failed")
	ErrDefinitionDeregistration = errors.New("job definition deregistration failed")
	ErrStorageAccess            = errors.New("storage access failed")

	ErrInvalidConfig = errors.New("invalid configuration")
	ErrRunNotFound   = errors.New("run not found")
)

// UnknownJobReferenceError is raised when a dependency map names a job that
// is not declared in the workflow.
type UnknownJobReferenceError struct {
	// Job is the dependent job. Empty when the undeclared name is itself a
	// key of the dependency map.
	Job        string
	Reference  string
	Suggestion string
}

func (e *UnknownJobReferenceError) Error() string {
	var msg string
	if e.Job == "" {
		msg = fmt.Sprintf("dependencies declared for non-existent job '%s'", e.Reference)
	} else {
		msg = fmt.Sprintf("job '%s' depends on non-existent job '%s'", e.Job, e.Reference)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean '%s'?)", e.Suggestion)
	}
	return msg
}

func (e *UnknownJobReferenceError) Is(target error) bool {
	return target == ErrUnknownJobReference || target == ErrValidation
}

func (e *UnknownJobReferenceError) JobName() string {
	if e.Job == "" {
		return e.Reference
	}
	return e.Job
}

// CyclicDependencyError names one cycle, with the first job repeated at the end.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency detected: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency || target == ErrValidation
}

func (e *CyclicDependencyError) JobName() string {
	if len(e.Cycle) == 0 {
		return ""
	}
	return e.Cycle[0]
}

// InvalidMountError reports a malformed mount or one the storage collaborator
// rejected (missing object, unwritable bucket).
type InvalidMountError struct {
	Job         string
	Direction   string
	Source      string
	Destination string
	Reason      string
}

func (e *InvalidMountError) Error() string {
	msg := fmt.Sprintf("invalid %s mount '%s' -> '%s': %s", e.Direction, e.Source, e.Destination, e.Reason)
	if e.Job != "" {
		return fmt.Sprintf("job '%s': %s", e.Job, msg)
	}
	return msg
}

func (e *InvalidMountError) Is(target error) bool {
	return target == ErrInvalidMount || target == ErrValidation
}

func (e *InvalidMountError) JobName() string { return e.Job }

// UnsupportedResourceShapeError is raised for a vCPU/memory pair the target
// platform does not accept.
type UnsupportedResourceShapeError struct {
	Job       string
	Platform  string
	VCPUs     int
	MemoryMiB int
}

func (e *UnsupportedResourceShapeError) Error() string {
	return fmt.Sprintf("job '%s': %s does not support vcpus=%d with memory=%dMiB",
		e.Job, e.Platform, e.VCPUs, e.MemoryMiB)
}

func (e *UnsupportedResourceShapeError) Is(target error) bool {
	return target == ErrUnsupportedResourceShape || target == ErrValidation
}

func (e *UnsupportedResourceShapeError) JobName() string { return e.Job }

type NoQueueSpecifiedError struct {
	Job string
}

func (e *NoQueueSpecifiedError) Error() string {
	return fmt.Sprintf("job '%s': no queue specified and no default queue given", e.Job)
}

func (e *NoQueueSpecifiedError) Is(target error) bool {
	return target == ErrNoQueueSpecified || target == ErrValidation
}

func (e *NoQueueSpecifiedError) JobName() string { return e.Job }

// InvalidJobSpecError reports a job field that fails its own constraints.
type InvalidJobSpecError struct {
	Job    string
	Field  string
	Reason string
}

func (e *InvalidJobSpecError) Error() string {
	if e.Job == "" {
		return fmt.Sprintf("invalid job field '%s': %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("job '%s': invalid field '%s': %s", e.Job, e.Field, e.Reason)
}

func (e *InvalidJobSpecError) Is(target error) bool {
	return target == ErrInvalidJobSpec || target == ErrValidation
}

func (e *InvalidJobSpecError) JobName() string { return e.Job }

type DefinitionRegistrationError struct {
	Job string
	Err error
}

func (e *DefinitionRegistrationError) Error() string {
	return fmt.Sprintf("job '%s': registering job definition: %v", e.Job, e.Err)
}

func (e *DefinitionRegistrationError) Unwrap() error { return e.Err }

func (e *DefinitionRegistrationError) Is(target error) bool {
	return target == ErrDefinitionRegistration || target == ErrRemote
}

func (e *DefinitionRegistrationError) JobName() string { return e.Job }

// JobSubmissionError records which jobs reached the scheduler before the
// failing one.
type JobSubmissionError struct {
	Job          string
	Submitted    []string
	NotSubmitted []string
	Err          error
}

func (e *JobSubmissionError) Error() string {
	return fmt.Sprintf("job '%s': submission failed: %v (submitted: [%s], not submitted: [%s])",
		e.Job, e.Err, strings.Join(e.Submitted, ", "), strings.Join(e.NotSubmitted, ", "))
}

func (e *JobSubmissionError) Unwrap() error { return e.Err }

func (e *JobSubmissionError) Is(target error) bool {
	return target == ErrJobSubmission || target == ErrRemote
}

func (e *JobSubmissionError) JobName() string { return e.Job }

type DefinitionDeregistrationError struct {
	Job          string
	DefinitionID string
	Err          error
}

func (e *DefinitionDeregistrationError) Error() string {
	return fmt.Sprintf("job '%s': deregistering job definition %s: %v", e.Job, e.DefinitionID, e.Err)
}

func (e *DefinitionDeregistrationError) Unwrap() error { return e.Err }

func (e *DefinitionDeregistrationError) Is(target error) bool {
	return target == ErrDefinitionDeregistration || target == ErrRemote
}

func (e *DefinitionDeregistrationError) JobName() string { return e.Job }

// StorageAccessError is a transport failure while checking a mount, as
// opposed to a negative answer from storage.
type StorageAccessError struct {
	URI       string
	Operation string
	Err       error
}

func (e *StorageAccessError) Error() string {
	return fmt.Sprintf("storage %s: operation %s: %v", e.URI, e.Operation, e.Err)
}

func (e *StorageAccessError) Unwrap() error { return e.Err }

func (e *StorageAccessError) Is(target error) bool {
	return target == ErrStorageAccess || target == ErrRemote
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Component string
	Field     string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config %s.%s: %v", e.Component, e.Field, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Component, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(component, field string, err error) error {
	return &ConfigError{Component: component, Field: field, Err: fmt.Errorf("%w: %v", ErrInvalidConfig, err)}
}

func WrapStorageError(uri, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageAccessError{URI: uri, Operation: operation, Err: err}
}

// Error classification functions
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsRemoteError(err error) bool {
	return errors.Is(err, ErrRemote)
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// GetJobName returns the declared job name carried by err, if any.
func GetJobName(err error) (string, bool) {
	var named interface{ JobName() string }
	if errors.As(err, &named) && named.JobName() != "" {
		return named.JobName(), true
	}
	return "", false
}

// JoinErrors drops nil entries and joins the rest.
func JoinErrors(errs ...error) error {
	var valid []error
	for _, err := range errs {
		if err != nil {
			valid = append(valid, err)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return errors.Join(valid...)
}
