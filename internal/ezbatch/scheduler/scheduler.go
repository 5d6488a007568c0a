// Package scheduler is the boundary to the remote batch scheduler. The
// orchestrator only talks to the Client interface; BatchClient implements it
// on AWS Batch.
package scheduler

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/definition"
)

// SubmitRequest is one job submission.
type SubmitRequest struct {
	Name         string
	Queue        string
	DefinitionID string
	// DependsOn lists remote job ids that must succeed before this job starts.
	DependsOn []string
	Tags      map[string]string
}

//counterfeiter:generate . Client

// Client is the subset of scheduler operations the orchestrator needs.
type Client interface {
	// RegisterDefinition registers def and returns its identifier.
	RegisterDefinition(ctx context.Context, def *definition.JobDefinition) (string, error)
	DeregisterDefinition(ctx context.Context, definitionID string) error
	// SubmitJob returns the remote job id.
	SubmitJob(ctx context.Context, req SubmitRequest) (string, error)
}

// JobStates are the job states the remote scheduler reports, in lifecycle
// order.
var JobStates = []string{"SUBMITTED", "PENDING", "RUNNABLE", "STARTING", "RUNNING", "SUCCEEDED", "FAILED"}

// ValidJobState reports whether state is one of JobStates.
func ValidJobState(state string) bool {
	for _, s := range JobStates {
		if s == state {
			return true
		}
	}
	return false
}

// JobSummary is one remote job as reported by the scheduler.
type JobSummary struct {
	Name   string
	JobID  string
	TaskID string
	Status string
	Reason string
	Tags   map[string]string
}

// JobLister reads live job state from the scheduler.
type JobLister interface {
	// ListJobs returns the jobs in queue that are currently in status.
	ListJobs(ctx context.Context, queue, status string) ([]JobSummary, error)
}
