package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/batch/types"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/definition"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/job"
	"github.com/ehsaniara/ezbatch/pkg/logger"
)

const (
	statusActive = "ACTIVE"
	// DescribeJobs accepts at most this many ids per call.
	describeBatchSize = 100
)

//counterfeiter:generate . BatchAPI

// BatchAPI is the slice of the AWS Batch client used here.
type BatchAPI interface {
	DescribeJobDefinitions(ctx context.Context, params *batch.DescribeJobDefinitionsInput, optFns ...func(*batch.Options)) (*batch.DescribeJobDefinitionsOutput, error)
	DescribeJobs(ctx context.Context, params *batch.DescribeJobsInput, optFns ...func(*batch.Options)) (*batch.DescribeJobsOutput, error)
	ListJobs(ctx context.Context, params *batch.ListJobsInput, optFns ...func(*batch.Options)) (*batch.ListJobsOutput, error)
	RegisterJobDefinition(ctx context.Context, params *batch.RegisterJobDefinitionInput, optFns ...func(*batch.Options)) (*batch.RegisterJobDefinitionOutput, error)
	DeregisterJobDefinition(ctx context.Context, params *batch.DeregisterJobDefinitionInput, optFns ...func(*batch.Options)) (*batch.DeregisterJobDefinitionOutput, error)
	SubmitJob(ctx context.Context, params *batch.SubmitJobInput, optFns ...func(*batch.Options)) (*batch.SubmitJobOutput, error)
}

// BatchClient implements Client on AWS Batch using ECS task properties.
type BatchClient struct {
	api    BatchAPI
	logger *logger.Logger
}

// NewBatchClient wraps an AWS Batch API client.
func NewBatchClient(api BatchAPI, log *logger.Logger) *BatchClient {
	if log == nil {
		log = logger.New()
	}
	return &BatchClient{
		api:    api,
		logger: log.WithField("component", "batch-client"),
	}
}

// NewBatchClientFromConfig builds the AWS Batch client from a loaded AWS config.
func NewBatchClientFromConfig(cfg aws.Config, log *logger.Logger) *BatchClient {
	return NewBatchClient(batch.NewFromConfig(cfg), log)
}

// RegisterDefinition deregisters every ACTIVE definition with the same name,
// then registers def and returns its ARN.
func (c *BatchClient) RegisterDefinition(ctx context.Context, def *definition.JobDefinition) (string, error) {
	if err := c.deregisterActive(ctx, def.Name); err != nil {
		return "", err
	}

	out, err := c.api.RegisterJobDefinition(ctx, buildRegisterInput(def))
	if err != nil {
		return "", fmt.Errorf("register job definition %s: %w", def.Name, err)
	}

	arn := aws.ToString(out.JobDefinitionArn)
	c.logger.Debug("registered job definition", "name", def.Name, "arn", arn, "revision", aws.ToInt32(out.Revision))
	return arn, nil
}

func (c *BatchClient) deregisterActive(ctx context.Context, name string) error {
	out, err := c.api.DescribeJobDefinitions(ctx, &batch.DescribeJobDefinitionsInput{
		JobDefinitionName: aws.String(name),
		Status:            aws.String(statusActive),
	})
	if err != nil {
		return fmt.Errorf("describe job definitions %s: %w", name, err)
	}

	for _, existing := range out.JobDefinitions {
		if aws.ToString(existing.Status) != statusActive || aws.ToString(existing.JobDefinitionName) != name {
			continue
		}
		arn := aws.ToString(existing.JobDefinitionArn)
		c.logger.Info("deregistering existing job definition", "name", name, "arn", arn)
		if err := c.DeregisterDefinition(ctx, arn); err != nil {
			return err
		}
	}
	return nil
}

func (c *BatchClient) DeregisterDefinition(ctx context.Context, definitionID string) error {
	_, err := c.api.DeregisterJobDefinition(ctx, &batch.DeregisterJobDefinitionInput{
		JobDefinition: aws.String(definitionID),
	})
	if err != nil {
		return fmt.Errorf("deregister job definition %s: %w", definitionID, err)
	}
	return nil
}

func (c *BatchClient) SubmitJob(ctx context.Context, req SubmitRequest) (string, error) {
	input := &batch.SubmitJobInput{
		JobName:       aws.String(req.Name),
		JobQueue:      aws.String(req.Queue),
		JobDefinition: aws.String(req.DefinitionID),
		Tags:          req.Tags,
		PropagateTags: aws.Bool(true),
	}
	for _, id := range req.DependsOn {
		input.DependsOn = append(input.DependsOn, types.JobDependency{JobId: aws.String(id)})
	}

	out, err := c.api.SubmitJob(ctx, input)
	if err != nil {
		return "", fmt.Errorf("submit job %s to queue %s: %w", req.Name, req.Queue, err)
	}

	jobID := aws.ToString(out.JobId)
	c.logger.Debug("submitted job", "name", req.Name, "queue", req.Queue, "jobId", jobID, "dependsOn", len(req.DependsOn))
	return jobID, nil
}

// ListJobs lists the jobs in queue with the given status and describes them
// to pick up the ECS task id and tags of each.
func (c *BatchClient) ListJobs(ctx context.Context, queue, status string) ([]JobSummary, error) {
	var ids []string
	pages := batch.NewListJobsPaginator(c.api, &batch.ListJobsInput{
		JobQueue:  aws.String(queue),
		JobStatus: types.JobStatus(status),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %s jobs in queue %s: %w", status, queue, err)
		}
		for _, js := range page.JobSummaryList {
			ids = append(ids, aws.ToString(js.JobId))
		}
	}

	jobs := make([]JobSummary, 0, len(ids))
	for start := 0; start < len(ids); start += describeBatchSize {
		chunk := ids[start:min(start+describeBatchSize, len(ids))]
		out, err := c.api.DescribeJobs(ctx, &batch.DescribeJobsInput{Jobs: chunk})
		if err != nil {
			return nil, fmt.Errorf("describe %d jobs in queue %s: %w", len(chunk), queue, err)
		}
		for _, detail := range out.Jobs {
			jobs = append(jobs, summarize(detail))
		}
	}
	c.logger.Debug("listed jobs", "queue", queue, "status", status, "count", len(jobs))
	return jobs, nil
}

func summarize(detail types.JobDetail) JobSummary {
	s := JobSummary{
		Name:   aws.ToString(detail.JobName),
		JobID:  aws.ToString(detail.JobId),
		Status: string(detail.Status),
		Reason: aws.ToString(detail.StatusReason),
		Tags:   detail.Tags,
	}
	if detail.EcsProperties != nil {
		for _, task := range detail.EcsProperties.TaskProperties {
			if arn := aws.ToString(task.TaskArn); arn != "" {
				s.TaskID = arn[strings.LastIndex(arn, "/")+1:]
				break
			}
		}
	}
	return s
}

func buildRegisterInput(def *definition.JobDefinition) *batch.RegisterJobDefinitionInput {
	container := types.TaskContainerProperties{
		Name:      aws.String(def.Container.Name),
		Image:     aws.String(def.Container.Image),
		Command:   def.Container.Command,
		Essential: aws.Bool(true),
		LogConfiguration: &types.LogConfiguration{
			LogDriver: types.LogDriverAwslogs,
		},
	}
	for _, kv := range def.Container.Environment {
		container.Environment = append(container.Environment, types.KeyValuePair{
			Name:  aws.String(kv.Name),
			Value: aws.String(kv.Value),
		})
	}
	for _, rr := range def.Container.ResourceRequirements {
		container.ResourceRequirements = append(container.ResourceRequirements, types.ResourceRequirement{
			Type:  types.ResourceType(rr.Type),
			Value: aws.String(rr.Value),
		})
	}

	task := types.EcsTaskProperties{
		Containers: []types.TaskContainerProperties{container},
	}
	if def.ExecutionRoleArn != "" {
		task.ExecutionRoleArn = aws.String(def.ExecutionRoleArn)
	}
	if def.TaskRoleArn != "" {
		task.TaskRoleArn = aws.String(def.TaskRoleArn)
	}

	if def.Platform == job.Fargate {
		if def.EphemeralStorageGiB != nil {
			task.EphemeralStorage = &types.EphemeralStorage{SizeInGiB: aws.Int32(int32(*def.EphemeralStorageGiB))}
		}
		assign := types.AssignPublicIpDisabled
		if def.AssignPublicIP {
			assign = types.AssignPublicIpEnabled
		}
		task.PlatformVersion = aws.String(def.PlatformVersion)
		task.NetworkConfiguration = &types.NetworkConfiguration{AssignPublicIp: assign}
		task.RuntimePlatform = &types.RuntimePlatform{
			OperatingSystemFamily: aws.String("LINUX"),
			CpuArchitecture:       aws.String("X86_64"),
		}
	}

	return &batch.RegisterJobDefinitionInput{
		JobDefinitionName:    aws.String(def.Name),
		Type:                 types.JobDefinitionTypeContainer,
		PlatformCapabilities: []types.PlatformCapability{types.PlatformCapability(def.Platform)},
		EcsProperties: &types.EcsProperties{
			TaskProperties: []types.EcsTaskProperties{task},
		},
		PropagateTags: aws.Bool(true),
		Tags:          def.Tags,
	}
}
