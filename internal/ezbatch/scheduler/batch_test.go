package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/batch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/definition"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/job"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/scheduler"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/scheduler/schedulerfakes"
)

func fargateDefinition(t *testing.T) *definition.JobDefinition {
	t.Helper()
	spec := job.New("python:3.12", "python train.py")
	spec.Environment = map[string]string{"MODE": "fast"}
	def, err := definition.Translate("nightly-abc-train-def", spec, definition.Options{
		ExecutionRoleArn: "arn:aws:iam::123456789012:role/exec",
		TaskRoleArn:      "arn:aws:iam::123456789012:role/task",
		Tags:             map[string]string{"job": "train"},
	})
	require.NoError(t, err)
	return def
}

func TestBatchClient_RegisterDefinition(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.DescribeJobDefinitionsReturns(&batch.DescribeJobDefinitionsOutput{}, nil)
	api.RegisterJobDefinitionReturns(&batch.RegisterJobDefinitionOutput{
		JobDefinitionArn: aws.String("arn:aws:batch:us-east-1:123456789012:job-definition/nightly-abc-train-def:1"),
		Revision:         aws.Int32(1),
	}, nil)

	client := scheduler.NewBatchClient(api, nil)
	arn, err := client.RegisterDefinition(context.Background(), fargateDefinition(t))
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:batch:us-east-1:123456789012:job-definition/nightly-abc-train-def:1", arn)

	require.Equal(t, 1, api.DescribeJobDefinitionsCallCount())
	_, describe, _ := api.DescribeJobDefinitionsArgsForCall(0)
	assert.Equal(t, "nightly-abc-train-def", aws.ToString(describe.JobDefinitionName))
	assert.Equal(t, 0, api.DeregisterJobDefinitionCallCount())

	require.Equal(t, 1, api.RegisterJobDefinitionCallCount())
	_, input, _ := api.RegisterJobDefinitionArgsForCall(0)
	assert.Equal(t, "nightly-abc-train-def", aws.ToString(input.JobDefinitionName))
	assert.Equal(t, types.JobDefinitionTypeContainer, input.Type)
	assert.Equal(t, []types.PlatformCapability{types.PlatformCapabilityFargate}, input.PlatformCapabilities)
	assert.True(t, aws.ToBool(input.PropagateTags))
	assert.Equal(t, map[string]string{"job": "train"}, input.Tags)

	require.NotNil(t, input.EcsProperties)
	require.Len(t, input.EcsProperties.TaskProperties, 1)
	task := input.EcsProperties.TaskProperties[0]
	assert.Equal(t, "arn:aws:iam::123456789012:role/exec", aws.ToString(task.ExecutionRoleArn))
	assert.Equal(t, "arn:aws:iam::123456789012:role/task", aws.ToString(task.TaskRoleArn))
	assert.Equal(t, "LATEST", aws.ToString(task.PlatformVersion))
	require.NotNil(t, task.NetworkConfiguration)
	assert.Equal(t, types.AssignPublicIpDisabled, task.NetworkConfiguration.AssignPublicIp)
	require.NotNil(t, task.RuntimePlatform)
	assert.Equal(t, "LINUX", aws.ToString(task.RuntimePlatform.OperatingSystemFamily))
	require.NotNil(t, task.EphemeralStorage)
	assert.Equal(t, int32(30), aws.ToInt32(task.EphemeralStorage.SizeInGiB))

	require.Len(t, task.Containers, 1)
	c := task.Containers[0]
	assert.Equal(t, "python_3_12", aws.ToString(c.Name))
	assert.Equal(t, "python:3.12", aws.ToString(c.Image))
	assert.Equal(t, []string{"python", "train.py"}, c.Command)
	assert.True(t, aws.ToBool(c.Essential))
	require.NotNil(t, c.LogConfiguration)
	assert.Equal(t, types.LogDriverAwslogs, c.LogConfiguration.LogDriver)
	require.Len(t, c.Environment, 1)
	assert.Equal(t, "MODE", aws.ToString(c.Environment[0].Name))
	require.Len(t, c.ResourceRequirements, 2)
	assert.Equal(t, types.ResourceTypeVcpu, c.ResourceRequirements[0].Type)
	assert.Equal(t, "1", aws.ToString(c.ResourceRequirements[0].Value))
	assert.Equal(t, types.ResourceTypeMemory, c.ResourceRequirements[1].Type)
	assert.Equal(t, "2048", aws.ToString(c.ResourceRequirements[1].Value))
}

func TestBatchClient_RegisterDefinition_EC2(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.DescribeJobDefinitionsReturns(&batch.DescribeJobDefinitionsOutput{}, nil)
	api.RegisterJobDefinitionReturns(&batch.RegisterJobDefinitionOutput{JobDefinitionArn: aws.String("arn:def:1")}, nil)

	spec := job.New("python", "run")
	spec.Platform = job.EC2
	spec.VCPUs = 3
	spec.MemoryMiB = 5000
	def, err := definition.Translate("ec2-job", spec, definition.Options{})
	require.NoError(t, err)
	size := 4000
	def.EphemeralStorageGiB = &size

	_, err = scheduler.NewBatchClient(api, nil).RegisterDefinition(context.Background(), def)
	require.NoError(t, err)

	_, input, _ := api.RegisterJobDefinitionArgsForCall(0)
	assert.Equal(t, []types.PlatformCapability{types.PlatformCapabilityEc2}, input.PlatformCapabilities)
	task := input.EcsProperties.TaskProperties[0]
	assert.Nil(t, task.PlatformVersion)
	assert.Nil(t, task.NetworkConfiguration)
	assert.Nil(t, task.RuntimePlatform)
	assert.Nil(t, task.EphemeralStorage)
	assert.Nil(t, task.ExecutionRoleArn)
}

func TestBatchClient_RegisterDefinition_ReplacesActive(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.DescribeJobDefinitionsReturns(&batch.DescribeJobDefinitionsOutput{
		JobDefinitions: []types.JobDefinition{
			{JobDefinitionName: aws.String("nightly-abc-train-def"), JobDefinitionArn: aws.String("arn:old:1"), Status: aws.String("ACTIVE")},
			{JobDefinitionName: aws.String("nightly-abc-train-def"), JobDefinitionArn: aws.String("arn:old:0"), Status: aws.String("INACTIVE")},
			{JobDefinitionName: aws.String("other"), JobDefinitionArn: aws.String("arn:other:1"), Status: aws.String("ACTIVE")},
		},
	}, nil)
	api.DeregisterJobDefinitionReturns(&batch.DeregisterJobDefinitionOutput{}, nil)
	api.RegisterJobDefinitionReturns(&batch.RegisterJobDefinitionOutput{JobDefinitionArn: aws.String("arn:new:2")}, nil)

	arn, err := scheduler.NewBatchClient(api, nil).RegisterDefinition(context.Background(), fargateDefinition(t))
	require.NoError(t, err)
	assert.Equal(t, "arn:new:2", arn)

	require.Equal(t, 1, api.DeregisterJobDefinitionCallCount())
	_, dereg, _ := api.DeregisterJobDefinitionArgsForCall(0)
	assert.Equal(t, "arn:old:1", aws.ToString(dereg.JobDefinition))
}

func TestBatchClient_RegisterDefinition_Errors(t *testing.T) {
	t.Run("describe fails", func(t *testing.T) {
		api := &schedulerfakes.FakeBatchAPI{}
		api.DescribeJobDefinitionsReturns(nil, errors.New("throttled"))

		_, err := scheduler.NewBatchClient(api, nil).RegisterDefinition(context.Background(), fargateDefinition(t))
		assert.ErrorContains(t, err, "throttled")
		assert.Equal(t, 0, api.RegisterJobDefinitionCallCount())
	})

	t.Run("register fails", func(t *testing.T) {
		api := &schedulerfakes.FakeBatchAPI{}
		api.DescribeJobDefinitionsReturns(&batch.DescribeJobDefinitionsOutput{}, nil)
		api.RegisterJobDefinitionReturns(nil, errors.New("access denied"))

		_, err := scheduler.NewBatchClient(api, nil).RegisterDefinition(context.Background(), fargateDefinition(t))
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestBatchClient_SubmitJob(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.SubmitJobReturns(&batch.SubmitJobOutput{JobId: aws.String("job-2")}, nil)

	id, err := scheduler.NewBatchClient(api, nil).SubmitJob(context.Background(), scheduler.SubmitRequest{
		Name:         "nightly-abc-train-def",
		Queue:        "cpu",
		DefinitionID: "arn:def:1",
		DependsOn:    []string{"job-1"},
		Tags:         map[string]string{"job": "train"},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-2", id)

	_, input, _ := api.SubmitJobArgsForCall(0)
	assert.Equal(t, "nightly-abc-train-def", aws.ToString(input.JobName))
	assert.Equal(t, "cpu", aws.ToString(input.JobQueue))
	assert.Equal(t, "arn:def:1", aws.ToString(input.JobDefinition))
	require.Len(t, input.DependsOn, 1)
	assert.Equal(t, "job-1", aws.ToString(input.DependsOn[0].JobId))
	assert.Equal(t, "train", input.Tags["job"])
}

func TestBatchClient_SubmitJob_Error(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.SubmitJobReturns(nil, errors.New("queue not found"))

	_, err := scheduler.NewBatchClient(api, nil).SubmitJob(context.Background(), scheduler.SubmitRequest{Name: "a", Queue: "missing"})
	assert.ErrorContains(t, err, "queue not found")
}

func TestBatchClient_DeregisterDefinition(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.DeregisterJobDefinitionReturnsOnCall(1, nil, errors.New("gone"))

	client := scheduler.NewBatchClient(api, nil)
	require.NoError(t, client.DeregisterDefinition(context.Background(), "arn:def:1"))
	assert.ErrorContains(t, client.DeregisterDefinition(context.Background(), "arn:def:2"), "gone")
}

func jobDetail(id, name, taskArn string) types.JobDetail {
	d := types.JobDetail{
		JobId:   aws.String(id),
		JobName: aws.String(name),
		Status:  types.JobStatusRunning,
		Tags:    map[string]string{"job": name},
	}
	if taskArn != "" {
		d.EcsProperties = &types.EcsPropertiesDetail{
			TaskProperties: []types.EcsTaskDetails{{TaskArn: aws.String(taskArn)}},
		}
	}
	return d
}

func TestBatchClient_ListJobs(t *testing.T) {
	api := &schedulerfakes.FakeBatchAPI{}
	api.ListJobsReturnsOnCall(0, &batch.ListJobsOutput{
		JobSummaryList: []types.JobSummary{{JobId: aws.String("j-1")}},
		NextToken:      aws.String("page-2"),
	}, nil)
	api.ListJobsReturnsOnCall(1, &batch.ListJobsOutput{
		JobSummaryList: []types.JobSummary{{JobId: aws.String("j-2")}},
	}, nil)
	api.DescribeJobsReturns(&batch.DescribeJobsOutput{Jobs: []types.JobDetail{
		jobDetail("j-1", "nightly-abc-train-j1", "arn:aws:ecs:us-east-1:123456789012:task/cluster/0f9c2d41ab"),
		jobDetail("j-2", "nightly-abc-eval-j2", ""),
	}}, nil)

	jobs, err := scheduler.NewBatchClient(api, nil).ListJobs(context.Background(), "cpu", "RUNNING")
	require.NoError(t, err)

	require.Equal(t, 2, api.ListJobsCallCount())
	_, first, _ := api.ListJobsArgsForCall(0)
	assert.Equal(t, "cpu", aws.ToString(first.JobQueue))
	assert.Equal(t, types.JobStatusRunning, first.JobStatus)
	_, second, _ := api.ListJobsArgsForCall(1)
	assert.Equal(t, "page-2", aws.ToString(second.NextToken))

	require.Equal(t, 1, api.DescribeJobsCallCount())
	_, describe, _ := api.DescribeJobsArgsForCall(0)
	assert.Equal(t, []string{"j-1", "j-2"}, describe.Jobs)

	assert.Equal(t, []scheduler.JobSummary{
		{Name: "nightly-abc-train-j1", JobID: "j-1", TaskID: "0f9c2d41ab", Status: "RUNNING", Tags: map[string]string{"job": "nightly-abc-train-j1"}},
		{Name: "nightly-abc-eval-j2", JobID: "j-2", Status: "RUNNING", Tags: map[string]string{"job": "nightly-abc-eval-j2"}},
	}, jobs)
}

func TestBatchClient_ListJobs_DescribesInChunks(t *testing.T) {
	summaries := make([]types.JobSummary, 0, 150)
	for i := range 150 {
		summaries = append(summaries, types.JobSummary{JobId: aws.String(fmt.Sprintf("j-%d", i))})
	}
	api := &schedulerfakes.FakeBatchAPI{}
	api.ListJobsReturns(&batch.ListJobsOutput{JobSummaryList: summaries}, nil)
	api.DescribeJobsReturns(&batch.DescribeJobsOutput{}, nil)

	jobs, err := scheduler.NewBatchClient(api, nil).ListJobs(context.Background(), "cpu", "RUNNABLE")
	require.NoError(t, err)
	assert.Empty(t, jobs)

	require.Equal(t, 2, api.DescribeJobsCallCount())
	_, first, _ := api.DescribeJobsArgsForCall(0)
	_, second, _ := api.DescribeJobsArgsForCall(1)
	assert.Len(t, first.Jobs, 100)
	assert.Len(t, second.Jobs, 50)
	assert.Equal(t, "j-100", second.Jobs[0])
}

func TestBatchClient_ListJobs_Errors(t *testing.T) {
	t.Run("list fails", func(t *testing.T) {
		api := &schedulerfakes.FakeBatchAPI{}
		api.ListJobsReturns(nil, errors.New("queue not found"))

		_, err := scheduler.NewBatchClient(api, nil).ListJobs(context.Background(), "missing", "RUNNING")
		assert.ErrorContains(t, err, "queue missing")
		assert.ErrorContains(t, err, "queue not found")
		assert.Equal(t, 0, api.DescribeJobsCallCount())
	})

	t.Run("no jobs skips describe", func(t *testing.T) {
		api := &schedulerfakes.FakeBatchAPI{}
		api.ListJobsReturns(&batch.ListJobsOutput{}, nil)

		jobs, err := scheduler.NewBatchClient(api, nil).ListJobs(context.Background(), "cpu", "FAILED")
		require.NoError(t, err)
		assert.Empty(t, jobs)
		assert.Equal(t, 0, api.DescribeJobsCallCount())
	})

	t.Run("describe fails", func(t *testing.T) {
		api := &schedulerfakes.FakeBatchAPI{}
		api.ListJobsReturns(&batch.ListJobsOutput{JobSummaryList: []types.JobSummary{{JobId: aws.String("j-1")}}}, nil)
		api.DescribeJobsReturns(nil, errors.New("throttled"))

		_, err := scheduler.NewBatchClient(api, nil).ListJobs(context.Background(), "cpu", "RUNNING")
		assert.ErrorContains(t, err, "throttled")
	})
}

func TestValidJobState(t *testing.T) {
	for _, s := range scheduler.JobStates {
		assert.True(t, scheduler.ValidJobState(s), s)
	}
	assert.False(t, scheduler.ValidJobState("running"))
	assert.False(t, scheduler.ValidJobState(""))
}
