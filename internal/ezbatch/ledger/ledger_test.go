package ledger_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/ledger"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/ledger/ledgerfakes"
	"github.com/ehsaniara/ezbatch/pkg/config"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

func sampleRun(id string, at time.Time) *ledger.Run {
	return &ledger.Run{
		RunID:       id,
		Workflow:    "nightly",
		Queue:       "cpu",
		State:       "COMPLETED",
		SubmittedAt: at,
		Jobs:        map[string]string{"prep": "job-1", "train": "job-2"},
		Order:       []string{"prep", "train"},
	}
}

func TestMemoryLedger(t *testing.T) {
	ctx := context.Background()
	l := ledger.NewMemoryLedger()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	run := sampleRun("r1", base)
	require.NoError(t, l.Record(ctx, run))
	require.NoError(t, l.Record(ctx, sampleRun("r2", base.Add(time.Hour))))
	require.NoError(t, l.Record(ctx, sampleRun("r3", base.Add(2*time.Hour))))

	run.Jobs["prep"] = "mutated"
	got, err := l.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "job-1", got.Jobs["prep"])

	_, err = l.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ezerrors.ErrRunNotFound))

	runs, err := l.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "r3", runs[0].RunID)
	assert.Equal(t, "r1", runs[2].RunID)

	runs, err = l.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	assert.NoError(t, l.Close())
}

func TestNew_Backends(t *testing.T) {
	l, err := ledger.New(context.Background(), config.LedgerConfig{Backend: "memory"}, aws.Config{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = ledger.New(context.Background(), config.LedgerConfig{Backend: "redis"}, aws.Config{}, nil)
	assert.True(t, ezerrors.IsConfigError(err))
}

func TestDynamoDBLedger_Record(t *testing.T) {
	client := &ledgerfakes.FakeDynamoDBAPI{}
	client.PutItemReturns(&dynamodb.PutItemOutput{}, nil)
	l := ledger.NewDynamoDBLedgerWithClient(client, "runs", 24*time.Hour, nil)

	before := time.Now()
	require.NoError(t, l.Record(context.Background(), sampleRun("r1", before)))

	require.Equal(t, 1, client.PutItemCallCount())
	_, input, _ := client.PutItemArgsForCall(0)
	assert.Equal(t, "runs", aws.ToString(input.TableName))

	id, ok := input.Item["runId"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "r1", id.Value)

	jobs, ok := input.Item["jobs"].(*types.AttributeValueMemberM)
	require.True(t, ok)
	assert.Len(t, jobs.Value, 2)

	expires, ok := input.Item["expiresAt"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	ts, err := strconv.ParseInt(expires.Value, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, before.Add(24*time.Hour).Unix())
}

func TestDynamoDBLedger_RecordWithoutTTL(t *testing.T) {
	client := &ledgerfakes.FakeDynamoDBAPI{}
	l := ledger.NewDynamoDBLedgerWithClient(client, "runs", 0, nil)

	require.NoError(t, l.Record(context.Background(), &ledger.Run{RunID: "r", State: "FAILED", Error: "boom"}))
	_, input, _ := client.PutItemArgsForCall(0)
	_, hasTTL := input.Item["expiresAt"]
	assert.False(t, hasTTL)
	_, hasJobs := input.Item["jobs"]
	assert.False(t, hasJobs)
}

func TestDynamoDBLedger_RecordError(t *testing.T) {
	client := &ledgerfakes.FakeDynamoDBAPI{}
	client.PutItemReturns(nil, errors.New("ProvisionedThroughputExceeded"))
	l := ledger.NewDynamoDBLedgerWithClient(client, "runs", 0, nil)

	assert.ErrorContains(t, l.Record(context.Background(), &ledger.Run{RunID: "r"}), "ProvisionedThroughputExceeded")
}

func TestDynamoDBLedger_GetRoundTrip(t *testing.T) {
	putClient := &ledgerfakes.FakeDynamoDBAPI{}
	writer := ledger.NewDynamoDBLedgerWithClient(putClient, "runs", time.Hour, nil)
	want := sampleRun("r1", time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))
	want.Error = "job 'train': submission failed"
	require.NoError(t, writer.Record(context.Background(), want))
	_, put, _ := putClient.PutItemArgsForCall(0)

	getClient := &ledgerfakes.FakeDynamoDBAPI{}
	getClient.GetItemReturns(&dynamodb.GetItemOutput{Item: put.Item}, nil)
	reader := ledger.NewDynamoDBLedgerWithClient(getClient, "runs", time.Hour, nil)

	got, err := reader.Get(context.Background(), "r1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}

	_, input, _ := getClient.GetItemArgsForCall(0)
	key := input.Key["runId"].(*types.AttributeValueMemberS)
	assert.Equal(t, "r1", key.Value)
}

func TestDynamoDBLedger_GetNotFound(t *testing.T) {
	client := &ledgerfakes.FakeDynamoDBAPI{}
	client.GetItemReturns(&dynamodb.GetItemOutput{}, nil)
	l := ledger.NewDynamoDBLedgerWithClient(client, "runs", 0, nil)

	_, err := l.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ezerrors.ErrRunNotFound))
}

func TestDynamoDBLedger_ListPaginates(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	item := func(id string, offset time.Duration) map[string]types.AttributeValue {
		return map[string]types.AttributeValue{
			"runId":       &types.AttributeValueMemberS{Value: id},
			"runState":    &types.AttributeValueMemberS{Value: "COMPLETED"},
			"submittedAt": &types.AttributeValueMemberS{Value: base.Add(offset).Format(time.RFC3339)},
		}
	}

	client := &ledgerfakes.FakeDynamoDBAPI{}
	client.ScanReturnsOnCall(0, &dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{item("old", 0)},
		LastEvaluatedKey: map[string]types.AttributeValue{"runId": &types.AttributeValueMemberS{Value: "old"}},
	}, nil)
	client.ScanReturnsOnCall(1, &dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{item("new", time.Hour), item("mid", 30*time.Minute)},
	}, nil)

	l := ledger.NewDynamoDBLedgerWithClient(client, "runs", 0, nil)
	runs, err := l.List(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, client.ScanCallCount())
	_, second, _ := client.ScanArgsForCall(1)
	assert.NotEmpty(t, second.ExclusiveStartKey)

	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].RunID)
	assert.Equal(t, "mid", runs[1].RunID)
}

func TestDynamoDBLedger_ListError(t *testing.T) {
	client := &ledgerfakes.FakeDynamoDBAPI{}
	client.ScanReturns(nil, errors.New("AccessDenied"))
	l := ledger.NewDynamoDBLedgerWithClient(client, "runs", 0, nil)

	_, err := l.List(context.Background(), 0)
	assert.Error(t, err)
}
