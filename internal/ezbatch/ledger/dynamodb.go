package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
	"github.com/ehsaniara/ezbatch/pkg/logger"
)

//counterfeiter:generate . DynamoDBAPI

// DynamoDBAPI is the slice of the DynamoDB client used by the ledger.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// dynamoDBLedger stores one item per run keyed by runId. Items carry an
// expiresAt attribute for table TTL when ttl is positive.
type dynamoDBLedger struct {
	client    DynamoDBAPI
	tableName string
	ttl       time.Duration
	logger    *logger.Logger
}

// NewDynamoDBLedger connects to tableName and checks it is reachable.
func NewDynamoDBLedger(ctx context.Context, awsCfg aws.Config, tableName string, ttl time.Duration, log *logger.Logger) (Ledger, error) {
	if tableName == "" {
		return nil, ezerrors.NewConfigError("ledger", "table", errors.New("DynamoDB table name is required"))
	}

	l := NewDynamoDBLedgerWithClient(dynamodb.NewFromConfig(awsCfg), tableName, ttl, log)
	if err := l.(*dynamoDBLedger).healthCheck(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// NewDynamoDBLedgerWithClient creates the ledger with an injected client.
func NewDynamoDBLedgerWithClient(client DynamoDBAPI, tableName string, ttl time.Duration, log *logger.Logger) Ledger {
	if log == nil {
		log = logger.New()
	}
	return &dynamoDBLedger{
		client:    client,
		tableName: tableName,
		ttl:       ttl,
		logger:    log.WithField("component", "ledger-dynamodb"),
	}
}

func (d *dynamoDBLedger) Record(ctx context.Context, run *Run) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      runToItem(run, d.ttl, time.Now()),
	})
	if err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.RunID, err)
	}
	return nil
}

func (d *dynamoDBLedger) Get(ctx context.Context, runID string) (*Run, error) {
	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"runId": &types.AttributeValueMemberS{Value: runID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	if result.Item == nil {
		return nil, ezerrors.ErrRunNotFound
	}
	return itemToRun(result.Item), nil
}

// List scans the whole table and sorts client side.
func (d *dynamoDBLedger) List(ctx context.Context, limit int) ([]*Run, error) {
	var runs []*Run
	input := &dynamodb.ScanInput{TableName: aws.String(d.tableName)}

	for {
		result, err := d.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan runs: %w", err)
		}
		for _, item := range result.Items {
			runs = append(runs, itemToRun(item))
		}
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sortNewestFirst(runs)
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (d *dynamoDBLedger) Close() error {
	return nil
}

func (d *dynamoDBLedger) healthCheck(ctx context.Context) error {
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.tableName),
	})
	if err != nil {
		return fmt.Errorf("DynamoDB table %s not accessible: %w", d.tableName, err)
	}
	return nil
}

func runToItem(run *Run, ttl time.Duration, now time.Time) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"runId":       &types.AttributeValueMemberS{Value: run.RunID},
		"workflow":    &types.AttributeValueMemberS{Value: run.Workflow},
		"runState":    &types.AttributeValueMemberS{Value: run.State},
		"submittedAt": &types.AttributeValueMemberS{Value: run.SubmittedAt.UTC().Format(time.RFC3339)},
	}
	if run.Queue != "" {
		item["queue"] = &types.AttributeValueMemberS{Value: run.Queue}
	}
	if run.Error != "" {
		item["error"] = &types.AttributeValueMemberS{Value: run.Error}
	}
	if len(run.Jobs) > 0 {
		jobs := make(map[string]types.AttributeValue, len(run.Jobs))
		for name, id := range run.Jobs {
			jobs[name] = &types.AttributeValueMemberS{Value: id}
		}
		item["jobs"] = &types.AttributeValueMemberM{Value: jobs}
	}
	if len(run.Order) > 0 {
		order := make([]types.AttributeValue, 0, len(run.Order))
		for _, name := range run.Order {
			order = append(order, &types.AttributeValueMemberS{Value: name})
		}
		item["jobOrder"] = &types.AttributeValueMemberL{Value: order}
	}

	// TTL attribute (Unix timestamp when the item should expire)
	if ttl > 0 {
		item["expiresAt"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(now.Add(ttl).Unix(), 10)}
	}
	return item
}

func itemToRun(item map[string]types.AttributeValue) *Run {
	run := &Run{}
	if v, ok := item["runId"].(*types.AttributeValueMemberS); ok {
		run.RunID = v.Value
	}
	if v, ok := item["workflow"].(*types.AttributeValueMemberS); ok {
		run.Workflow = v.Value
	}
	if v, ok := item["runState"].(*types.AttributeValueMemberS); ok {
		run.State = v.Value
	}
	if v, ok := item["queue"].(*types.AttributeValueMemberS); ok {
		run.Queue = v.Value
	}
	if v, ok := item["error"].(*types.AttributeValueMemberS); ok {
		run.Error = v.Value
	}
	if v, ok := item["submittedAt"].(*types.AttributeValueMemberS); ok {
		if t, err := time.Parse(time.RFC3339, v.Value); err == nil {
			run.SubmittedAt = t
		}
	}
	if v, ok := item["jobs"].(*types.AttributeValueMemberM); ok {
		run.Jobs = make(map[string]string, len(v.Value))
		for name, attr := range v.Value {
			if id, ok := attr.(*types.AttributeValueMemberS); ok {
				run.Jobs[name] = id.Value
			}
		}
	}
	if v, ok := item["jobOrder"].(*types.AttributeValueMemberL); ok {
		for _, attr := range v.Value {
			if name, ok := attr.(*types.AttributeValueMemberS); ok {
				run.Order = append(run.Order, name.Value)
			}
		}
	}
	return run
}
