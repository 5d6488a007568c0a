// Package logs reads container output of submitted jobs from CloudWatch Logs.
package logs

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"

	"github.com/ehsaniara/ezbatch/pkg/logger"
)

// DefaultGroup is where AWS Batch writes container output.
const DefaultGroup = "/aws/batch/job"

// Event is one log line.
type Event struct {
	Timestamp time.Time
	Message   string
}

// Fetcher returns the first page of a log stream.
type Fetcher interface {
	Fetch(ctx context.Context, stream string, limit int) ([]Event, error)
}

//counterfeiter:generate . CloudWatchLogsAPI

// CloudWatchLogsAPI is the slice of the CloudWatch Logs client used here.
type CloudWatchLogsAPI interface {
	GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error)
}

// CloudWatchFetcher implements Fetcher for one log group.
type CloudWatchFetcher struct {
	client CloudWatchLogsAPI
	group  string
	logger *logger.Logger
}

var _ Fetcher = (*CloudWatchFetcher)(nil)

func NewCloudWatchFetcher(client CloudWatchLogsAPI, group string, log *logger.Logger) *CloudWatchFetcher {
	if group == "" {
		group = DefaultGroup
	}
	if log == nil {
		log = logger.New()
	}
	return &CloudWatchFetcher{
		client: client,
		group:  group,
		logger: log.WithField("component", "log-fetcher"),
	}
}

// NewCloudWatchFetcherFromConfig builds the CloudWatch Logs client from a
// loaded AWS config.
func NewCloudWatchFetcherFromConfig(cfg aws.Config, group string, log *logger.Logger) *CloudWatchFetcher {
	return NewCloudWatchFetcher(cloudwatchlogs.NewFromConfig(cfg), group, log)
}

// Fetch reads events from the head of stream. A non-positive limit leaves
// the page size to the service.
func (f *CloudWatchFetcher) Fetch(ctx context.Context, stream string, limit int) ([]Event, error) {
	if stream == "" {
		return nil, fmt.Errorf("log stream name is required")
	}

	input := &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(f.group),
		LogStreamName: aws.String(stream),
		StartFromHead: aws.Bool(true),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	resp, err := f.client.GetLogEvents(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get log events for %s/%s: %w", f.group, stream, err)
	}

	events := make([]Event, 0, len(resp.Events))
	for _, e := range resp.Events {
		events = append(events, Event{
			Timestamp: time.UnixMilli(aws.ToInt64(e.Timestamp)).UTC(),
			Message:   aws.ToString(e.Message),
		})
	}
	f.logger.Debug("fetched log events", "group", f.group, "stream", stream, "count", len(events))
	return events, nil
}
