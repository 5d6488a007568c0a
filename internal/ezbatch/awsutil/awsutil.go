// Package awsutil loads the shared AWS configuration used by every service
// client.
package awsutil

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"

	"github.com/ehsaniara/ezbatch/pkg/logger"
	"github.com/ehsaniara/ezbatch/pkg/version"
)

const imdsTimeout = 2 * time.Second

// RegionDetector asks instance metadata for the current region.
type RegionDetector interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// LoadConfig loads the default credential chain. When region is empty and the
// environment does not name one either, the region is taken from EC2
// instance metadata if available.
func LoadConfig(ctx context.Context, region string, log *logger.Logger) (aws.Config, error) {
	if log == nil {
		log = logger.New().WithField("component", "aws-config")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithAppID(version.AppID()),
	}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Region == "" {
		detected, err := DetectRegion(ctx, imds.NewFromConfig(cfg))
		if err != nil {
			log.Warn("no AWS region configured and instance metadata is unavailable", "error", err)
		} else {
			log.Info("auto-detected AWS region from EC2 metadata", "region", detected)
			cfg.Region = detected
		}
	}

	return cfg, nil
}

// DetectRegion queries instance metadata with a short timeout.
func DetectRegion(ctx context.Context, client RegionDetector) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, imdsTimeout)
	defer cancel()

	result, err := client.GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get region from EC2 metadata: %w", err)
	}
	if result.Region == "" {
		return "", fmt.Errorf("EC2 metadata returned an empty region")
	}
	return result.Region, nil
}
