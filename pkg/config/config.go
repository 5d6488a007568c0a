package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

// Config holds the complete ezbatch configuration
type Config struct {
	AWS     AWSConfig     `yaml:"aws" json:"aws"`
	Submit  SubmitConfig  `yaml:"submit" json:"submit"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Logs    LogsConfig    `yaml:"logs" json:"logs"`
	Ledger  LedgerConfig  `yaml:"ledger" json:"ledger"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// AWSConfig holds account-level settings used when registering definitions
// and staging data.
type AWSConfig struct {
	Region           string `yaml:"region" json:"region" split_words:"true"`
	ExecutionRoleArn string `yaml:"execution_role_arn" json:"execution_role_arn" split_words:"true"`
	TaskRoleArn      string `yaml:"task_role_arn" json:"task_role_arn" split_words:"true"`
	SSE              string `yaml:"sse" json:"sse" split_words:"true"`
	SSEKMSKeyID      string `yaml:"sse_kms_key_id" json:"sse_kms_key_id" envconfig:"SSE_KMS_KEY_ID"`
}

type SubmitConfig struct {
	DefaultQueue        string `yaml:"default_queue" json:"default_queue" split_words:"true"`
	PlatformVersion     string `yaml:"platform_version" json:"platform_version" split_words:"true"`
	AssignPublicIP      bool   `yaml:"assign_public_ip" json:"assign_public_ip" split_words:"true"`
	RegisterConcurrency int    `yaml:"register_concurrency" json:"register_concurrency" split_words:"true"`
	CheckMounts         bool   `yaml:"check_mounts" json:"check_mounts" split_words:"true"`
}

// StorageConfig points the mount checker at an S3 compatible endpoint.
type StorageConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint" split_words:"true"`
	UseSSL   bool   `yaml:"use_ssl" json:"use_ssl" split_words:"true"`
}

type LogsConfig struct {
	Group string `yaml:"group" json:"group" split_words:"true"`
	Limit int    `yaml:"limit" json:"limit" split_words:"true"`
}

// LedgerConfig selects where submitted runs are recorded
type LedgerConfig struct {
	Backend string        `yaml:"backend" json:"backend" split_words:"true"`
	Table   string        `yaml:"table" json:"table" split_words:"true"`
	TTL     time.Duration `yaml:"ttl" json:"ttl" split_words:"true"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" split_words:"true"`
	Format string `yaml:"format" json:"format" split_words:"true"`
}

var DefaultConfig = Config{
	AWS: AWSConfig{
		SSE: "AES256",
	},
	Submit: SubmitConfig{
		PlatformVersion:     "LATEST",
		AssignPublicIP:      false,
		RegisterConcurrency: 4,
		CheckMounts:         true,
	},
	Storage: StorageConfig{
		Endpoint: "s3.amazonaws.com",
		UseSSL:   true,
	},
	Logs: LogsConfig{
		Group: "/aws/batch/job",
		Limit: 100,
	},
	Ledger: LedgerConfig{
		Backend: "memory",
		Table:   "ezbatch-runs",
		TTL:     30 * 24 * time.Hour,
	},
	Logging: LoggingConfig{
		Level:  "INFO",
		Format: "text",
	},
}

var validSSE = map[string]bool{"AES256": true, "aws:kms": true, "aws:kms:dsse": true}

// LoadConfig loads configuration from the first file found, then applies
// EZBATCH_* environment overrides and validates the result.
//
// Search order:
//
//  1. explicit path argument (from --config)
//
//  2. EZBATCH_CONFIG_PATH
//
//  3. ./ezbatch.yml
//
//  4. ~/.config/ezbatch.yml
//
//  5. /etc/ezbatch/ezbatch.yml
//
// Returns the config and a description of where it came from.
func LoadConfig(explicitPath string) (*Config, string, error) {
	config := DefaultConfig

	path, err := loadFromFile(&config, explicitPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if err := applyEnv(&config); err != nil {
		return nil, "", fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if e := config.Validate(); e != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", e)
	}

	return &config, path, nil
}

func configPaths(explicitPath string) []string {
	paths := []string{
		explicitPath,
		os.Getenv("EZBATCH_CONFIG_PATH"),
		"./ezbatch.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ezbatch.yml"))
	}
	return append(paths, "/etc/ezbatch/ezbatch.yml")
}

func loadFromFile(config *Config, explicitPath string) (string, error) {
	for i, path := range configPaths(explicitPath) {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			// an explicit --config that does not exist is an error
			if i == 0 {
				return "", fmt.Errorf("config file %s does not exist", path)
			}
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return "", fmt.Errorf("failed to parse config file %s: %w", path, err)
		}

		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

// applyEnv overrides only the variables that are set.
func applyEnv(config *Config) error {
	sections := []struct {
		prefix string
		spec   interface{}
	}{
		{"ezbatch", &config.AWS},
		{"ezbatch", &config.Submit},
		{"ezbatch_s3", &config.Storage},
		{"ezbatch_logs", &config.Logs},
		{"ezbatch_ledger", &config.Ledger},
		{"ezbatch_log", &config.Logging},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.spec); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if !validSSE[c.AWS.SSE] {
		return ezerrors.NewConfigError("aws", "sse", fmt.Errorf("unsupported mode %q (want AES256, aws:kms or aws:kms:dsse)", c.AWS.SSE))
	}
	if c.AWS.SSE == "AES256" && c.AWS.SSEKMSKeyID != "" {
		return ezerrors.NewConfigError("aws", "sse_kms_key_id", fmt.Errorf("key id requires a KMS sse mode"))
	}

	if c.Submit.RegisterConcurrency < 1 {
		return ezerrors.NewConfigError("submit", "register_concurrency", fmt.Errorf("must be positive, got %d", c.Submit.RegisterConcurrency))
	}

	switch c.Ledger.Backend {
	case "memory":
	case "dynamodb":
		if c.Ledger.Table == "" {
			return ezerrors.NewConfigError("ledger", "table", fmt.Errorf("required for dynamodb backend"))
		}
	default:
		return ezerrors.NewConfigError("ledger", "backend", fmt.Errorf("unknown backend %q", c.Ledger.Backend))
	}

	if c.Logs.Limit < 0 {
		return ezerrors.NewConfigError("logs", "limit", fmt.Errorf("must not be negative"))
	}

	validLevels := map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "WARNING": true, "ERROR": true}
	if !validLevels[strings.ToUpper(c.Logging.Level)] {
		return ezerrors.NewConfigError("logging", "level", fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}

	return nil
}

// STSAPI is the subset of the STS client used to discover the account id.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// ResolveAccountDefaults fills empty role ARNs with the account's
// ecsTaskExecutionRole. Nothing is fetched when both roles are already set.
func (c *Config) ResolveAccountDefaults(ctx context.Context, client STSAPI) error {
	if c.AWS.ExecutionRoleArn != "" && c.AWS.TaskRoleArn != "" {
		return nil
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("failed to resolve AWS account: %w", err)
	}
	if out.Account == nil || *out.Account == "" {
		return fmt.Errorf("failed to resolve AWS account: empty account id")
	}

	role := fmt.Sprintf("arn:aws:iam::%s:role/ecsTaskExecutionRole", *out.Account)
	if c.AWS.ExecutionRoleArn == "" {
		c.AWS.ExecutionRoleArn = role
	}
	if c.AWS.TaskRoleArn == "" {
		c.AWS.TaskRoleArn = role
	}
	return nil
}
