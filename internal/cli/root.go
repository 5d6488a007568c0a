// Package cli implements the ezbatch command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/awsutil"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/ledger"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/logs"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/scheduler"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/storage"
	"github.com/ehsaniara/ezbatch/pkg/config"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
	"github.com/ehsaniara/ezbatch/pkg/logger"
	"github.com/ehsaniara/ezbatch/pkg/version"
)

// runtime is the state shared by all commands of one invocation. The
// constructors are fields so tests can swap in fakes.
type runtime struct {
	configPath string
	logLevel   string
	out        io.Writer
	errOut     io.Writer

	cfg    *config.Config
	log    *logger.Logger
	awsCfg *aws.Config

	newScheduler func(ctx context.Context) (scheduler.Client, error)
	newChecker   func(ctx context.Context) (mount.StorageChecker, error)
	newLedger    func(ctx context.Context) (ledger.Ledger, error)
	newFetcher   func(ctx context.Context) (logs.Fetcher, error)
	newJobLister func(ctx context.Context) (scheduler.JobLister, error)
	resolveRoles func(ctx context.Context) error
}

func newRuntime(out, errOut io.Writer) *runtime {
	rt := &runtime{out: out, errOut: errOut}
	rt.newScheduler = rt.batchClient
	rt.newChecker = rt.s3Checker
	rt.newLedger = rt.ledgerBackend
	rt.newFetcher = rt.cloudWatchFetcher
	rt.newJobLister = rt.batchLister
	rt.resolveRoles = rt.resolveAccountRoles
	return rt
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := newRuntime(os.Stdout, os.Stderr)
	if err := newRootCmd(rt).ExecuteContext(ctx); err != nil {
		return reportError(rt.errOut, err)
	}
	return 0
}

func reportError(w io.Writer, err error) int {
	classified := ezerrors.ClassifyError(err)
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	_, _ = fmt.Fprintf(w, "%s %v\n", red("Error:"), err)
	if classified.UserMsg != "" {
		_, _ = fmt.Fprintln(w, classified.UserMsg)
	}
	return classified.ExitCode()
}

func newRootCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ezbatch",
		Short: "Submit containerized workflows to AWS Batch",
		Long: `ezbatch registers one job definition per job, submits the jobs in
dependency order to AWS Batch and removes the definitions again.

Quick Examples:
  ezbatch workflow validate pipeline.json     # Check jobs and dependencies
  ezbatch workflow order pipeline.json        # Show the submission order
  ezbatch workflow submit pipeline.json --queue cpu
  ezbatch runs list                           # Recently submitted runs
  ezbatch jobs list --queue cpu               # Jobs running in a queue now
  ezbatch logs train/default/0123abcd         # First page of a job's output`,
		Version:           version.GetShortVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.setup,
	}
	cmd.SetOut(rt.out)
	cmd.SetErr(rt.errOut)

	cmd.PersistentFlags().StringVar(&rt.configPath, "config", "",
		"Path to configuration file (searches common locations if not specified)")
	cmd.PersistentFlags().StringVar(&rt.logLevel, "log-level", "",
		"Log level (DEBUG, INFO, WARN, ERROR); overrides the configuration")

	cmd.AddCommand(newWorkflowCmd(rt))
	cmd.AddCommand(newRunsCmd(rt))
	cmd.AddCommand(newJobsCmd(rt))
	cmd.AddCommand(newLogsCmd(rt))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// no configuration needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.GetLongVersion())
			return nil
		},
	}
}

// setup loads configuration and builds the logger before any command runs.
func (rt *runtime) setup(cmd *cobra.Command, _ []string) error {
	cfg, source, err := config.LoadConfig(rt.configPath)
	if err != nil {
		return err
	}
	if rt.logLevel != "" {
		cfg.Logging.Level = rt.logLevel
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return ezerrors.NewConfigError("logging", "level", err)
	}

	rt.cfg = cfg
	rt.log = logger.NewWithConfig(logger.Config{
		Level:  level,
		Output: rt.errOut,
		Format: cfg.Logging.Format,
		Mode:   "cli",
	})
	rt.log.Debug("configuration loaded", "source", source, "command", cmd.Name())
	return nil
}

func (rt *runtime) awsConfig(ctx context.Context) (aws.Config, error) {
	if rt.awsCfg != nil {
		return *rt.awsCfg, nil
	}
	cfg, err := awsutil.LoadConfig(ctx, rt.cfg.AWS.Region, rt.log)
	if err != nil {
		return aws.Config{}, err
	}
	rt.awsCfg = &cfg
	return cfg, nil
}

func (rt *runtime) batchClient(ctx context.Context) (scheduler.Client, error) {
	cfg, err := rt.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.NewBatchClientFromConfig(cfg, rt.log), nil
}

func (rt *runtime) batchLister(ctx context.Context) (scheduler.JobLister, error) {
	cfg, err := rt.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return scheduler.NewBatchClientFromConfig(cfg, rt.log), nil
}

func (rt *runtime) s3Checker(ctx context.Context) (mount.StorageChecker, error) {
	cfg, err := rt.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	checker, err := storage.NewS3Checker(storage.S3Config{
		Endpoint: rt.cfg.Storage.Endpoint,
		Region:   cfg.Region,
		UseSSL:   rt.cfg.Storage.UseSSL,
	}, rt.log)
	if err != nil {
		return nil, err
	}
	return checker, nil
}

// ledgerBackend only loads AWS settings for the DynamoDB backend.
func (rt *runtime) ledgerBackend(ctx context.Context) (ledger.Ledger, error) {
	var awsCfg aws.Config
	if rt.cfg.Ledger.Backend == ledger.BackendDynamoDB {
		var err error
		if awsCfg, err = rt.awsConfig(ctx); err != nil {
			return nil, err
		}
	}
	return ledger.New(ctx, rt.cfg.Ledger, awsCfg, rt.log)
}

func (rt *runtime) cloudWatchFetcher(ctx context.Context) (logs.Fetcher, error) {
	cfg, err := rt.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	return logs.NewCloudWatchFetcherFromConfig(cfg, rt.cfg.Logs.Group, rt.log), nil
}

func (rt *runtime) resolveAccountRoles(ctx context.Context) error {
	if rt.cfg.AWS.ExecutionRoleArn != "" && rt.cfg.AWS.TaskRoleArn != "" {
		return nil
	}
	cfg, err := rt.awsConfig(ctx)
	if err != nil {
		return err
	}
	return rt.cfg.ResolveAccountDefaults(ctx, sts.NewFromConfig(cfg))
}
