package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/definition"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/mount"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/orchestrator"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/workflow"
)

func newWorkflowCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Validate, order and submit workflow files",
		Long: `Work with workflow files.

A workflow file is JSON (or YAML for .yml/.yaml) of the form
  {"name": ..., "jobs": {"<job>": {...}}, "dependencies": {"<job>": ["<job>", ...]}}`,
	}

	cmd.AddCommand(newWorkflowValidateCmd())
	cmd.AddCommand(newWorkflowOrderCmd())
	cmd.AddCommand(newWorkflowSubmitCmd(rt))
	return cmd
}

func newWorkflowValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a workflow without contacting AWS",
		Long: `Check that every dependency names a declared job, that dependencies do
not form a cycle and that every job translates to a valid job definition.

Examples:
  ezbatch workflow validate pipeline.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := workflow.Load(args[0])
			if err != nil {
				return err
			}
			if err := w.Validate(); err != nil {
				return err
			}
			for _, name := range w.Jobs.Names() {
				spec, _ := w.Jobs.Get(name)
				if _, err := definition.Translate(name, spec, definition.Options{}); err != nil {
					return err
				}
			}

			green := color.New(color.FgGreen).SprintFunc()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s workflow '%s' is valid (%d jobs)\n",
				green("✓"), w.Name, w.Jobs.Len())
			return nil
		},
	}
}

func newWorkflowOrderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order <file>",
		Short: "Print the order jobs would be submitted in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := workflow.Load(args[0])
			if err != nil {
				return err
			}
			order, err := w.Order()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, name := range order {
				deps := w.DependenciesOf(name)
				if len(deps) == 0 {
					_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, name)
					continue
				}
				_, _ = fmt.Fprintf(out, "%d. %s (after %v)\n", i+1, name, deps)
			}
			return nil
		},
	}
}

type submitOptions struct {
	queue          string
	skipMountCheck bool
}

func (o *submitOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.queue, "queue", "q", "",
		"Job queue for jobs without their own queue (defaults to submit.default_queue)")
	fs.BoolVar(&o.skipMountCheck, "skip-mount-check", false,
		"Do not check mount sources and destinations against S3 before registering")
}

func newWorkflowSubmitCmd(rt *runtime) *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Register, submit and clean up a workflow on AWS Batch",
		Long: `Submit every job of a workflow to AWS Batch in dependency order.

One job definition is registered per job and deregistered once all jobs are
queued. If a job cannot be submitted, the jobs that depend on it are not
submitted either.

Examples:
  ezbatch workflow submit pipeline.json --queue cpu
  ezbatch workflow submit pipeline.yaml --skip-mount-check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, rt, opts, args[0])
		},
	}
	opts.addFlags(cmd.Flags())
	return cmd
}

func runSubmit(cmd *cobra.Command, rt *runtime, opts *submitOptions, path string) error {
	ctx := cmd.Context()

	w, err := workflow.Load(path)
	if err != nil {
		return err
	}
	queue := opts.queue
	if queue == "" {
		queue = rt.cfg.Submit.DefaultQueue
	}

	client, err := rt.newScheduler(ctx)
	if err != nil {
		return err
	}
	if err := rt.resolveRoles(ctx); err != nil {
		return err
	}
	runs, err := rt.newLedger(ctx)
	if err != nil {
		return err
	}
	defer runs.Close()

	orchOpts := []orchestrator.Option{
		orchestrator.WithLogger(rt.log),
		orchestrator.WithLedger(runs),
		orchestrator.WithRegisterConcurrency(rt.cfg.Submit.RegisterConcurrency),
		orchestrator.WithDefinitionOptions(definition.Options{
			ExecutionRoleArn: rt.cfg.AWS.ExecutionRoleArn,
			TaskRoleArn:      rt.cfg.AWS.TaskRoleArn,
			PlatformVersion:  rt.cfg.Submit.PlatformVersion,
			AssignPublicIP:   rt.cfg.Submit.AssignPublicIP,
		}),
	}
	if rt.cfg.Submit.CheckMounts && !opts.skipMountCheck {
		checker, err := rt.newChecker(ctx)
		if err != nil {
			return err
		}
		orchOpts = append(orchOpts, orchestrator.WithStorageChecker(checker,
			mount.EncryptionMode(rt.cfg.AWS.SSE), rt.cfg.AWS.SSEKMSKeyID))
	}

	result, err := orchestrator.New(client, orchOpts...).Submit(ctx, w, queue)
	if result != nil {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
		_, _ = fmt.Fprintf(out, "Workflow: %s\n", result.Workflow)
		_, _ = fmt.Fprintf(out, "State: %s\n", stateColor(string(result.State)).Sprint(result.State))
		printJobIDs(out, result.Order, result.JobIDs)
	}
	return err
}
