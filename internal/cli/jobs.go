package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/scheduler"
	ezerrors "github.com/ehsaniara/ezbatch/pkg/errors"
)

func newJobsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect live jobs in a job queue",
	}
	cmd.AddCommand(newJobsListCmd(rt))
	return cmd
}

func newJobsListCmd(rt *runtime) *cobra.Command {
	var queue, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the jobs of a queue in one state",
		Long: `List the jobs AWS Batch currently reports for a job queue, together
with the ECS task id running each one.

Examples:
  ezbatch jobs list --queue cpu
  ezbatch jobs list -q cpu --status FAILED`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if queue == "" {
				queue = rt.cfg.Submit.DefaultQueue
			}
			if queue == "" {
				return &ezerrors.ClassifiedError{
					Err:      errors.New("no queue given"),
					Category: ezerrors.CategoryValidation,
					UserMsg:  "Pass --queue or set submit.default_queue.",
				}
			}
			status = strings.ToUpper(status)
			if !scheduler.ValidJobState(status) {
				return &ezerrors.ClassifiedError{
					Err:      fmt.Errorf("unknown job status %q", status),
					Category: ezerrors.CategoryValidation,
					UserMsg:  "Use one of " + strings.Join(scheduler.JobStates, ", ") + ".",
				}
			}

			lister, err := rt.newJobLister(cmd.Context())
			if err != nil {
				return err
			}
			jobs, err := lister.ListJobs(cmd.Context(), queue, status)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No %s jobs in queue %s\n", status, queue)
				return nil
			}
			printJobList(cmd.OutOrStdout(), jobs)
			return nil
		},
	}
	cmd.Flags().StringVarP(&queue, "queue", "q", "", "Job queue to list (defaults to submit.default_queue)")
	cmd.Flags().StringVarP(&status, "status", "s", "RUNNING",
		"Job status ("+strings.Join(scheduler.JobStates, ", ")+")")
	return cmd
}
