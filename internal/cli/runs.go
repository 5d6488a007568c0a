package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect submitted workflow runs",
		Long: `Inspect the runs recorded by 'ezbatch workflow submit'.

Runs are only kept across invocations with the dynamodb ledger backend
(ledger.backend: dynamodb). The memory backend forgets them on exit.`,
	}

	cmd.AddCommand(newRunsListCmd(rt))
	cmd.AddCommand(newRunsShowCmd(rt))
	return cmd
}

func newRunsListCmd(rt *runtime) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := rt.newLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer runs.Close()

			list, err := runs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs found")
				return nil
			}
			printRunList(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func newRunsShowCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and the remote job id of each job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := rt.newLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer runs.Close()

			run, err := runs.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			printRun(cmd.OutOrStdout(), run)
			return nil
		},
	}
}
