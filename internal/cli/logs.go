package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd(rt *runtime) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "logs <log-stream>",
		Short: "Print the first page of a job's container output",
		Long: `Print container output of a submitted job from CloudWatch Logs.

The log stream name is shown by 'aws batch describe-jobs' as
container.logStreamName, e.g. nightly-abc-train-def/default/0123abcd.

Examples:
  ezbatch logs nightly-abc-train-def/default/0123abcd
  ezbatch logs nightly-abc-train-def/default/0123abcd --limit 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = rt.cfg.Logs.Limit
			}

			fetcher, err := rt.newFetcher(cmd.Context())
			if err != nil {
				return err
			}
			events, err := fetcher.Fetch(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range events {
				_, _ = fmt.Fprintf(out, "%s %s\n", formatTime(e.Timestamp), e.Message)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of lines (defaults to logs.limit)")
	return cmd
}
