package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/squadform/internal/probe"
)

func newVerifyCmd(_ *rootOptions) *cobra.Command {
	cfg := probe.Config{}
	cmd := &cobra.Command{
		Use:         "verify",
		Short:       "Check a running server for consistent leaderboard and team data",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"output": "stdout"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := probe.Run(cmd.Context(), cfg)
			if r != nil {
				for _, f := range r.Failures {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n", f)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d players, leaderboard of %d, %s\n",
				r.PlayersChecked, r.LeaderboardSize, r.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	cmd.Flags().IntVar(&cfg.TopN, "top", probe.DefaultTopN, "leaderboard size to check")
	cmd.Flags().IntVar(&cfg.Workers, "workers", probe.DefaultWorkers, "concurrent player fetches")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", probe.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "log every check")
	return cmd
}
