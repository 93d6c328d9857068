package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	service "github.com/okian/squadform/internal/app"
	"github.com/okian/squadform/internal/domain/model"
	"github.com/okian/squadform/pkg/logger"
)

type reportOptions struct {
	top    int
	asJSON bool
}

type teamReport struct {
	Team        model.TeamOverview   `json:"team"`
	Leaderboard []model.RankedPlayer `json:"leaderboard"`
	Leaders     []model.MetricLeader `json:"leaders"`
}

func newReportCmd(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:         "report",
		Short:       "Print the team overview, leaderboard and discipline leaders",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"output": "stdout"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.top == 0 {
				opts.top = root.cfg.DefaultTopN
			}
			svc := newService(root.cfg, logger.Get())
			return runReport(cmd.Context(), svc, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&opts.top, "top", 0, "leaderboard size (default from config)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func runReport(ctx context.Context, svc *service.Service, opts *reportOptions, out io.Writer) error {
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	var (
		rep teamReport
		err error
	)
	if rep.Team, err = svc.Team(ctx); err != nil {
		return err
	}
	if rep.Leaderboard, err = svc.TopN(ctx, opts.top); err != nil {
		return err
	}
	if rep.Leaders, err = svc.Leaders(ctx); err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeReport(out, svc, rep)
}

func writeReport(out io.Writer, svc *service.Service, rep teamReport) error {
	t := rep.Team
	fmt.Fprintf(out, "Team %s, season %s\n", t.Name, t.Season)
	fmt.Fprintf(out, "Squad %d, staff %d, season average %.0f%%\n",
		t.Summary.SquadSize, t.Summary.StaffCount, t.Summary.SeasonAverage)
	fmt.Fprint(out, "Quarterly averages:")
	for _, q := range t.Aggregate.QuarterlyAverages {
		fmt.Fprintf(out, " %s %.0f", q.Period, q.Value)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nRANK\tPLAYER\tPOSITION\tAVERAGE\tTREND\n")
	for _, e := range rep.Leaderboard {
		p := e.Player
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n", e.Rank, p.FullName(), p.Position, p.SeasonAverage, p.Trend)
	}

	fmt.Fprintf(tw, "\nMETRIC\tLEADER\tQ4\tPHYSICAL\n")
	for _, l := range rep.Leaders {
		phys, err := svc.Convert(context.Background(), l.Metric, l.Value)
		if err != nil {
			phys = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%s\n", l.Metric, l.Player.FullName(), l.Value, phys)
	}
	return tw.Flush()
}
