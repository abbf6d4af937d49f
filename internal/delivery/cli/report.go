package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"text/tabwriter"
	"time"

	"riftstats/internal/models"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	migrations fs.FS
	dryRun     bool
}

func NewReportCmd(migrations fs.FS) *ReportCmd {
	return &ReportCmd{migrations: migrations}
}

func (c *ReportCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the weekly report, update all-time records and publish it",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if c.dryRun {
				report, err := app.Services.Report.PreviewWeekly(ctx)
				if err != nil {
					return err
				}
				printReport(cmd.OutOrStdout(), report)
				return nil
			}

			if err := app.Config.RequireNotifier(); err != nil {
				return err
			}
			report, err := app.Services.Report.SendWeekly(ctx)
			app.Metrics.ObserveReport("weekly", err)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "print the report without publishing or touching records")
	return cmd
}

type HallOfShameCmd struct {
	migrations fs.FS
	dryRun     bool
}

func NewHallOfShameCmd(migrations fs.FS) *HallOfShameCmd {
	return &HallOfShameCmd{migrations: migrations}
}

func (c *HallOfShameCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hall-of-shame",
		Short: "Publish every player's worst stored ranked game",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			var (
				lines []models.GameLine
				err   error
			)
			if c.dryRun {
				lines, err = app.Services.Report.HallOfShame(ctx)
			} else {
				if err := app.Config.RequireNotifier(); err != nil {
					return err
				}
				lines, err = app.Services.Report.SendHallOfShame(ctx)
				app.Metrics.ObserveReport("hall_of_shame", err)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLAYER\tCHAMPION\tK/D/A\tKDA\tQUEUE\tDATE\tMATCH")
			for _, l := range lines {
				fmt.Fprintf(w, "%s\t%s\t%d/%d/%d\t%.2f\t%s\t%s\t%s\n", l.RiotID, l.Champion, l.Kills, l.Deaths, l.Assists,
					l.KDA, app.Tracking.QueueLabel(l.QueueID), time.Unix(l.StartTS, 0).UTC().Format(time.DateOnly), l.MatchID)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "print without publishing")
	return cmd
}

func printReport(out io.Writer, r *models.WeeklyReport) {
	fmt.Fprintf(out, "window %s .. %s (%d days)\n\n", r.Start.UTC().Format(time.DateTime), r.End.UTC().Format(time.DateTime), r.LookbackDays)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLAYER\tGAMES\tWINS\tWR%\tK/D/A\tKDA\tCS/MIN\tROLE\tDEAD/GAME\tCASUAL")
	for _, p := range r.Players {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%d/%d/%d\t%.2f\t%.2f\t%s\t%.0fs\t%d\n", p.RiotID, p.Games, p.Wins, p.WinRate,
			p.Kills, p.Deaths, p.Assists, p.KDA, p.CSPerMin, p.MainRole, p.AvgDeadS, p.CasualGames)
	}
	w.Flush()

	fmt.Fprintln(out, "\nleaderboard:")
	for i, p := range r.Leaderboard {
		fmt.Fprintf(out, "  %2d. %s  %.1f%% WR  %d games  KDA %.2f\n", i+1, p.RiotID, p.WinRate, p.Games, p.KDA)
	}

	if len(r.Records) > 0 {
		fmt.Fprintln(out, "\nrecords broken:")
		for _, u := range r.Records {
			fmt.Fprintf(out, "  %s: %.2f by %s\n", u.Label, u.Value, u.Meta.RiotID)
		}
	}
}
