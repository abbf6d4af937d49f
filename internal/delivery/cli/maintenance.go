package cli

import (
	"context"
	"fmt"
	"io/fs"
	"text/tabwriter"
	"time"

	"riftstats/internal/application"

	"github.com/spf13/cobra"
)

type BackfillDeadTimeCmd struct {
	migrations fs.FS
}

func NewBackfillDeadTimeCmd(migrations fs.FS) *BackfillDeadTimeCmd {
	return &BackfillDeadTimeCmd{migrations: migrations}
}

func (c *BackfillDeadTimeCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-deadtime",
		Short: "Refetch window matches whose stat rows lack time dead and fill it in",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireRiotKey(); err != nil {
				return err
			}
			res, err := app.Services.Maintenance.BackfillDeadTime(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "candidates: %d\nupdated: %d\nfailed: %d\n", res.Candidates, res.Updated, res.Failed)
			return err
		}),
	}
}

type ResetCursorsCmd struct {
	migrations fs.FS
	yes        bool
}

func NewResetCursorsCmd(migrations fs.FS) *ResetCursorsCmd {
	return &ResetCursorsCmd{migrations: migrations}
}

func (c *ResetCursorsCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-cursors",
		Short: "Delete all ingest cursors so the next run starts from the default lookback",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if !c.yes {
				return fmt.Errorf("refusing to delete cursors without --yes")
			}
			n, err := app.Services.Maintenance.ResetCursors(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d cursors\n", n)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&c.yes, "yes", false, "confirm the reset")
	return cmd
}

type StatusCmd struct {
	migrations fs.FS
}

func NewStatusCmd(migrations fs.FS) *StatusCmd {
	return &StatusCmd{migrations: migrations}
}

func (c *StatusCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show ingest cursors and time-dead coverage for the window",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			st, err := app.Services.Maintenance.Status(ctx)
			if err != nil {
				return err
			}
			now := app.Clock.Now()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "window %s .. %s\n\n", time.Unix(st.WindowStart, 0).UTC().Format(time.DateTime), time.Unix(st.WindowEnd, 0).UTC().Format(time.DateTime))

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLAYER\tCURSOR\tCURSOR AGE\tUPDATED")
			for _, cur := range st.Cursors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", valueOr(cur.RiotID, cur.PUUID),
					time.Unix(cur.LastEndTimeTS, 0).UTC().Format(time.DateTime),
					application.FormatAge(now, cur.LastEndTimeTS),
					application.FormatAge(now, cur.UpdatedAt))
			}
			if len(st.Cursors) == 0 {
				fmt.Fprintln(w, "(no cursors)\t\t\t")
			}
			w.Flush()

			fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PLAYER\tROWS\tWITH TIME DEAD\tMISSING")
			for _, cv := range st.Coverage {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", cv.RiotID, cv.Total, cv.Filled, cv.Total-cv.Filled)
			}
			return w.Flush()
		}),
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
