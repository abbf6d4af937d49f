package cli

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
)

type IngestCmd struct {
	migrations fs.FS
}

func NewIngestCmd(migrations fs.FS) *IngestCmd {
	return &IngestCmd{migrations: migrations}
}

func (c *IngestCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Fetch new matches for every tracked player and advance their cursors",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireRiotKey(); err != nil {
				return err
			}
			res, err := app.Services.Ingest.Run(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "new matches: %d\nnew player rows: %d\nskipped by queue: %d\nskipped not participant: %d\nfailed players: %d\n",
				res.NewMatches, res.NewPlayerRows, res.SkippedByQueue, res.SkippedNotParticipant, res.FailedPlayers)
			return err
		}),
	}
}

type SyncPlayersCmd struct {
	migrations fs.FS
}

func NewSyncPlayersCmd(migrations fs.FS) *SyncPlayersCmd {
	return &SyncPlayersCmd{migrations: migrations}
}

func (c *SyncPlayersCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "sync-players",
		Short: "Resolve every configured riot id and refresh the player rows",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireRiotKey(); err != nil {
				return err
			}
			n, err := app.Services.Ingest.SyncPlayers(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d/%d players\n", n, len(app.Tracking.Players))
			return nil
		}),
	}
}
