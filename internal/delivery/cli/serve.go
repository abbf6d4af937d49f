package cli

import (
	"context"
	"io/fs"
	"time"

	"riftstats/internal/delivery/discord"
	service "riftstats/pkg/services"

	"github.com/spf13/cobra"
)

const (
	ingestJobTimeout = 30 * time.Minute
	reportJobTimeout = 10 * time.Minute
)

type ServeCmd struct {
	migrations fs.FS
}

func NewServeCmd(migrations fs.FS) *ServeCmd {
	return &ServeCmd{migrations: migrations}
}

func (c *ServeCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run ingest and the weekly report on their cron schedules, plus the Discord bot when a token is set",
		RunE: withApp(c.migrations, func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireRiotKey(); err != nil {
				return err
			}

			jobs := []service.Job{{
				Name:    "ingest",
				Spec:    app.Config.IngestCron,
				Timeout: ingestJobTimeout,
				Run: func(ctx context.Context) error {
					_, err := app.Services.Ingest.Run(ctx)
					return err
				},
			}}
			if app.Config.HasNotifier() {
				jobs = append(jobs, service.Job{
					Name:    "weekly-report",
					Spec:    app.Config.ReportCron,
					Timeout: reportJobTimeout,
					Run: func(ctx context.Context) error {
						_, err := app.Services.Report.SendWeekly(ctx)
						app.Metrics.ObserveReport("weekly", err)
						return err
					},
				})
			} else {
				app.Log.Warn("no report sink configured, weekly report job disabled")
			}

			manager := service.NewManager(app.Log)
			manager.AddService(service.NewScheduler(app.Log.With("component", "cron"), jobs...))

			if app.Config.DiscordToken != "" {
				bot, err := discord.NewBot(discord.BotConfig{
					Token:        app.Config.DiscordToken,
					GuildID:      app.Config.DiscordGuildID,
					AdminUserIDs: app.Config.AdminUserIDs,
				}, app.Services, app.Tracking.QueueLabel, app.Log.With("component", "bot"))
				if err != nil {
					return err
				}
				manager.AddService(bot)
			}

			return manager.Run(ctx)
		}),
	}
}
