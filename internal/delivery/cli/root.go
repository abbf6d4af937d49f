package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os/signal"
	"syscall"

	"riftstats/pkg/config"
	"riftstats/pkg/logger"

	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

// Run builds the command tree and executes it against os.Args.
func Run(migrations fs.FS) ExitCode {
	rootCmd := NewRootCmd(migrations)
	if err := rootCmd.Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

func NewRootCmd(migrations fs.FS) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "riftstats",
		Short:        "Ingest League of Legends match history and publish weekly stats to Discord or Telegram.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")
	rootCmd.PersistentFlags().String("config", "", "tracking config file (env: TRACKING_CONFIG)")
	rootCmd.PersistentFlags().String("log-format", "", "json or text (env: LOGGER_FORMAT)")

	rootCmd.AddCommand(
		NewIngestCmd(migrations).Command(),
		NewSyncPlayersCmd(migrations).Command(),
		NewReportCmd(migrations).Command(),
		NewHallOfShameCmd(migrations).Command(),
		NewBackfillDeadTimeCmd(migrations).Command(),
		NewResetCursorsCmd(migrations).Command(),
		NewStatusCmd(migrations).Command(),
		NewExportCmd(migrations).Command(),
		NewMigrateCmd(migrations).Command(),
		NewServeCmd(migrations).Command(),
	)
	return rootCmd
}

// setup reads the env config and applies the root flag overrides.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg := &config.Config{}
	if err := config.ReadEnvConfig(cfg); err != nil {
		return nil, nil, err
	}

	flags := cmd.Root().PersistentFlags()
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if path, _ := flags.GetString("config"); path != "" {
		cfg.TrackingConfig = path
	}
	if format, _ := flags.GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
	return cfg, log, nil
}

// withApp wires the full application for a command and tears it down after.
func withApp(migrations fs.FS, f func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}

		app, err := NewApp(ctx, cfg, log, migrations)
		if err != nil {
			log.Error("failed to init app: %v", err)
			return err
		}
		defer app.Close()

		if err := f(ctx, app, cmd, args); err != nil {
			log.Error("failed to run %s: %v", cmd.Name(), err)
			return err
		}
		return nil
	}
}
