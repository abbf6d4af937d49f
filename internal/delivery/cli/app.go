package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"riftstats/internal/application"
	"riftstats/internal/delivery/discord"
	"riftstats/internal/delivery/telegram"
	"riftstats/internal/metrics"
	"riftstats/internal/repository"
	"riftstats/pkg/config"
	"riftstats/pkg/logger"
	"riftstats/pkg/riot"
	"riftstats/pkg/sheets"

	"github.com/jonboulle/clockwork"
)

// App is everything a command needs, wired once per invocation.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	DB       *sql.DB
	Repos    *repository.Repository
	Tracking *config.Tracking
	Services *application.Service
	Metrics  *metrics.Recorder
	Clock    clockwork.Clock
}

func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger, migrations fs.FS) (*App, error) {
	tracking, err := config.LoadTracking(cfg.TrackingConfig)
	if err != nil {
		return nil, err
	}

	db, err := repository.NewPostgresDB(&cfg.Repo)
	if err != nil {
		return nil, fmt.Errorf("failed to init db: %w", err)
	}

	log.Debug("running migrations")
	if err := repository.RunMigrations(db, migrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	clock := clockwork.NewRealClock()
	recorder := metrics.NewRecorder(cfg.PushgatewayURL, clock, log.With("component", "metrics"))

	deps := application.Deps{
		Repos:    repository.NewRepository(db),
		Tracking: tracking,
		Riot: riot.NewHTTPClient(riot.Opts{
			APIKey:      cfg.RiotAPIKey,
			Timeout:     cfg.RiotTimeout,
			MaxAttempts: cfg.RiotMaxAttempts,
			Logger:      log.With("component", "riot"),
		}),
		SpreadsheetID: cfg.SpreadsheetID,
		OwnerEmail:    cfg.GoogleOwnerEmail,
		Clock:         clock,
		Metrics:       recorder,
		Logger:        log,
	}

	var sinks application.Notifiers
	if cfg.WebhookURL != "" {
		pub, err := discord.NewPublisher(cfg.WebhookURL, log.With("component", "discord"))
		if err != nil {
			db.Close()
			return nil, &config.ConfigError{Field: "WEBHOOK_URL", Err: err}
		}
		sinks = append(sinks, pub)
	}
	if cfg.TelegramToken != "" {
		if cfg.TelegramChatID == 0 {
			db.Close()
			return nil, &config.ConfigError{Field: "TELEGRAM_CHAT_ID", Msg: "required with TELEGRAM_TOKEN"}
		}
		pub, err := telegram.NewPublisher(cfg.TelegramToken, cfg.TelegramChatID, log.With("component", "telegram"))
		if err != nil {
			db.Close()
			return nil, &config.ConfigError{Field: "TELEGRAM_TOKEN", Err: err}
		}
		sinks = append(sinks, pub)
	}
	switch len(sinks) {
	case 0:
	case 1:
		deps.Notifier = sinks[0]
	default:
		deps.Notifier = sinks
	}

	// Left nil unless configured so the export service sees a nil interface.
	if cfg.GoogleCredentialsFile != "" {
		sc, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to init google sheets: %w", err)
		}
		deps.Sheets = sc
	}

	return &App{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Repos:    deps.Repos,
		Tracking: tracking,
		Services: application.NewService(deps),
		Metrics:  recorder,
		Clock:    clock,
	}, nil
}

func (a *App) Close() {
	if err := a.DB.Close(); err != nil {
		a.Log.Warn("failed to close db: %v", err)
	}
}
