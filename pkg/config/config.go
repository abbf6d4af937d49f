package config

import (
	"time"

	"riftstats/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo       repository.Config `envPrefix:"REPO_"`
	RiotAPIKey string            `env:"RIOT_API_KEY" envDefault:""`
	WebhookURL string            `env:"WEBHOOK_URL" envDefault:""`
	LogLevel   string            `env:"LOGGER_LEVEL" envDefault:"debug"`
	LogFormat  string            `env:"LOGGER_FORMAT" envDefault:"json"`

	TrackingConfig string `env:"TRACKING_CONFIG" envDefault:"config.yaml"`

	RiotTimeout     time.Duration `env:"RIOT_TIMEOUT" envDefault:"15s"`
	RiotMaxAttempts int           `env:"RIOT_MAX_ATTEMPTS" envDefault:"6"`

	IngestCron string `env:"INGEST_CRON" envDefault:"0 0 * * * *"`
	ReportCron string `env:"REPORT_CRON" envDefault:"0 0 18 * * SUN"`

	PushgatewayURL string `env:"PUSHGATEWAY_URL" envDefault:""`

	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:""`
	SpreadsheetID         string `env:"SPREADSHEET_ID" envDefault:""`
	GoogleOwnerEmail      string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`

	TelegramToken  string `env:"TELEGRAM_TOKEN" envDefault:""`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`

	DiscordToken   string   `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string   `env:"DISCORD_GUILD_ID" envDefault:""`
	AdminUserIDs   []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return &ConfigError{Field: "env", Err: err}
	}
	return nil
}

// RequireRiotKey is checked by commands that talk to the Riot API.
func (c *Config) RequireRiotKey() error {
	if c.RiotAPIKey == "" {
		return &ConfigError{Field: "RIOT_API_KEY", Msg: "not set"}
	}
	return nil
}

// HasNotifier reports whether any report sink is configured.
func (c *Config) HasNotifier() bool {
	return c.WebhookURL != "" || c.TelegramToken != ""
}

// RequireNotifier is checked by commands that publish reports.
func (c *Config) RequireNotifier() error {
	if !c.HasNotifier() {
		return &ConfigError{Field: "WEBHOOK_URL", Msg: "no report sink set (WEBHOOK_URL or TELEGRAM_TOKEN)"}
	}
	return nil
}
