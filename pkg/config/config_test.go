package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEnvConfig(t *testing.T) {
	t.Setenv("REPO_DB_HOST", "db")
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("RIOT_TIMEOUT", "5s")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("ADMIN_USER_IDS", "1,2")

	var cfg Config
	require.NoError(t, ReadEnvConfig(&cfg))

	assert.Equal(t, "db", cfg.Repo.Host)
	assert.Equal(t, 5*time.Second, cfg.RiotTimeout)
	assert.Equal(t, 6, cfg.RiotMaxAttempts)
	assert.Equal(t, "0 0 * * * *", cfg.IngestCron)
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
	assert.Equal(t, []string{"1", "2"}, cfg.AdminUserIDs)
	assert.NoError(t, cfg.RequireRiotKey())
}

func TestReadEnvConfig_Malformed(t *testing.T) {
	t.Setenv("RIOT_MAX_ATTEMPTS", "many")

	var cfg Config
	err := ReadEnvConfig(&cfg)
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "env", cerr.Field)
}

func TestRequireNotifier(t *testing.T) {
	var cfg Config
	assert.False(t, cfg.HasNotifier())
	assert.Error(t, cfg.RequireNotifier())
	assert.Error(t, cfg.RequireRiotKey())

	cfg.TelegramToken = "123:abc"
	assert.NoError(t, cfg.RequireNotifier())

	cfg = Config{WebhookURL: "https://discord.com/api/webhooks/1/t"}
	assert.True(t, cfg.HasNotifier())
}
