package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTracking = `
app:
  lookback_days: 7
  max_matches_per_player: 50
riot:
  regions:
    EUW1:
      routing: EUROPE
    NA1:
      routing: AMERICAS
  enabled_queues:
    solo:
      id: 420
      label: "Ranked Solo/Duo"
    flex:
      id: 440
      label: "Ranked Flex"
    aram:
      id: 450
      label: "ARAM"
    mayhem:
      id: 2400
      label: "Aram Mayhem"
    swiftplay:
      id: 480
      label: "Swiftplay"
      tags: [casual]
players:
  - riot_id: "Alpha#EUW"
    platform: EUW1
  - riot_id: "Bravo#NA1"
    platform: NA1
    overrides:
      enabled_queues:
        solo:
          id: 420
          label: "Ranked Solo/Duo"
`

func TestParseTracking(t *testing.T) {
	tr, err := ParseTracking([]byte(sampleTracking))
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, tr.Lookback())
	assert.Equal(t, 50, tr.MaxMatchesPerPlayer)
	assert.Equal(t, []int{420, 440}, tr.Categories.Ranked.IDs())
	assert.Equal(t, []int{450, 480, 2400}, tr.Categories.Casual.IDs())

	require.Len(t, tr.Players, 2)
	assert.Equal(t, "EUROPE", tr.Players[0].Routing)
	assert.Equal(t, []int{420, 440, 450, 480, 2400}, tr.Players[0].EnabledQueues.IDs())
	assert.Equal(t, "AMERICAS", tr.Players[1].Routing)
	assert.Equal(t, []int{420}, tr.Players[1].EnabledQueues.IDs())

	assert.Equal(t, "ARAM", tr.QueueLabel(450))
	assert.Equal(t, "queue 999", tr.QueueLabel(999))
}

func TestParseTracking_Defaults(t *testing.T) {
	tr, err := ParseTracking([]byte(`
riot:
  regions:
    EUW1: {routing: EUROPE}
  enabled_queues:
    solo: {id: 420, label: Ranked}
players:
  - riot_id: "Alpha#EUW"
    platform: EUW1
`))
	require.NoError(t, err)
	assert.Equal(t, defaultLookbackDays, tr.LookbackDays)
	assert.Equal(t, defaultMaxMatches, tr.MaxMatchesPerPlayer)
}

func TestParseTracking_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown platform": `
riot:
  regions: {EUW1: {routing: EUROPE}}
  enabled_queues: {solo: {id: 420, label: Ranked}}
players:
  - {riot_id: "Alpha#EUW", platform: KR}
`,
		"bad riot id": `
riot:
  regions: {EUW1: {routing: EUROPE}}
  enabled_queues: {solo: {id: 420, label: Ranked}}
players:
  - {riot_id: "Alpha", platform: EUW1}
`,
		"queue without id": `
riot:
  regions: {EUW1: {routing: EUROPE}}
  enabled_queues: {solo: {label: Ranked}}
players:
  - {riot_id: "Alpha#EUW", platform: EUW1}
`,
		"no players": `
riot:
  regions: {EUW1: {routing: EUROPE}}
  enabled_queues: {solo: {id: 420, label: Ranked}}
`,
		"unknown tag": `
riot:
  regions: {EUW1: {routing: EUROPE}}
  enabled_queues: {solo: {id: 420, label: Ranked, tags: [spicy]}}
players:
  - {riot_id: "Alpha#EUW", platform: EUW1}
`,
		"broken yaml": "riot: [",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTracking([]byte(doc))
			require.Error(t, err)
			var cerr *ConfigError
			assert.ErrorAs(t, err, &cerr)
		})
	}
}

func TestConfig_RequireRiotKey(t *testing.T) {
	cfg := &Config{}
	var cerr *ConfigError
	assert.ErrorAs(t, cfg.RequireRiotKey(), &cerr)

	cfg.RiotAPIKey = "key"
	assert.NoError(t, cfg.RequireRiotKey())
}
