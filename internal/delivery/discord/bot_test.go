package discord

import (
	"testing"

	"riftstats/internal/application"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBot_Commands(t *testing.T) {
	b, err := NewBot(BotConfig{Token: "token", AdminUserIDs: []string{" 42 ", "", "7"}},
		&application.Service{}, func(int) string { return "q" }, testLogger())
	require.NoError(t, err)

	names := make([]string, 0, len(b.commands))
	for _, c := range b.commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{cmdTop, cmdProfile, cmdRecords, cmdShame, cmdExport, cmdSyncSheet, cmdIngest}, names)

	assert.True(t, b.isAdmin("42"))
	assert.True(t, b.isAdmin("7"))
	assert.False(t, b.isAdmin(""))
	assert.False(t, b.isAdmin("8"))
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "1"}}}
	dm := &discordgo.Interaction{User: &discordgo.User{ID: "2"}}

	assert.Equal(t, "1", interactionUserID(guild))
	assert.Equal(t, "2", interactionUserID(dm))
	assert.Equal(t, "", interactionUserID(&discordgo.Interaction{}))
}
