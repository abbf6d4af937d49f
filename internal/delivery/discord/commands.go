package discord

import "github.com/bwmarrin/discordgo"

const (
	cmdTop       = "top"
	cmdProfile   = "profile"
	cmdRecords   = "records"
	cmdShame     = "shame"
	cmdExport    = "export"
	cmdSyncSheet = "sync_sheet"
	cmdIngest    = "ingest"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func (b *Bot) newTopCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdTop,
		Description: "Leaderboard for the current window",
	}
}

func (b *Bot) newProfileCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdProfile,
		Description: "Window stats of a tracked player",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "riot_id", Description: "Name#TAG", Required: true},
		},
	}
}

func (b *Bot) newRecordsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdRecords,
		Description: "All-time records",
	}
}

func (b *Bot) newShameCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdShame,
		Description: "Worst stored game of every player",
	}
}

func (b *Bot) newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdExport,
		Description: "Export the leaderboard to Excel (admins only)",
	}
}

func (b *Bot) newSyncSheetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdSyncSheet,
		Description: "Sync the leaderboard to Google Sheets (admins only)",
	}
}

func (b *Bot) newIngestCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        cmdIngest,
		Description: "Run an ingest pass now (admins only)",
	}
}
