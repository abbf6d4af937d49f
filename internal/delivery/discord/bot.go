package discord

import (
	"context"
	"fmt"
	"strings"

	"riftstats/internal/application"

	"github.com/bwmarrin/discordgo"
)

// Bot answers slash commands with views over the stored stats. It never
// ingests on its own unless an admin asks for it.
type Bot struct {
	session    *discordgo.Session
	services   *application.Service
	queueLabel func(int) string
	logger     application.Logger

	ctx      context.Context
	guildID  string
	adminIDs map[string]struct{}
	commands []*discordgo.ApplicationCommand
}

type BotConfig struct {
	Token        string
	GuildID      string
	AdminUserIDs []string
}

func NewBot(cfg BotConfig, services *application.Service, queueLabel func(int) string, logger application.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	b := &Bot{
		session:    s,
		services:   services,
		queueLabel: queueLabel,
		logger:     logger,
		ctx:        context.Background(),
		guildID:    cfg.GuildID,
		adminIDs:   admins,
	}
	b.addCommands(
		b.newTopCommand(),
		b.newProfileCommand(),
		b.newRecordsCommand(),
		b.newShameCommand(),
		b.newExportCommand(),
		b.newSyncSheetCommand(),
		b.newIngestCommand(),
	)
	return b, nil
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	b.ctx = ctx
	if err := b.session.Open(); err != nil {
		b.logger.Error("failed to open discord session: %v", err)
		return
	}

	b.logger.Info("discord bot started, registering slash commands")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, b.commands)
	if err != nil {
		b.logger.Error("failed to register commands: %v", err)
	} else {
		b.logger.Info("%d slash commands registered", len(b.commands))
	}
}

func (b *Bot) Stop() {
	if err := b.session.Close(); err != nil {
		b.logger.Warn("failed to close discord session: %v", err)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case cmdTop:
		b.handleTop(s, i.Interaction)
	case cmdProfile:
		b.handleProfile(s, i.Interaction)
	case cmdRecords:
		b.handleRecords(s, i.Interaction)
	case cmdShame:
		b.handleShame(s, i.Interaction)
	case cmdExport:
		b.ensureAdmin(s, i.Interaction, b.handleExport)
	case cmdSyncSheet:
		b.ensureAdmin(s, i.Interaction, b.handleSyncSheet)
	case cmdIngest:
		b.ensureAdmin(s, i.Interaction, b.handleIngest)
	}
}
