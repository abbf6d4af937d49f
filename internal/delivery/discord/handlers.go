package discord

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	queryTimeout  = 30 * time.Second
	ingestTimeout = 15 * time.Minute
)

func (b *Bot) handleTop(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := context.WithTimeout(b.ctx, queryTimeout)
	defer cancel()

	report, err := b.services.Report.PreviewWeekly(ctx)
	if err != nil {
		b.logger.Error("top: %v", err)
		b.respondMessage(s, i, "Error: "+err.Error(), true)
		return
	}
	b.respondEmbeds(s, i, LeaderboardEmbed(report.Leaderboard, report.LookbackDays))
}

func (b *Bot) handleProfile(s *discordgo.Session, i *discordgo.Interaction) {
	riotID := strings.TrimSpace(i.ApplicationCommandData().Options[0].StringValue())

	ctx, cancel := context.WithTimeout(b.ctx, queryTimeout)
	defer cancel()

	report, err := b.services.Report.PreviewWeekly(ctx)
	if err != nil {
		b.logger.Error("profile: %v", err)
		b.respondMessage(s, i, "Error: "+err.Error(), true)
		return
	}

	for _, p := range report.Players {
		if strings.EqualFold(p.RiotID, riotID) {
			b.respondEmbeds(s, i, PlayerEmbed(p, report.LookbackDays))
			return
		}
	}
	b.respondMessage(s, i, fmt.Sprintf("Player %s is not tracked.", riotID), true)
}

func (b *Bot) handleRecords(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := context.WithTimeout(b.ctx, queryTimeout)
	defer cancel()

	records, err := b.services.Records.GetAll(ctx)
	if err != nil {
		b.logger.Error("records: %v", err)
		b.respondMessage(s, i, "Error: "+err.Error(), true)
		return
	}
	b.respondEmbeds(s, i, RecordsEmbed(records))
}

func (b *Bot) handleShame(s *discordgo.Session, i *discordgo.Interaction) {
	ctx, cancel := context.WithTimeout(b.ctx, queryTimeout)
	defer cancel()

	lines, err := b.services.Report.HallOfShame(ctx)
	if err != nil {
		b.logger.Error("shame: %v", err)
		b.respondMessage(s, i, "Error: "+err.Error(), true)
		return
	}
	b.respondEmbeds(s, i, HallOfShameEmbeds(lines, b.queueLabel)...)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	ctx, cancel := context.WithTimeout(b.ctx, queryTimeout)
	defer cancel()

	data, err := b.services.Export.GetExcelReport(ctx)
	if err != nil {
		b.logger.Error("export error: %v", err)
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{"Export failed: " + err.Error()}[0],
		})
		return
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &[]string{"Your report is ready."}[0],
		Files: []*discordgo.File{
			{Name: "leaderboard.xlsx", Reader: bytes.NewReader(data)},
		},
	})
}

func (b *Bot) handleSyncSheet(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	ctx, cancel := context.WithTimeout(b.ctx, queryTimeout)
	defer cancel()

	url, err := b.services.Export.SyncToGoogleSheet(ctx)
	if err != nil {
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{"Sync failed: " + err.Error()}[0],
		})
		return
	}

	b.editResponse(s, i, &discordgo.WebhookEdit{
		Content: &[]string{fmt.Sprintf("Sheet updated.\nLink: %s", url)}[0],
	})
}

func (b *Bot) handleIngest(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i)

	ctx, cancel := context.WithTimeout(b.ctx, ingestTimeout)
	defer cancel()

	res, err := b.services.Ingest.Run(ctx)
	if err != nil {
		b.editResponse(s, i, &discordgo.WebhookEdit{
			Content: &[]string{"Ingest failed: " + err.Error()}[0],
		})
		return
	}

	msg := fmt.Sprintf("Ingest done: %d new matches, %d new player rows, %d skipped by queue, %d failed players.",
		res.NewMatches, res.NewPlayerRows, res.SkippedByQueue, res.FailedPlayers)
	b.editResponse(s, i, &discordgo.WebhookEdit{Content: &msg})
}
