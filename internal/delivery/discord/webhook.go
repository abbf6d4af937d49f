package discord

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"riftstats/internal/application"
	"riftstats/internal/models"

	"github.com/bwmarrin/discordgo"
)

// webhookExecutor is the part of *discordgo.Session the publisher needs.
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Publisher posts reports to a Discord webhook.
type Publisher struct {
	exec     webhookExecutor
	id       string
	token    string
	username string
	logger   application.Logger
}

// NewPublisher builds a publisher from a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}.
func NewPublisher(webhookURL string, logger application.Logger) (*Publisher, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// Webhook calls carry their own token, no bot auth needed.
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return newPublisher(s, id, token, logger), nil
}

func newPublisher(exec webhookExecutor, id, token string, logger application.Logger) *Publisher {
	return &Publisher{
		exec:     exec,
		id:       id,
		token:    token,
		username: footerText,
		logger:   logger,
	}
}

func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("invalid webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("invalid webhook url: expected .../webhooks/{id}/{token}")
}

func (p *Publisher) PublishWeeklyReport(ctx context.Context, report *models.WeeklyReport) error {
	if err := p.send(ctx, WeeklyReportEmbeds(report)); err != nil {
		return err
	}
	p.logger.Info("weekly report published")
	return nil
}

func (p *Publisher) PublishHallOfShame(ctx context.Context, lines []models.GameLine, queueLabel func(int) string) error {
	if err := p.send(ctx, HallOfShameEmbeds(lines, queueLabel)); err != nil {
		return err
	}
	p.logger.Info("hall of shame published: %d entries", len(lines))
	return nil
}

// send posts embeds in order, batched by embed count and total embed text.
func (p *Publisher) send(ctx context.Context, embeds []*discordgo.MessageEmbed) error {
	sent := 0
	for _, batch := range batchEmbeds(embeds, maxEmbedsPerMessage, maxEmbedTextPerMsg) {
		if err := ctx.Err(); err != nil {
			return err
		}
		params := &discordgo.WebhookParams{
			Username: p.username,
			Embeds:   batch,
		}
		if _, err := p.exec.WebhookExecute(p.id, p.token, true, params, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to execute webhook (embeds %d-%d): %w", sent+1, sent+len(batch), err)
		}
		sent += len(batch)
		p.logger.Debug("webhook batch sent: embeds %d of %d", sent, len(embeds))
	}
	return nil
}
