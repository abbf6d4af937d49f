package telegram

import (
	"context"
	"fmt"

	"riftstats/internal/application"
	"riftstats/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Publisher mirrors reports into a Telegram chat as plain HTML messages.
type Publisher struct {
	bot    sender
	chatID int64
	logger application.Logger
}

func NewPublisher(token string, chatID int64, logger application.Logger) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)
	return newPublisher(bot, chatID, logger), nil
}

func newPublisher(bot sender, chatID int64, logger application.Logger) *Publisher {
	return &Publisher{bot: bot, chatID: chatID, logger: logger}
}

func (p *Publisher) PublishWeeklyReport(ctx context.Context, r *models.WeeklyReport) error {
	return p.send(ctx, weeklyReportMessages(r))
}

func (p *Publisher) PublishHallOfShame(ctx context.Context, lines []models.GameLine, queueLabel func(int) string) error {
	return p.send(ctx, hallOfShameMessages(lines, queueLabel))
}

func (p *Publisher) send(ctx context.Context, texts []string) error {
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.sendMessage(text); err != nil {
			return fmt.Errorf("failed to send telegram message %d/%d: %w", i+1, len(texts), err)
		}
	}
	p.logger.Debug("sent %d telegram messages to chat %d", len(texts), p.chatID)
	return nil
}
