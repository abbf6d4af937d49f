package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"riftstats/internal/models"
	"riftstats/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent   []tgbotapi.MessageConfig
	failAt int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, fmt.Errorf("unexpected chattable %T", c)
	}
	if f.failAt > 0 && len(f.sent)+1 == f.failAt {
		return tgbotapi.Message{}, errors.New("bad gateway")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: "error", Output: io.Discard})
}

func sampleReport() *models.WeeklyReport {
	alice := models.PlayerReport{RiotID: "Alice<3#EUW", Games: 4, Wins: 3, WinRate: 75, KDA: 4.5, CSPerMin: 7.2}
	prev := 3.0
	return &models.WeeklyReport{
		Start:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		LookbackDays: 7,
		Players:      []models.PlayerReport{alice},
		Leaderboard:  []models.PlayerReport{alice},
		Awards: models.Awards{
			BestKDA: &alice,
			WorstGame: &models.GameLine{
				RiotID: "Alice<3#EUW", Champion: "Ahri", Kills: 0, Deaths: 9, Assists: 1,
				QueueID: 420, StartTS: time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC).Unix(),
			},
		},
		Records: []models.RecordUpdate{
			{Key: "most_kills_game", Label: "Most kills in a game", Value: 21, Previous: &prev, Meta: models.RecordMeta{RiotID: "Alice<3#EUW"}},
		},
		QueueLabels: map[int]string{420: "Ranked Solo"},
	}
}

func TestPublishWeeklyReport(t *testing.T) {
	fs := &fakeSender{}
	p := newPublisher(fs, -100123, testLogger())

	require.NoError(t, p.PublishWeeklyReport(context.Background(), sampleReport()))
	require.Len(t, fs.sent, 1)

	msg := fs.sent[0]
	assert.Equal(t, int64(-100123), msg.ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Contains(t, msg.Text, "2024-03-01 to 2024-03-08")
	assert.Contains(t, msg.Text, "Player of the Week: <b>Alice&lt;3#EUW</b> KDA 4.50")
	assert.Contains(t, msg.Text, "Best Farmer: nobody qualified")
	assert.Contains(t, msg.Text, "Worst Game: <b>Alice&lt;3#EUW</b> Ahri 0/9/1 (L) KDA 0.00, Ranked Solo, 2024-03-02")
	assert.Contains(t, msg.Text, "1. <b>Alice&lt;3#EUW</b> 75% WR, KDA 4.50 (4 games)")
	assert.Contains(t, msg.Text, "Most kills in a game: 21.00 by <b>Alice&lt;3#EUW</b> (was 3.00)")
}

func TestPublishHallOfShame(t *testing.T) {
	fs := &fakeSender{}
	p := newPublisher(fs, 1, testLogger())
	label := func(int) string { return "Ranked Flex" }

	require.NoError(t, p.PublishHallOfShame(context.Background(), nil, label))
	require.Len(t, fs.sent, 1)
	assert.Contains(t, fs.sent[0].Text, "Nobody has disgraced themselves yet.")

	lines := make([]models.GameLine, 200)
	for i := range lines {
		lines[i] = models.GameLine{RiotID: fmt.Sprintf("Player%03d#EUW", i), Champion: "Teemo", Deaths: 10}
	}
	require.NoError(t, p.PublishHallOfShame(context.Background(), lines, label))
	require.Greater(t, len(fs.sent), 2, "long lists split across messages")

	var all strings.Builder
	for _, m := range fs.sent[1:] {
		assert.LessOrEqual(t, utf8.RuneCountInString(m.Text), maxMessageLength)
		all.WriteString(m.Text)
		all.WriteString("\n")
	}
	assert.Contains(t, all.String(), "1. <b>Player000#EUW</b>")
	assert.Contains(t, all.String(), "200. <b>Player199#EUW</b>")
}

func TestPublishStopsOnFailure(t *testing.T) {
	fs := &fakeSender{failAt: 2}
	p := newPublisher(fs, 1, testLogger())

	lines := make([]models.GameLine, 200)
	for i := range lines {
		lines[i] = models.GameLine{RiotID: fmt.Sprintf("Player%03d#EUW", i), Champion: "Teemo"}
	}
	err := p.PublishHallOfShame(context.Background(), lines, func(int) string { return "q" })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad gateway")
	assert.Len(t, fs.sent, 1)
}

func TestPublishCanceled(t *testing.T) {
	fs := &fakeSender{}
	p := newPublisher(fs, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.PublishWeeklyReport(ctx, sampleReport()), context.Canceled)
	assert.Empty(t, fs.sent)
}

func TestPack(t *testing.T) {
	assert.Equal(t, []string{"a\n\nb"}, pack([]string{"a", "b"}))

	big := strings.Repeat("x", maxMessageLength-2)
	out := pack([]string{"head", big, "tail"})
	require.Len(t, out, 3)
	assert.Equal(t, "head", out[0])
	assert.Equal(t, "tail", out[2])

	huge := strings.Repeat("y", maxMessageLength) + "\n" + strings.Repeat("z", 10)
	out = pack([]string{huge})
	require.Len(t, out, 2)
	assert.Equal(t, strings.Repeat("z", 10), out[1])
}
