package telegram

import (
	"html"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages over 4096 characters.
const maxMessageLength = 4000

func (p *Publisher) sendMessage(text string) error {
	if text == "" {
		return nil
	}
	msg := tgbotapi.NewMessage(p.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	_, err := p.bot.Send(msg)
	return err
}

func esc(s string) string {
	return html.EscapeString(s)
}

// pack joins sections into as few messages as fit the length limit. A section
// never spans two messages unless it is too long on its own.
func pack(sections []string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, s := range sections {
		n := utf8.RuneCountInString(s)
		if n > maxMessageLength {
			flush()
			out = append(out, splitLines(s)...)
			continue
		}
		if cur.Len() > 0 && utf8.RuneCountInString(cur.String())+2+n > maxMessageLength {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(s)
	}
	flush()
	return out
}

// splitLines breaks an oversize section on line boundaries.
func splitLines(s string) []string {
	var (
		out  []string
		cur  strings.Builder
		size int
	)
	for _, line := range strings.Split(s, "\n") {
		n := utf8.RuneCountInString(line)
		if size > 0 && size+1+n > maxMessageLength {
			out = append(out, cur.String())
			cur.Reset()
			size = 0
		}
		if size > 0 {
			cur.WriteByte('\n')
			size++
		}
		if n > maxMessageLength {
			line = string([]rune(line)[:maxMessageLength])
			n = maxMessageLength
		}
		cur.WriteString(line)
		size += n
	}
	if size > 0 {
		out = append(out, cur.String())
	}
	return out
}
