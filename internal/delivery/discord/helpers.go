package discord

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"riftstats/internal/models"

	"github.com/bwmarrin/discordgo"
)

func getColorByWinRate(winRate float64) int {
	switch {
	case winRate >= winRateExcellent:
		return colorPurple
	case winRate >= winRateGood:
		return colorGreen
	case winRate < winRatePoor:
		return colorRed
	default:
		return colorGray
	}
}

func getMedalEmoji(position int) string {
	switch position {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "▪️"
	}
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

var roleNames = map[string]string{
	"TOP":     "Top",
	"JUNGLE":  "Jungle",
	"MIDDLE":  "Mid",
	"BOTTOM":  "ADC",
	"UTILITY": "Support",
}

func roleName(position string) string {
	if name, ok := roleNames[position]; ok {
		return name
	}
	return valueOrDefault(position, "-")
}

func kdaLine(k, d, a int) string {
	return fmt.Sprintf("%d/%d/%d", k, d, a)
}

func resultMark(win bool) string {
	if win {
		return "W"
	}
	return "L"
}

func formatDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(dateLayout)
}

func formatMinutes(seconds float64) string {
	return fmt.Sprintf("%.1f min", seconds/60)
}

// chunkEntries packs entries into blocks no longer than limit, breaking only
// between entries. A single entry over the limit is cut.
func chunkEntries(entries []string, sep string, limit int) []string {
	var chunks []string
	var sb strings.Builder
	for _, e := range entries {
		if len(e) > limit {
			e = truncate(e, limit)
		}
		if sb.Len() > 0 && sb.Len()+len(sep)+len(e) > limit {
			chunks = append(chunks, sb.String())
			sb.Reset()
		}
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(e)
	}
	if sb.Len() > 0 {
		chunks = append(chunks, sb.String())
	}
	return chunks
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - len("...")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// embedTextLength counts the embed text Discord caps per message.
func embedTextLength(e *discordgo.MessageEmbed) int {
	n := len(e.Title) + len(e.Description)
	if e.Footer != nil {
		n += len(e.Footer.Text)
	}
	if e.Author != nil {
		n += len(e.Author.Name)
	}
	for _, f := range e.Fields {
		n += len(f.Name) + len(f.Value)
	}
	return n
}

// batchEmbeds splits embeds into consecutive batches of at most maxCount
// embeds and maxText total text. An embed over maxText goes out alone.
func batchEmbeds(embeds []*discordgo.MessageEmbed, maxCount, maxText int) [][]*discordgo.MessageEmbed {
	var batches [][]*discordgo.MessageEmbed
	start, text := 0, 0
	for i, e := range embeds {
		n := embedTextLength(e)
		if i > start && (i-start == maxCount || text+n > maxText) {
			batches = append(batches, embeds[start:i])
			start, text = i, 0
		}
		text += n
	}
	if start < len(embeds) {
		batches = append(batches, embeds[start:])
	}
	return batches
}

func gameLineText(l models.GameLine, queueLabel func(int) string) string {
	return fmt.Sprintf("**%s** %s %s (%s) KDA %.2f • %s • %s",
		l.RiotID, valueOrDefault(l.Champion, "?"), kdaLine(l.Kills, l.Deaths, l.Assists),
		resultMark(l.Win), l.KDA, queueLabel(l.QueueID), formatDate(l.StartTS))
}
