package discord

import (
	"encoding/json"
	"fmt"
	"strings"

	"riftstats/internal/application"
	"riftstats/internal/models"

	"github.com/bwmarrin/discordgo"
)

// WeeklyReportEmbeds renders the report as intro, awards, leaderboard, player
// stats (split across as many embeds as needed) and broken records.
func WeeklyReportEmbeds(r *models.WeeklyReport) []*discordgo.MessageEmbed {
	embeds := []*discordgo.MessageEmbed{
		introEmbed(r),
		awardsEmbed(r),
		LeaderboardEmbed(r.Leaderboard, r.LookbackDays),
	}
	embeds = append(embeds, playerEmbeds(r)...)
	if len(r.Records) > 0 {
		embeds = append(embeds, brokenRecordsEmbed(r.Records))
	}
	return embeds
}

func introEmbed(r *models.WeeklyReport) *discordgo.MessageEmbed {
	games := 0
	active := 0
	for _, p := range r.Players {
		games += p.Games
		if p.Games > 0 {
			active++
		}
	}
	return &discordgo.MessageEmbed{
		Title: "Weekly Stats",
		Description: fmt.Sprintf("Window **%s** to **%s**\n%d of %d players played %d ranked games.",
			r.Start.UTC().Format(dateLayout), r.End.UTC().Format(dateLayout), active, len(r.Players), games),
		Color: colorGold,
	}
}

func awardsEmbed(r *models.WeeklyReport) *discordgo.MessageEmbed {
	a := r.Awards
	label := queueLabeler(r.QueueLabels)

	fields := []*discordgo.MessageEmbedField{
		playerAward("Player of the Week", a.BestKDA, func(p *models.PlayerReport) string {
			return fmt.Sprintf("KDA **%.2f** over %d games", p.KDA, p.Games)
		}),
		playerAward("Lowest KDA", a.WorstKDA, func(p *models.PlayerReport) string {
			return fmt.Sprintf("KDA **%.2f** over %d games", p.KDA, p.Games)
		}),
		playerAward("Best Farmer", a.BestCS, func(p *models.PlayerReport) string {
			return fmt.Sprintf("**%.2f** CS/min", p.CSPerMin)
		}),
		playerAward("Worst Farmer", a.WorstCS, func(p *models.PlayerReport) string {
			return fmt.Sprintf("**%.2f** CS/min", p.CSPerMin)
		}),
		playerAward("Casual Warrior", a.MostCasual, func(p *models.PlayerReport) string {
			return fmt.Sprintf("**%d** casual games", p.CasualGames)
		}),
		playerAward("Grey Screen Enjoyer", a.MostDeadTime, func(p *models.PlayerReport) string {
			return fmt.Sprintf("**%s** dead per game", formatMinutes(p.AvgDeadS))
		}),
		gameAward("Worst Game", a.WorstGame, label),
		gameAward("Best Impact Game", a.BestImpact, label),
	}

	return &discordgo.MessageEmbed{
		Title:  "Awards",
		Color:  colorPurple,
		Fields: fields,
	}
}

func playerAward(name string, p *models.PlayerReport, detail func(*models.PlayerReport) string) *discordgo.MessageEmbedField {
	value := "Nobody qualified"
	if p != nil {
		value = fmt.Sprintf("**%s**: %s", p.RiotID, detail(p))
	}
	return &discordgo.MessageEmbedField{Name: name, Value: value}
}

func gameAward(name string, l *models.GameLine, label func(int) string) *discordgo.MessageEmbedField {
	value := "Nobody qualified"
	if l != nil {
		value = gameLineText(*l, label)
		if name == "Best Impact Game" {
			value += fmt.Sprintf(" • impact **%.1f**", l.Impact)
		}
	}
	return &discordgo.MessageEmbedField{Name: name, Value: value}
}

// LeaderboardEmbed lists the top players in the order given.
func LeaderboardEmbed(board []models.PlayerReport, lookbackDays int) *discordgo.MessageEmbed {
	if len(board) > topPlayersLimit {
		board = board[:topPlayersLimit]
	}

	var sb strings.Builder
	for idx, p := range board {
		sb.WriteString(fmt.Sprintf("%s **%s** WR: `%.0f%%` | KDA: `%.2f` (%d games)\n",
			getMedalEmoji(idx), p.RiotID, p.WinRate, p.KDA, p.Games))
	}
	desc := sb.String()
	if desc == "" {
		desc = "Nobody has enough games yet."
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Leaderboard (last %d days)", lookbackDays),
		Description: desc,
		Color:       colorGold,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func playerEmbeds(r *models.WeeklyReport) []*discordgo.MessageEmbed {
	blocks := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		blocks = append(blocks, playerBlock(p, r.LookbackDays))
	}

	chunks := chunkEntries(blocks, "\n\n", maxDescriptionLength)
	embeds := make([]*discordgo.MessageEmbed, 0, len(chunks))
	for i, c := range chunks {
		title := "Player Stats"
		if len(chunks) > 1 {
			title = fmt.Sprintf("Player Stats (%d/%d)", i+1, len(chunks))
		}
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       title,
			Description: c,
			Color:       colorBlue,
		})
	}
	return embeds
}

func playerBlock(p models.PlayerReport, lookbackDays int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("__**%s**__\n", p.RiotID))
	if p.Games == 0 {
		sb.WriteString(fmt.Sprintf("0 ranked games in the last %d days", lookbackDays))
		if p.CasualGames > 0 {
			sb.WriteString(fmt.Sprintf("\nCasual games: %d", p.CasualGames))
		}
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Most played role: **%s**\n", roleName(p.MainRole)))
	sb.WriteString(fmt.Sprintf("**%d games** • **%dW** • **%.1f%% WR**\n", p.Games, p.Wins, p.WinRate))
	sb.WriteString(fmt.Sprintf("Avg: **%.1f/%.1f/%.1f** • KDA **%.2f**\n", p.AvgK, p.AvgD, p.AvgA, p.KDA))
	if p.IsSupport {
		sb.WriteString("CS/min: support\n")
	} else if p.CSGames > 0 {
		sb.WriteString(fmt.Sprintf("CS/min: **%.2f**\n", p.CSPerMin))
	}
	if len(p.TopChampions) > 0 {
		champs := make([]string, 0, topChampionsShown)
		for i, c := range p.TopChampions {
			if i == topChampionsShown {
				break
			}
			champs = append(champs, fmt.Sprintf("%s: %dg (%.0f%% WR)", c.Name, c.Games, c.WinRate))
		}
		sb.WriteString("Top champs: " + strings.Join(champs, ", ") + "\n")
	}
	if p.DeadGames > 0 {
		sb.WriteString(fmt.Sprintf("Time dead: **%s/game**, **%s** total over %d games\n",
			formatMinutes(p.AvgDeadS), formatMinutes(float64(p.TotalDeadS)), p.DeadGames))
	}
	if p.CasualGames > 0 {
		sb.WriteString(fmt.Sprintf("Casual games: %d\n", p.CasualGames))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// PlayerEmbed is the single-player card used by the bot's /profile command.
func PlayerEmbed(p models.PlayerReport, lookbackDays int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Profile: %s", p.RiotID),
		Description: truncate(playerBlock(p, lookbackDays), maxDescriptionLength),
		Color:       getColorByWinRate(p.WinRate),
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Last %d days", lookbackDays)},
	}
}

func brokenRecordsEmbed(updates []models.RecordUpdate) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(updates))
	for _, u := range updates {
		line := fmt.Sprintf("**%s**: %s by **%s**", u.Label, formatRecordValue(u.Value), valueOrDefault(u.Meta.RiotID, "?"))
		if u.Meta.Champion != "" {
			line += fmt.Sprintf(" on %s", u.Meta.Champion)
		}
		if u.Previous != nil {
			line += fmt.Sprintf(" (was %s)", formatRecordValue(*u.Previous))
		} else {
			line += " (first entry)"
		}
		lines = append(lines, line)
	}
	return &discordgo.MessageEmbed{
		Title:       "Records Broken",
		Description: truncate(strings.Join(lines, "\n"), maxDescriptionLength),
		Color:       colorPurple,
	}
}

// RecordsEmbed lists the all-time records as stored.
func RecordsEmbed(records []models.Record) *discordgo.MessageEmbed {
	if len(records) == 0 {
		return &discordgo.MessageEmbed{Title: "All-time Records", Description: "No records yet.", Color: colorGray}
	}

	lines := make([]string, 0, len(records))
	for _, rec := range records {
		var meta models.RecordMeta
		if len(rec.Meta) > 0 {
			_ = json.Unmarshal(rec.Meta, &meta)
		}
		line := fmt.Sprintf("**%s**: %s", application.RecordLabel(rec.Key), formatRecordValue(rec.Value))
		if meta.RiotID != "" {
			line += " by " + meta.RiotID
		}
		if meta.Champion != "" {
			line += " on " + meta.Champion
		}
		if meta.Window != "" {
			line += " (" + meta.Window + ")"
		}
		lines = append(lines, line)
	}
	return &discordgo.MessageEmbed{
		Title:       "All-time Records",
		Description: truncate(strings.Join(lines, "\n"), maxDescriptionLength),
		Color:       colorPurple,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func formatRecordValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// HallOfShameEmbeds renders each player's worst stored game, worst first.
func HallOfShameEmbeds(lines []models.GameLine, queueLabel func(int) string) []*discordgo.MessageEmbed {
	if len(lines) == 0 {
		return []*discordgo.MessageEmbed{{
			Title:       "Hall of Shame",
			Description: "Nobody has disgraced themselves yet.",
			Color:       colorGray,
		}}
	}

	entries := make([]string, 0, len(lines))
	for i, l := range lines {
		entries = append(entries, fmt.Sprintf("%d. %s", i+1, gameLineText(l, queueLabel)))
	}

	chunks := chunkEntries(entries, "\n", maxDescriptionLength)
	embeds := make([]*discordgo.MessageEmbed, 0, len(chunks))
	for i, c := range chunks {
		title := "Hall of Shame"
		if len(chunks) > 1 {
			title = fmt.Sprintf("Hall of Shame (%d/%d)", i+1, len(chunks))
		}
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       title,
			Description: c,
			Color:       colorRed,
		})
	}
	return embeds
}

func queueLabeler(labels map[int]string) func(int) string {
	return func(id int) string {
		if l, ok := labels[id]; ok {
			return l
		}
		return fmt.Sprintf("queue %d", id)
	}
}
