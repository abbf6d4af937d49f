package telegram

import (
	"fmt"
	"strings"
	"time"

	"riftstats/internal/models"
)

const (
	dateLayout       = "2006-01-02"
	leaderboardLimit = 10
	nobodyQualified  = "nobody qualified"
)

func weeklyReportMessages(r *models.WeeklyReport) []string {
	label := func(id int) string {
		if l, ok := r.QueueLabels[id]; ok {
			return l
		}
		return fmt.Sprintf("queue %d", id)
	}

	sections := []string{
		fmt.Sprintf("<b>Weekly Stats</b>\n%s to %s",
			r.Start.UTC().Format(dateLayout), r.End.UTC().Format(dateLayout)),
		awardsSection(&r.Awards, label),
		leaderboardSection(r.Leaderboard, r.LookbackDays),
	}
	if len(r.Records) > 0 {
		sections = append(sections, recordsSection(r.Records))
	}
	return pack(sections)
}

func awardsSection(a *models.Awards, label func(int) string) string {
	var sb strings.Builder
	sb.WriteString("<b>Awards</b>")
	player := func(name string, p *models.PlayerReport, detail func(*models.PlayerReport) string) {
		if p == nil {
			fmt.Fprintf(&sb, "\n%s: %s", name, nobodyQualified)
			return
		}
		fmt.Fprintf(&sb, "\n%s: <b>%s</b> %s", name, esc(p.RiotID), detail(p))
	}
	game := func(name string, l *models.GameLine) {
		if l == nil {
			fmt.Fprintf(&sb, "\n%s: %s", name, nobodyQualified)
			return
		}
		fmt.Fprintf(&sb, "\n%s: %s", name, gameLine(l, label))
	}
	kda := func(p *models.PlayerReport) string { return fmt.Sprintf("KDA %.2f", p.KDA) }
	cs := func(p *models.PlayerReport) string { return fmt.Sprintf("%.2f CS/min", p.CSPerMin) }

	player("Player of the Week", a.BestKDA, kda)
	player("Lowest KDA", a.WorstKDA, kda)
	player("Best Farmer", a.BestCS, cs)
	player("Worst Farmer", a.WorstCS, cs)
	player("Casual Warrior", a.MostCasual, func(p *models.PlayerReport) string {
		return fmt.Sprintf("%d casual games", p.CasualGames)
	})
	player("Grey Screen Enjoyer", a.MostDeadTime, func(p *models.PlayerReport) string {
		return fmt.Sprintf("%.1f min dead per game", p.AvgDeadS/60)
	})
	game("Worst Game", a.WorstGame)
	game("Best Impact Game", a.BestImpact)
	return sb.String()
}

func leaderboardSection(board []models.PlayerReport, lookbackDays int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>Leaderboard (last %d days)</b>", lookbackDays)
	if len(board) == 0 {
		sb.WriteString("\nNobody has enough games yet.")
	}
	if len(board) > leaderboardLimit {
		board = board[:leaderboardLimit]
	}
	for i, p := range board {
		fmt.Fprintf(&sb, "\n%d. <b>%s</b> %.0f%% WR, KDA %.2f (%d games)", i+1, esc(p.RiotID), p.WinRate, p.KDA, p.Games)
	}
	return sb.String()
}

func recordsSection(updates []models.RecordUpdate) string {
	var sb strings.Builder
	sb.WriteString("<b>Records Broken</b>")
	for _, u := range updates {
		prev := "first entry"
		if u.Previous != nil {
			prev = fmt.Sprintf("was %.2f", *u.Previous)
		}
		fmt.Fprintf(&sb, "\n%s: %.2f by <b>%s</b> (%s)", esc(u.Label), u.Value, esc(u.Meta.RiotID), prev)
	}
	return sb.String()
}

func hallOfShameMessages(lines []models.GameLine, label func(int) string) []string {
	if len(lines) == 0 {
		return []string{"<b>Hall of Shame</b>\nNobody has disgraced themselves yet."}
	}
	var sb strings.Builder
	sb.WriteString("<b>Hall of Shame</b>")
	for i := range lines {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, gameLine(&lines[i], label))
	}
	return pack([]string{sb.String()})
}

func gameLine(l *models.GameLine, label func(int) string) string {
	result := "L"
	if l.Win {
		result = "W"
	}
	return fmt.Sprintf("<b>%s</b> %s %d/%d/%d (%s) KDA %.2f, %s, %s",
		esc(l.RiotID), esc(l.Champion), l.Kills, l.Deaths, l.Assists, result, l.KDA,
		esc(label(l.QueueID)), time.Unix(l.StartTS, 0).UTC().Format(dateLayout))
}
