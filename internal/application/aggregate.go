package application

import (
	"sort"
	"strings"
	"time"

	"riftstats/internal/models"
	"riftstats/pkg/config"
)

type playerAcc struct {
	report   models.PlayerReport
	champs   map[string]*models.ChampionStat
	roles    map[string]int
	posGames int
	supGames int
	csTotal  float64
}

// Aggregate folds the stat rows of one window into per-player reports,
// cohort awards and the leaderboard. Ranked rows feed the stat lines;
// casual rows are only counted.
func Aggregate(players []models.Player, rows []models.StatRow, cats config.Categories, start, end time.Time) *models.WeeklyReport {
	accs := make(map[string]*playerAcc, len(players))
	order := make([]string, 0, len(players))
	add := func(puuid, riotID string) *playerAcc {
		if a, ok := accs[puuid]; ok {
			return a
		}
		a := &playerAcc{
			report: models.PlayerReport{PUUID: puuid, RiotID: riotID},
			champs: make(map[string]*models.ChampionStat),
			roles:  make(map[string]int),
		}
		accs[puuid] = a
		order = append(order, puuid)
		return a
	}
	for _, p := range players {
		add(p.PUUID, p.RiotID)
	}

	startTS, endTS := start.Unix(), end.Unix()
	var ranked []*models.StatRow
	for i := range rows {
		row := &rows[i]
		if row.GameStartTS < startTS || row.GameStartTS >= endTS {
			continue
		}
		a := add(row.PUUID, row.RiotID)

		if row.Position != "" {
			a.roles[row.Position]++
			a.posGames++
			if isSupportRow(row) {
				a.supGames++
			}
		}

		switch {
		case cats.Casual.Has(row.QueueID):
			a.report.CasualGames++
		case cats.Ranked.Has(row.QueueID):
			ranked = append(ranked, row)
			accumulate(a, row)
		}
	}

	report := &models.WeeklyReport{
		Start: start,
		End:   end,
	}
	for _, puuid := range order {
		a := accs[puuid]
		finish(a)
		report.Players = append(report.Players, a.report)
	}
	sort.SliceStable(report.Players, func(i, j int) bool {
		return strings.ToLower(report.Players[i].RiotID) < strings.ToLower(report.Players[j].RiotID)
	})

	report.Awards = computeAwards(report.Players, ranked)
	report.Leaderboard = buildLeaderboard(report.Players)
	return report
}

func accumulate(a *playerAcc, row *models.StatRow) {
	r := &a.report
	r.Games++
	if row.Win {
		r.Wins++
	}
	r.Kills += row.Kills
	r.Deaths += row.Deaths
	r.Assists += row.Assists

	c, ok := a.champs[row.ChampionName]
	if !ok {
		c = &models.ChampionStat{Name: row.ChampionName}
		a.champs[row.ChampionName] = c
	}
	c.Games++
	if row.Win {
		c.Wins++
	}

	if !isSupportRow(row) {
		if v, ok := csPerMin(row); ok {
			r.CSGames++
			a.csTotal += v
		}
	}

	if row.TimeDeadS != nil {
		r.DeadGames++
		r.TotalDeadS += *row.TimeDeadS
	}
}

func finish(a *playerAcc) {
	r := &a.report
	if r.Games > 0 {
		g := float64(r.Games)
		r.WinRate = calculateWinRate(r.Wins, r.Games)
		r.AvgK = float64(r.Kills) / g
		r.AvgD = float64(r.Deaths) / g
		r.AvgA = float64(r.Assists) / g
		r.KDA = calculateKDA(r.Kills, r.Deaths, r.Assists)
	}
	if r.CSGames > 0 {
		r.CSPerMin = a.csTotal / float64(r.CSGames)
	}
	if r.DeadGames > 0 {
		r.AvgDeadS = float64(r.TotalDeadS) / float64(r.DeadGames)
	}

	champs := make([]models.ChampionStat, 0, len(a.champs))
	for _, c := range a.champs {
		c.WinRate = calculateWinRate(c.Wins, c.Games)
		champs = append(champs, *c)
	}
	sort.Slice(champs, func(i, j int) bool {
		if champs[i].Games != champs[j].Games {
			return champs[i].Games > champs[j].Games
		}
		if champs[i].Wins != champs[j].Wins {
			return champs[i].Wins > champs[j].Wins
		}
		return champs[i].Name < champs[j].Name
	})
	if len(champs) > topChampionsCount {
		champs = champs[:topChampionsCount]
	}
	r.TopChampions = champs

	r.MainRole = mainRole(a.roles)
	r.IsSupport = a.posGames > 0 && float64(a.supGames)/float64(a.posGames) >= supportShareRequired
}

// mainRole picks the most played position, ties broken by name.
func mainRole(roles map[string]int) string {
	best, bestN := "", 0
	for role, n := range roles {
		if n > bestN || (n == bestN && role < best) {
			best, bestN = role, n
		}
	}
	return best
}

// buildLeaderboard ranks players with enough games by win rate, then games,
// then KDA. The rest follow by games and KDA.
func buildLeaderboard(players []models.PlayerReport) []models.PlayerReport {
	board := make([]models.PlayerReport, len(players))
	copy(board, players)
	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		aq, bq := a.Games >= minGamesForAward, b.Games >= minGamesForAward
		if aq != bq {
			return aq
		}
		if aq && a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.KDA > b.KDA
	})
	if len(board) > leaderboardSize {
		board = board[:leaderboardSize]
	}
	return board
}
