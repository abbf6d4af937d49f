package application

import (
	"sort"

	"riftstats/internal/models"
)

func computeAwards(players []models.PlayerReport, ranked []*models.StatRow) models.Awards {
	var aw models.Awards

	var kdaPool, csPool, casualPool, deadPool []*models.PlayerReport
	for i := range players {
		p := &players[i]
		if p.Games >= minGamesForAward {
			kdaPool = append(kdaPool, p)
		}
		if !p.IsSupport && p.CSGames >= minGamesForCSAward {
			csPool = append(csPool, p)
		}
		if p.CasualGames > 0 {
			casualPool = append(casualPool, p)
		}
		if p.DeadGames > 0 {
			deadPool = append(deadPool, p)
		}
	}

	aw.BestKDA = pick(kdaPool, func(a, b *models.PlayerReport) bool {
		if a.KDA != b.KDA {
			return a.KDA > b.KDA
		}
		if a.Games != b.Games {
			return a.Games > b.Games
		}
		return a.RiotID < b.RiotID
	})
	aw.WorstKDA = pick(kdaPool, func(a, b *models.PlayerReport) bool {
		if a.KDA != b.KDA {
			return a.KDA < b.KDA
		}
		if a.Deaths != b.Deaths {
			return a.Deaths > b.Deaths
		}
		return a.RiotID < b.RiotID
	})
	aw.BestCS = pick(csPool, func(a, b *models.PlayerReport) bool {
		if a.CSPerMin != b.CSPerMin {
			return a.CSPerMin > b.CSPerMin
		}
		return a.RiotID < b.RiotID
	})
	aw.WorstCS = pick(csPool, func(a, b *models.PlayerReport) bool {
		if a.CSPerMin != b.CSPerMin {
			return a.CSPerMin < b.CSPerMin
		}
		return a.RiotID < b.RiotID
	})
	aw.MostCasual = pick(casualPool, func(a, b *models.PlayerReport) bool {
		if a.CasualGames != b.CasualGames {
			return a.CasualGames > b.CasualGames
		}
		return a.RiotID < b.RiotID
	})
	aw.MostDeadTime = pick(deadPool, func(a, b *models.PlayerReport) bool {
		if a.AvgDeadS != b.AvgDeadS {
			return a.AvgDeadS > b.AvgDeadS
		}
		return a.RiotID < b.RiotID
	})

	lines := make([]*models.GameLine, 0, len(ranked))
	for _, row := range ranked {
		lines = append(lines, newGameLine(row))
	}
	aw.WorstGame = pickLine(filterLines(lines, countsTowardWorst), worseGame)
	aw.BestImpact = pickLine(lines, func(a, b *models.GameLine) bool {
		if a.Impact != b.Impact {
			return a.Impact > b.Impact
		}
		if a.Kills != b.Kills {
			return a.Kills > b.Kills
		}
		return a.MatchID < b.MatchID
	})
	return aw
}

// worseGame orders lines worst first: KDA, then more deaths, then less
// participation.
func worseGame(a, b *models.GameLine) bool {
	if a.KDA != b.KDA {
		return a.KDA < b.KDA
	}
	if a.Deaths != b.Deaths {
		return a.Deaths > b.Deaths
	}
	if a.Kills+a.Assists != b.Kills+b.Assists {
		return a.Kills+a.Assists < b.Kills+b.Assists
	}
	return a.MatchID < b.MatchID
}

// A 0/0/0 line is usually a remake or an AFK and says nothing.
func countsTowardWorst(l *models.GameLine) bool {
	return l.Kills+l.Deaths+l.Assists > 0
}

// WorstGames returns the worst stored game of every player, worst first.
func WorstGames(rows []models.StatRow) []models.GameLine {
	worst := make(map[string]*models.GameLine)
	for i := range rows {
		line := newGameLine(&rows[i])
		if !countsTowardWorst(line) {
			continue
		}
		if cur, ok := worst[line.PUUID]; !ok || worseGame(line, cur) {
			worst[line.PUUID] = line
		}
	}

	out := make([]models.GameLine, 0, len(worst))
	for _, l := range worst {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		return worseGame(&out[i], &out[j])
	})
	return out
}

func pick(pool []*models.PlayerReport, less func(a, b *models.PlayerReport) bool) *models.PlayerReport {
	var best *models.PlayerReport
	for _, p := range pool {
		if best == nil || less(p, best) {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	cp := *best
	return &cp
}

func pickLine(lines []*models.GameLine, less func(a, b *models.GameLine) bool) *models.GameLine {
	var best *models.GameLine
	for _, l := range lines {
		if best == nil || less(l, best) {
			best = l
		}
	}
	return best
}

func filterLines(lines []*models.GameLine, keep func(*models.GameLine) bool) []*models.GameLine {
	out := lines[:0:0]
	for _, l := range lines {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
