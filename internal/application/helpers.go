package application

import (
	"riftstats/internal/models"
)

func calculateWinRate(wins, matches int) float64 {
	if matches == 0 {
		return 0.0
	}
	return (float64(wins) / float64(matches)) * 100
}

// calculateKDA is (k+a)/d, or k+a for a deathless line.
func calculateKDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		return float64(kills + assists)
	}
	return float64(kills+assists) / float64(deaths)
}

func calculateImpact(s *models.PlayerMatchStat) float64 {
	return float64(s.Kills)*impactKillWeight +
		float64(s.Assists)*impactAssistWeight -
		float64(s.Deaths)*impactDeathWeight +
		float64(s.DmgToChamps)/impactDamageDivisor +
		float64(s.VisionScore)/impactVisionDivisor +
		float64(s.TurretKills)*impactTurretWeight
}

// csPerMin returns false for games too short to count or without a duration.
func csPerMin(row *models.StatRow) (float64, bool) {
	if row.DurationS == nil || *row.DurationS < minCSGameDurationS {
		return 0, false
	}
	return float64(row.CS) / (float64(*row.DurationS) / 60.0), true
}

func isSupportRow(row *models.StatRow) bool {
	return row.Position == supportPosition
}

func newGameLine(row *models.StatRow) *models.GameLine {
	return &models.GameLine{
		RiotID:   row.RiotID,
		PUUID:    row.PUUID,
		MatchID:  row.MatchID,
		Champion: row.ChampionName,
		Kills:    row.Kills,
		Deaths:   row.Deaths,
		Assists:  row.Assists,
		Win:      row.Win,
		QueueID:  row.QueueID,
		StartTS:  row.GameStartTS,
		KDA:      calculateKDA(row.Kills, row.Deaths, row.Assists),
		Impact:   calculateImpact(&row.PlayerMatchStat),
	}
}
