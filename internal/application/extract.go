package application

import (
	"errors"

	"riftstats/internal/models"
	"riftstats/pkg/riot"
)

// ErrNotParticipant means the payload has no line for the player, or lacks
// the start timestamp the line is keyed on. The pair is skipped.
var ErrNotParticipant = errors.New("player is not a participant of the match")

// Absent fields in a participant payload:
//
//	counters (kills, cs, gold, damage, vision, wards, turrets, ids) -> 0
//	strings (role, lane, position, champion name)                   -> ""
//	totalTimeSpentDead                                               -> NULL
//	match duration and queue id                                      -> NULL / 0
func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// ProjectStat extracts the stat line of puuid from a match payload.
func ProjectStat(dto *riot.MatchDTO, puuid string) (*models.PlayerMatchStat, error) {
	if dto == nil || dto.Info.GameStartTimestamp == nil {
		return nil, ErrNotParticipant
	}
	part, ok := dto.Participant(puuid)
	if !ok {
		return nil, ErrNotParticipant
	}

	stat := &models.PlayerMatchStat{
		PUUID:        puuid,
		MatchID:      dto.Metadata.MatchID,
		Win:          part.Win,
		TeamID:       valueOrZero(part.TeamID),
		Role:         part.Role,
		Lane:         part.Lane,
		Position:     part.TeamPosition,
		ChampionID:   valueOrZero(part.ChampionID),
		ChampionName: part.ChampionName,
		Kills:        valueOrZero(part.Kills),
		Deaths:       valueOrZero(part.Deaths),
		Assists:      valueOrZero(part.Assists),
		CS:           valueOrZero(part.TotalMinionsKilled) + valueOrZero(part.NeutralMinionsKilled),
		GoldEarned:   valueOrZero(part.GoldEarned),
		GoldSpent:    valueOrZero(part.GoldSpent),
		DmgToChamps:  valueOrZero(part.TotalDamageDealtToChampions),
		DmgTaken:     valueOrZero(part.TotalDamageTaken),
		VisionScore:  valueOrZero(part.VisionScore),
		WardsPlaced:  valueOrZero(part.WardsPlaced),
		WardsKilled:  valueOrZero(part.WardsKilled),
		TurretKills:  valueOrZero(part.TurretKills),
		GameStartTS:  *dto.Info.GameStartTimestamp / 1000,
		QueueID:      valueOrZero(dto.Info.QueueID),
	}
	if part.TotalTimeSpentDead != nil {
		v := *part.TotalTimeSpentDead
		stat.TimeDeadS = &v
	}
	return stat, nil
}

// ProjectMatch builds the match row. The caller has already checked the
// start timestamp through ProjectStat.
func ProjectMatch(dto *riot.MatchDTO, matchID, routing string, ingestedAt int64) *models.Match {
	m := &models.Match{
		MatchID:    matchID,
		Routing:    routing,
		QueueID:    valueOrZero(dto.Info.QueueID),
		GameMode:   dto.Info.GameMode,
		GameType:   dto.Info.GameType,
		MapID:      valueOrZero(dto.Info.MapID),
		IngestedAt: ingestedAt,
	}
	if dto.Info.GameStartTimestamp != nil {
		m.GameStartTS = *dto.Info.GameStartTimestamp / 1000
	}
	if dto.Info.GameDuration != nil {
		d := *dto.Info.GameDuration
		m.DurationS = &d
	}
	return m
}
