package repository

import (
	"context"
	"database/sql"

	"riftstats/internal/models"
)

type StatsPostgres struct {
	db *sql.DB
}

func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

const statRowSelect = `
	SELECT s.puuid, s.match_id, s.win, s.team_id, s.role, s.lane, s.position, s.champion_id, s.champion_name,
	       s.kills, s.deaths, s.assists, s.cs, s.gold_earned, s.gold_spent, s.dmg_to_champs, s.dmg_taken,
	       s.vision_score, s.wards_placed, s.wards_killed, s.turret_kills, s.time_dead_s, s.game_start_ts, s.queue_id,
	       p.riot_id, m.duration_s
	FROM player_match_stats s
	JOIN players p ON p.puuid = s.puuid
	JOIN matches m ON m.match_id = s.match_id
`

// GetWindow returns stat lines with game_start_ts in [start, end).
func (r *StatsPostgres) GetWindow(ctx context.Context, start, end int64) ([]models.StatRow, error) {
	query := statRowSelect + `
	WHERE s.game_start_ts >= $1 AND s.game_start_ts < $2
	ORDER BY s.game_start_ts, s.match_id, s.puuid`
	return r.query(ctx, query, start, end)
}

func (r *StatsPostgres) GetAll(ctx context.Context) ([]models.StatRow, error) {
	return r.query(ctx, statRowSelect+" ORDER BY s.game_start_ts, s.match_id, s.puuid")
}

func (r *StatsPostgres) query(ctx context.Context, query string, args ...any) ([]models.StatRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query stats", err)
	}
	defer rows.Close()

	var out []models.StatRow
	for rows.Next() {
		var row models.StatRow
		var timeDead, duration sql.NullInt64
		s := &row.PlayerMatchStat
		err := rows.Scan(
			&s.PUUID, &s.MatchID, &s.Win, &s.TeamID, &s.Role, &s.Lane, &s.Position, &s.ChampionID, &s.ChampionName,
			&s.Kills, &s.Deaths, &s.Assists, &s.CS, &s.GoldEarned, &s.GoldSpent, &s.DmgToChamps, &s.DmgTaken,
			&s.VisionScore, &s.WardsPlaced, &s.WardsKilled, &s.TurretKills, &timeDead, &s.GameStartTS, &s.QueueID,
			&row.RiotID, &duration,
		)
		if err != nil {
			return nil, storageErr("scan stat row", err)
		}
		s.TimeDeadS = intPtr(timeDead)
		row.DurationS = intPtr(duration)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate stats", err)
	}
	return out, nil
}

func (r *StatsPostgres) DeadTimeCoverage(ctx context.Context, start, end int64) ([]models.DeadTimeCoverage, error) {
	query := `
		SELECT p.riot_id, COUNT(*), COUNT(s.time_dead_s)
		FROM player_match_stats s
		JOIN players p ON p.puuid = s.puuid
		WHERE s.game_start_ts >= $1 AND s.game_start_ts < $2
		GROUP BY p.riot_id
		ORDER BY p.riot_id
	`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, storageErr("query time dead coverage", err)
	}
	defer rows.Close()

	var out []models.DeadTimeCoverage
	for rows.Next() {
		var c models.DeadTimeCoverage
		if err := rows.Scan(&c.RiotID, &c.Total, &c.Filled); err != nil {
			return nil, storageErr("scan coverage", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate coverage", err)
	}
	return out, nil
}
