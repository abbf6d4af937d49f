package repository

import (
	"context"
	"database/sql"

	"riftstats/internal/models"
)

type MatchPostgres struct {
	db *sql.DB
}

func NewMatchPostgres(db *sql.DB) *MatchPostgres {
	return &MatchPostgres{db: db}
}

func (r *MatchPostgres) Exists(ctx context.Context, matchID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM matches WHERE match_id = $1)"
	if err := r.db.QueryRowContext(ctx, query, matchID).Scan(&exists); err != nil {
		return false, storageErr("check match existence", err)
	}
	return exists, nil
}

func (r *MatchPostgres) StatExists(ctx context.Context, puuid, matchID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM player_match_stats WHERE puuid = $1 AND match_id = $2)"
	if err := r.db.QueryRowContext(ctx, query, puuid, matchID).Scan(&exists); err != nil {
		return false, storageErr("check stat existence", err)
	}
	return exists, nil
}

func (r *MatchPostgres) Save(ctx context.Context, m *models.Match, s *models.PlayerMatchStat) (res models.SaveResult, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, storageErr("begin transaction", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if m != nil {
		query := `
			INSERT INTO matches (match_id, routing, queue_id, game_start_ts, duration_s, game_mode, game_type, map_id, ingested_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (match_id) DO NOTHING
		`
		var result sql.Result
		result, err = tx.ExecContext(ctx, query,
			m.MatchID, m.Routing, m.QueueID, m.GameStartTS, nullInt(m.DurationS),
			m.GameMode, m.GameType, m.MapID, m.IngestedAt)
		if err != nil {
			return res, storageErr("insert match", err)
		}
		res.MatchInserted, err = affected(result)
		if err != nil {
			return res, storageErr("insert match", err)
		}
	}

	if s != nil {
		query := `
			INSERT INTO player_match_stats (
				puuid, match_id, win, team_id, role, lane, position, champion_id, champion_name,
				kills, deaths, assists, cs, gold_earned, gold_spent, dmg_to_champs, dmg_taken,
				vision_score, wards_placed, wards_killed, turret_kills, time_dead_s, game_start_ts, queue_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
			ON CONFLICT (puuid, match_id) DO NOTHING
		`
		var result sql.Result
		result, err = tx.ExecContext(ctx, query,
			s.PUUID, s.MatchID, s.Win, s.TeamID, s.Role, s.Lane, s.Position, s.ChampionID, s.ChampionName,
			s.Kills, s.Deaths, s.Assists, s.CS, s.GoldEarned, s.GoldSpent, s.DmgToChamps, s.DmgTaken,
			s.VisionScore, s.WardsPlaced, s.WardsKilled, s.TurretKills, nullInt(s.TimeDeadS), s.GameStartTS, s.QueueID)
		if err != nil {
			return res, storageErr("insert player stat", err)
		}
		res.StatInserted, err = affected(result)
		if err != nil {
			return res, storageErr("insert player stat", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.SaveResult{}, storageErr("commit transaction", err)
	}
	return res, nil
}

func (r *MatchPostgres) ListMissingTimeDead(ctx context.Context, since int64) ([]models.StatRef, error) {
	query := `
		SELECT s.puuid, s.match_id, m.routing
		FROM player_match_stats s
		JOIN matches m ON m.match_id = s.match_id
		WHERE s.time_dead_s IS NULL AND s.game_start_ts >= $1
		ORDER BY s.game_start_ts DESC, s.match_id
	`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, storageErr("query missing time dead", err)
	}
	defer rows.Close()

	var refs []models.StatRef
	for rows.Next() {
		var ref models.StatRef
		if err := rows.Scan(&ref.PUUID, &ref.MatchID, &ref.Routing); err != nil {
			return nil, storageErr("scan stat ref", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate stat refs", err)
	}
	return refs, nil
}

// SetTimeDead only fills a NULL value; it reports whether a row changed.
func (r *MatchPostgres) SetTimeDead(ctx context.Context, puuid, matchID string, seconds int) (bool, error) {
	query := "UPDATE player_match_stats SET time_dead_s = $3 WHERE puuid = $1 AND match_id = $2 AND time_dead_s IS NULL"
	result, err := r.db.ExecContext(ctx, query, puuid, matchID, seconds)
	if err != nil {
		return false, storageErr("set time dead", err)
	}
	ok, err := affected(result)
	if err != nil {
		return false, storageErr("set time dead", err)
	}
	return ok, nil
}

func affected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
