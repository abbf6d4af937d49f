package repository

import (
	"context"
	"database/sql"

	"riftstats/internal/models"
)

type PlayerPostgres struct {
	db *sql.DB
}

func NewPlayerPostgres(db *sql.DB) *PlayerPostgres {
	return &PlayerPostgres{db: db}
}

// Upsert keeps the original added_at and overwrites everything else.
func (r *PlayerPostgres) Upsert(ctx context.Context, p models.Player) error {
	query := `
		INSERT INTO players (puuid, riot_id, platform, routing, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (puuid) DO UPDATE
		SET riot_id = EXCLUDED.riot_id, platform = EXCLUDED.platform, routing = EXCLUDED.routing
	`
	if _, err := r.db.ExecContext(ctx, query, p.PUUID, p.RiotID, p.Platform, p.Routing, p.AddedAt); err != nil {
		return storageErr("upsert player", err)
	}
	return nil
}

func (r *PlayerPostgres) GetAll(ctx context.Context) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT puuid, riot_id, platform, routing, added_at FROM players ORDER BY riot_id")
	if err != nil {
		return nil, storageErr("query players", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.PUUID, &p.RiotID, &p.Platform, &p.Routing, &p.AddedAt); err != nil {
			return nil, storageErr("scan player", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate players", err)
	}
	return players, nil
}
