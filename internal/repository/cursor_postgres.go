package repository

import (
	"context"
	"database/sql"
	"errors"

	"riftstats/internal/models"
)

type CursorPostgres struct {
	db *sql.DB
}

func NewCursorPostgres(db *sql.DB) *CursorPostgres {
	return &CursorPostgres{db: db}
}

func (r *CursorPostgres) Get(ctx context.Context, puuid string) (*models.IngestCursor, error) {
	var c models.IngestCursor
	query := "SELECT puuid, last_end_time_ts, updated_at FROM ingest_cursors WHERE puuid = $1"
	err := r.db.QueryRowContext(ctx, query, puuid).Scan(&c.PUUID, &c.LastEndTimeTS, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get cursor", err)
	}
	return &c, nil
}

func (r *CursorPostgres) Set(ctx context.Context, puuid string, endTS, now int64) error {
	query := `
		INSERT INTO ingest_cursors (puuid, last_end_time_ts, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (puuid) DO UPDATE
		SET last_end_time_ts = GREATEST(ingest_cursors.last_end_time_ts, EXCLUDED.last_end_time_ts),
		    updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, puuid, endTS, now); err != nil {
		return storageErr("set cursor", err)
	}
	return nil
}

func (r *CursorPostgres) GetAll(ctx context.Context) ([]models.IngestCursor, error) {
	query := `
		SELECT c.puuid, c.last_end_time_ts, c.updated_at
		FROM ingest_cursors c
		LEFT JOIN players p ON p.puuid = c.puuid
		ORDER BY p.riot_id, c.puuid
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storageErr("query cursors", err)
	}
	defer rows.Close()

	var cursors []models.IngestCursor
	for rows.Next() {
		var c models.IngestCursor
		if err := rows.Scan(&c.PUUID, &c.LastEndTimeTS, &c.UpdatedAt); err != nil {
			return nil, storageErr("scan cursor", err)
		}
		cursors = append(cursors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate cursors", err)
	}
	return cursors, nil
}

func (r *CursorPostgres) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ingest_cursors")
	if err != nil {
		return 0, storageErr("delete cursors", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("delete cursors", err)
	}
	return n, nil
}
