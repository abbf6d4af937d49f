package repository

import (
	"context"
	"database/sql"
	"errors"

	"riftstats/internal/models"
)

type RecordPostgres struct {
	db *sql.DB
}

func NewRecordPostgres(db *sql.DB) *RecordPostgres {
	return &RecordPostgres{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.Record, error) {
	var rec models.Record
	var meta []byte
	if err := row.Scan(&rec.Key, &rec.Value, &meta, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Meta = meta
	return &rec, nil
}

func (r *RecordPostgres) Get(ctx context.Context, key string) (*models.Record, error) {
	rec, err := scanRecord(r.db.QueryRowContext(ctx,
		"SELECT key, value, meta, updated_at FROM records WHERE key = $1", key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get record", err)
	}
	return rec, nil
}

func (r *RecordPostgres) GetAll(ctx context.Context) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT key, value, meta, updated_at FROM records ORDER BY key")
	if err != nil {
		return nil, storageErr("query records", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, storageErr("scan record", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate records", err)
	}
	return records, nil
}

func (r *RecordPostgres) CompareAndSet(ctx context.Context, next models.Record, better Better) (prev *models.Record, updated bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, storageErr("begin transaction", err)
	}
	defer func() {
		if err != nil || !updated {
			tx.Rollback()
		}
	}()

	meta := string(next.Meta)
	if meta == "" {
		meta = "{}"
	}

	// A missing row cannot be locked, so claim the key first.
	if better(nil) {
		var res sql.Result
		res, err = tx.ExecContext(ctx, `
			INSERT INTO records (key, value, meta, updated_at)
			VALUES ($1, $2, $3::jsonb, $4)
			ON CONFLICT (key) DO NOTHING
		`, next.Key, next.Value, meta, next.UpdatedAt)
		if err != nil {
			return nil, false, storageErr("insert record", err)
		}
		var inserted bool
		inserted, err = affected(res)
		if err != nil {
			return nil, false, storageErr("insert record", err)
		}
		if inserted {
			updated = true
			if err = tx.Commit(); err != nil {
				return nil, false, storageErr("commit transaction", err)
			}
			return nil, true, nil
		}
	}

	prev, err = scanRecord(tx.QueryRowContext(ctx,
		"SELECT key, value, meta, updated_at FROM records WHERE key = $1 FOR UPDATE", next.Key))
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		prev = nil
	}
	if err != nil {
		return nil, false, storageErr("lock record", err)
	}
	if prev == nil || !better(prev) {
		return prev, false, nil
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE records SET value = $2, meta = $3::jsonb, updated_at = $4 WHERE key = $1",
		next.Key, next.Value, meta, next.UpdatedAt)
	if err != nil {
		return prev, false, storageErr("update record", err)
	}
	updated = true
	if err = tx.Commit(); err != nil {
		return prev, false, storageErr("commit transaction", err)
	}
	return prev, true, nil
}
