package repository

import (
	"context"
	"database/sql"

	"riftstats/internal/models"
)

type Player interface {
	Upsert(ctx context.Context, p models.Player) error
	GetAll(ctx context.Context) ([]models.Player, error)
}

type Match interface {
	Exists(ctx context.Context, matchID string) (bool, error)
	StatExists(ctx context.Context, puuid, matchID string) (bool, error)
	// Save inserts the match (when m is non-nil) and the stat line in one
	// transaction. Rows that already exist are left untouched.
	Save(ctx context.Context, m *models.Match, s *models.PlayerMatchStat) (models.SaveResult, error)

	ListMissingTimeDead(ctx context.Context, since int64) ([]models.StatRef, error)
	SetTimeDead(ctx context.Context, puuid, matchID string, seconds int) (bool, error)
}

type Cursor interface {
	// Get returns nil when the player has no cursor yet.
	Get(ctx context.Context, puuid string) (*models.IngestCursor, error)
	// Set never moves a stored cursor backwards.
	Set(ctx context.Context, puuid string, endTS, now int64) error
	GetAll(ctx context.Context) ([]models.IngestCursor, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Better decides whether the candidate beats cur. cur is nil when the
// record does not exist yet.
type Better func(cur *models.Record) bool

type Record interface {
	Get(ctx context.Context, key string) (*models.Record, error)
	GetAll(ctx context.Context) ([]models.Record, error)
	// CompareAndSet stores next when better approves it, holding the row
	// lock for the whole read-compare-write. It returns the previous value.
	CompareAndSet(ctx context.Context, next models.Record, better Better) (prev *models.Record, updated bool, err error)
}

type Stats interface {
	GetWindow(ctx context.Context, start, end int64) ([]models.StatRow, error)
	GetAll(ctx context.Context) ([]models.StatRow, error)
	DeadTimeCoverage(ctx context.Context, start, end int64) ([]models.DeadTimeCoverage, error)
}

type Repository struct {
	Player
	Match
	Cursor
	Record
	Stats
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Player: NewPlayerPostgres(db),
		Match:  NewMatchPostgres(db),
		Cursor: NewCursorPostgres(db),
		Record: NewRecordPostgres(db),
		Stats:  NewStatsPostgres(db),
		db:     db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storageErr("ping database", err)
	}
	return nil
}
