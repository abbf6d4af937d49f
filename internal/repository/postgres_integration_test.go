package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"testing"
	"time"

	"riftstats/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("riftstats"),
		tcpostgres.WithUsername("riftstats"),
		tcpostgres.WithPassword("riftstats"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.PingContext(ctx))

	require.NoError(t, RunMigrations(db, os.DirFS("../../cmd/app")))
	return db
}

func intRef(v int) *int { return &v }

func TestPostgres_SaveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Player.Upsert(ctx, models.Player{PUUID: "p1", RiotID: "Alpha#EUW", Platform: "EUW1", Routing: "EUROPE", AddedAt: 1}))

	m := &models.Match{MatchID: "EUW1_1", Routing: "EUROPE", QueueID: 420, GameStartTS: 1000, DurationS: intRef(1800), IngestedAt: 2000}
	s := &models.PlayerMatchStat{PUUID: "p1", MatchID: "EUW1_1", Win: true, Kills: 5, Deaths: 2, Assists: 3, GameStartTS: 1000, QueueID: 420}

	res, err := repo.Match.Save(ctx, m, s)
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{MatchInserted: true, StatInserted: true}, res)

	res, err = repo.Match.Save(ctx, m, s)
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{}, res)

	rows, err := repo.Stats.GetWindow(ctx, 0, 5000)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha#EUW", rows[0].RiotID)
	assert.Equal(t, 1800, *rows[0].DurationS)
	assert.Nil(t, rows[0].TimeDeadS)

	exists, err := repo.Match.StatExists(ctx, "p1", "EUW1_1")
	require.NoError(t, err)
	assert.True(t, exists)

	refs, err := repo.Match.ListMissingTimeDead(ctx, 0)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "EUROPE", refs[0].Routing)

	ok, err := repo.Match.SetTimeDead(ctx, "p1", "EUW1_1", 42)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Match.SetTimeDead(ctx, "p1", "EUW1_1", 99)
	require.NoError(t, err)
	assert.False(t, ok)

	cov, err := repo.Stats.DeadTimeCoverage(ctx, 0, 5000)
	require.NoError(t, err)
	assert.Equal(t, []models.DeadTimeCoverage{{RiotID: "Alpha#EUW", Total: 1, Filled: 1}}, cov)
}

func TestPostgres_SaveRollsBackMatchOnStatFailure(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// No player row for "ghost", so the stat insert breaks the foreign key.
	m := &models.Match{MatchID: "EUW1_7", Routing: "EUROPE", QueueID: 420, GameStartTS: 1000, IngestedAt: 2000}
	s := &models.PlayerMatchStat{PUUID: "ghost", MatchID: "EUW1_7", Kills: 1, GameStartTS: 1000, QueueID: 420}

	_, err := repo.Match.Save(ctx, m, s)
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "insert player stat", serr.Op)

	exists, err := repo.Match.Exists(ctx, "EUW1_7")
	require.NoError(t, err)
	assert.False(t, exists, "the match insert is rolled back with the stat")

	// A later save for a known player still inserts both rows.
	require.NoError(t, repo.Player.Upsert(ctx, models.Player{PUUID: "p1", RiotID: "Alpha#EUW", Platform: "EUW1", Routing: "EUROPE", AddedAt: 1}))
	s.PUUID = "p1"
	res, err := repo.Match.Save(ctx, m, s)
	require.NoError(t, err)
	assert.Equal(t, models.SaveResult{MatchInserted: true, StatInserted: true}, res)
}

func TestPostgres_CursorNeverMovesBackwards(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Player.Upsert(ctx, models.Player{PUUID: "p1", RiotID: "Alpha#EUW", Platform: "EUW1", Routing: "EUROPE"}))

	c, err := repo.Cursor.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, repo.Cursor.Set(ctx, "p1", 500, 1))
	require.NoError(t, repo.Cursor.Set(ctx, "p1", 300, 2))

	c, err = repo.Cursor.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), c.LastEndTimeTS)
	assert.Equal(t, int64(2), c.UpdatedAt)

	n, err := repo.Cursor.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostgres_RecordCompareAndSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	higher := func(v float64) Better {
		return func(cur *models.Record) bool { return cur == nil || v > cur.Value }
	}
	meta, _ := json.Marshal(models.RecordMeta{RiotID: "Alpha#EUW"})
	now := time.Now().Unix()

	_, ok, err := repo.Record.CompareAndSet(ctx, models.Record{Key: "most_kills_game", Value: 10, Meta: meta, UpdatedAt: now}, higher(10))
	require.NoError(t, err)
	assert.True(t, ok)

	prev, ok, err := repo.Record.CompareAndSet(ctx, models.Record{Key: "most_kills_game", Value: 9, UpdatedAt: now}, higher(9))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 10.0, prev.Value)

	prev, ok, err = repo.Record.CompareAndSet(ctx, models.Record{Key: "most_kills_game", Value: 11, UpdatedAt: now}, higher(11))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 10.0, prev.Value)

	rec, err := repo.Record.Get(ctx, "most_kills_game")
	require.NoError(t, err)
	assert.Equal(t, 11.0, rec.Value)
}
