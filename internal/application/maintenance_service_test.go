package application

import (
	"context"
	"testing"
	"time"

	"riftstats/internal/models"
	"riftstats/pkg/riot"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMaintenance(store *memStore, rc riot.Client) *MaintenanceServiceImpl {
	return NewMaintenanceServiceImpl(store.repository(), rc, testTracking(), clockwork.NewFakeClockAt(recordsNow), nopLogger{})
}

func deadParticipant(puuid string, dead int) riot.ParticipantDTO {
	p := participant(puuid, 1, 1, 1)
	p.TotalTimeSpentDead = ip(dead)
	return p
}

func TestMaintenance_BackfillDeadTime(t *testing.T) {
	store := newMemStore()
	store.seed(
		statRow("p-a", "Alice#EUW", "M1", 1, 1, 1, inWindow(24*time.Hour)),
		statRow("p-b", "Bob#EUW", "M1", 1, 1, 1, inWindow(24*time.Hour)),
		statRow("p-a", "Alice#EUW", "M2", 1, 1, 1, inWindow(48*time.Hour)),
		statRow("p-a", "Alice#EUW", "M3", 1, 1, 1, inWindow(48*time.Hour), withDead(50)),
		statRow("p-a", "Alice#EUW", "M4", 1, 1, 1, inWindow(30*24*time.Hour)),
		statRow("p-a", "Alice#EUW", "M5", 1, 1, 1, inWindow(72*time.Hour)),
	)

	rc := newFakeRiot()
	start := recordsNow.Add(-24 * time.Hour)
	rc.addMatch(matchDTO("M1", queueSolo, start, deadParticipant("p-a", 200), deadParticipant("p-b", 300)))
	rc.addMatch(matchDTO("M3", queueSolo, start, deadParticipant("p-a", 999)))
	rc.matchErr["M2"] = &riot.UpstreamError{Kind: riot.KindServerError, Status: 503, Path: "/lol/match/v5/matches/M2"}
	noDead := participant("p-a", 1, 1, 1)
	noDead.TotalTimeSpentDead = nil
	rc.addMatch(matchDTO("M5", queueSolo, start, noDead))

	res, err := newMaintenance(store, rc).BackfillDeadTime(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.BackfillResult{Candidates: 4, Updated: 2, Failed: 1}, res)
	assert.Equal(t, 1, rc.matchCalls["M1"], "a match shared by two rows is fetched once")
	assert.Zero(t, rc.matchCalls["M3"], "filled rows are not candidates")
	assert.Zero(t, rc.matchCalls["M4"], "rows outside the lookback are not candidates")

	assert.Equal(t, 200, *store.stats[statKey("p-a", "M1")].TimeDeadS)
	assert.Equal(t, 300, *store.stats[statKey("p-b", "M1")].TimeDeadS)
	assert.Equal(t, 50, *store.stats[statKey("p-a", "M3")].TimeDeadS)
	assert.Nil(t, store.stats[statKey("p-a", "M2")].TimeDeadS)
	assert.Nil(t, store.stats[statKey("p-a", "M5")].TimeDeadS)
}

func TestMaintenance_BackfillStopsOnCancel(t *testing.T) {
	store := newMemStore()
	store.seed(statRow("p-a", "Alice#EUW", "M1", 1, 1, 1, inWindow(time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newMaintenance(store, newFakeRiot()).BackfillDeadTime(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaintenance_ResetCursors(t *testing.T) {
	store := newMemStore()
	cursors := store.repository().Cursor
	require.NoError(t, cursors.Set(context.Background(), "p-a", 100, 100))
	require.NoError(t, cursors.Set(context.Background(), "p-b", 100, 100))

	n, err := newMaintenance(store, newFakeRiot()).ResetCursors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Empty(t, store.cursors)
}

func TestMaintenance_Status(t *testing.T) {
	store := newMemStore()
	store.seed(
		statRow("p-a", "Alice#EUW", "M1", 1, 1, 1, inWindow(24*time.Hour), withDead(10)),
		statRow("p-a", "Alice#EUW", "M2", 1, 1, 1, inWindow(48*time.Hour)),
	)
	require.NoError(t, store.repository().Cursor.Set(context.Background(), "p-a", recordsNow.Unix()-60, recordsNow.Unix()))

	st, err := newMaintenance(store, newFakeRiot()).Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, recordsNow.Unix(), st.WindowEnd)
	assert.Equal(t, recordsNow.Add(-7*24*time.Hour).Unix(), st.WindowStart)
	require.Len(t, st.Cursors, 1)
	assert.Equal(t, "Alice#EUW", st.Cursors[0].RiotID)
	require.Len(t, st.Coverage, 1)
	assert.Equal(t, models.DeadTimeCoverage{RiotID: "Alice#EUW", Total: 2, Filled: 1}, st.Coverage[0])
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "1h30m0s ago", FormatAge(recordsNow, recordsNow.Add(-90*time.Minute).Unix()))
	assert.Equal(t, "0s ago", FormatAge(recordsNow, recordsNow.Unix()))
	assert.Equal(t, "in the future", FormatAge(recordsNow, recordsNow.Add(time.Hour).Unix()))
}
