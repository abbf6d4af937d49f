package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"riftstats/internal/models"
	"riftstats/internal/repository"
	"riftstats/pkg/config"
	"riftstats/pkg/riot"
)

type nopLogger struct{}

func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Debug(string, ...interface{}) {}

// memStore backs every fake repository so they share one consistent state.
type memStore struct {
	mu       sync.Mutex
	players  map[string]models.Player
	matches  map[string]models.Match
	stats    map[string]models.PlayerMatchStat
	cursors  map[string]models.IngestCursor
	records  map[string]models.Record
	saveErr  error
	cursorOp int
}

func newMemStore() *memStore {
	return &memStore{
		players: make(map[string]models.Player),
		matches: make(map[string]models.Match),
		stats:   make(map[string]models.PlayerMatchStat),
		cursors: make(map[string]models.IngestCursor),
		records: make(map[string]models.Record),
	}
}

func statKey(puuid, matchID string) string { return puuid + "|" + matchID }

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Player: memPlayers{m},
		Match:  memMatches{m},
		Cursor: memCursors{m},
		Record: memRecords{m},
		Stats:  memStats{m},
	}
}

type memPlayers struct{ s *memStore }

func (r memPlayers) Upsert(_ context.Context, p models.Player) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.players[p.PUUID]; ok {
		p.AddedAt = cur.AddedAt
	}
	r.s.players[p.PUUID] = p
	return nil
}

func (r memPlayers) GetAll(context.Context) ([]models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Player, 0, len(r.s.players))
	for _, p := range r.s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RiotID < out[j].RiotID })
	return out, nil
}

type memMatches struct{ s *memStore }

func (r memMatches) Exists(_ context.Context, matchID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.matches[matchID]
	return ok, nil
}

func (r memMatches) StatExists(_ context.Context, puuid, matchID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.stats[statKey(puuid, matchID)]
	return ok, nil
}

func (r memMatches) Save(_ context.Context, m *models.Match, st *models.PlayerMatchStat) (models.SaveResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res models.SaveResult
	if r.s.saveErr != nil {
		return res, &repository.StorageError{Op: "save match", Err: r.s.saveErr}
	}
	if m != nil {
		if _, ok := r.s.matches[m.MatchID]; !ok {
			r.s.matches[m.MatchID] = *m
			res.MatchInserted = true
		}
	}
	if _, ok := r.s.matches[st.MatchID]; !ok {
		return res, &repository.StorageError{Op: "save stat", Err: fmt.Errorf("match %s missing", st.MatchID)}
	}
	k := statKey(st.PUUID, st.MatchID)
	if _, ok := r.s.stats[k]; !ok {
		r.s.stats[k] = *st
		res.StatInserted = true
	}
	return res, nil
}

func (r memMatches) ListMissingTimeDead(_ context.Context, since int64) ([]models.StatRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.StatRef
	for _, st := range r.s.stats {
		m := r.s.matches[st.MatchID]
		if st.TimeDeadS == nil && m.GameStartTS >= since {
			out = append(out, models.StatRef{PUUID: st.PUUID, MatchID: st.MatchID, Routing: m.Routing})
		}
	}
	sort.Slice(out, func(i, j int) bool { return statKey(out[i].PUUID, out[i].MatchID) < statKey(out[j].PUUID, out[j].MatchID) })
	return out, nil
}

func (r memMatches) SetTimeDead(_ context.Context, puuid, matchID string, seconds int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := statKey(puuid, matchID)
	st, ok := r.s.stats[k]
	if !ok || st.TimeDeadS != nil {
		return false, nil
	}
	st.TimeDeadS = &seconds
	r.s.stats[k] = st
	return true, nil
}

type memCursors struct{ s *memStore }

func (r memCursors) Get(_ context.Context, puuid string) (*models.IngestCursor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.cursors[puuid]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCursors) Set(_ context.Context, puuid string, endTS, now int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.cursorOp++
	c, ok := r.s.cursors[puuid]
	if ok && c.LastEndTimeTS > endTS {
		endTS = c.LastEndTimeTS
	}
	r.s.cursors[puuid] = models.IngestCursor{PUUID: puuid, LastEndTimeTS: endTS, UpdatedAt: now}
	return nil
}

func (r memCursors) GetAll(context.Context) ([]models.IngestCursor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.IngestCursor, 0, len(r.s.cursors))
	for _, c := range r.s.cursors {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PUUID < out[j].PUUID })
	return out, nil
}

func (r memCursors) DeleteAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := int64(len(r.s.cursors))
	r.s.cursors = make(map[string]models.IngestCursor)
	return n, nil
}

type memRecords struct{ s *memStore }

func (r memRecords) Get(_ context.Context, key string) (*models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r memRecords) GetAll(context.Context) ([]models.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Record, 0, len(r.s.records))
	for _, rec := range r.s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r memRecords) CompareAndSet(_ context.Context, next models.Record, better repository.Better) (*models.Record, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var prev *models.Record
	if cur, ok := r.s.records[next.Key]; ok {
		prev = &cur
	}
	if !better(prev) {
		return prev, false, nil
	}
	r.s.records[next.Key] = next
	return prev, true, nil
}

type memStats struct{ s *memStore }

func (r memStats) rows(keep func(models.PlayerMatchStat) bool) []models.StatRow {
	var out []models.StatRow
	for _, st := range r.s.stats {
		if !keep(st) {
			continue
		}
		m := r.s.matches[st.MatchID]
		out = append(out, models.StatRow{
			PlayerMatchStat: st,
			RiotID:          r.s.players[st.PUUID].RiotID,
			DurationS:       m.DurationS,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameStartTS != out[j].GameStartTS {
			return out[i].GameStartTS < out[j].GameStartTS
		}
		return statKey(out[i].PUUID, out[i].MatchID) < statKey(out[j].PUUID, out[j].MatchID)
	})
	return out
}

func (r memStats) GetWindow(_ context.Context, start, end int64) ([]models.StatRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.rows(func(st models.PlayerMatchStat) bool {
		return st.GameStartTS >= start && st.GameStartTS < end
	}), nil
}

func (r memStats) GetAll(context.Context) ([]models.StatRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.rows(func(models.PlayerMatchStat) bool { return true }), nil
}

func (r memStats) DeadTimeCoverage(_ context.Context, start, end int64) ([]models.DeadTimeCoverage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byPlayer := make(map[string]*models.DeadTimeCoverage)
	for _, row := range r.rows(func(st models.PlayerMatchStat) bool {
		return st.GameStartTS >= start && st.GameStartTS < end
	}) {
		c, ok := byPlayer[row.RiotID]
		if !ok {
			c = &models.DeadTimeCoverage{RiotID: row.RiotID}
			byPlayer[row.RiotID] = c
		}
		c.Total++
		if row.TimeDeadS != nil {
			c.Filled++
		}
	}
	out := make([]models.DeadTimeCoverage, 0, len(byPlayer))
	for _, c := range byPlayer {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RiotID < out[j].RiotID })
	return out, nil
}

// fakeRiot serves matches from memory. MatchIDs honours the time window and
// paging the way the match-v5 endpoint does, newest first.
type fakeRiot struct {
	mu           sync.Mutex
	accounts     map[string]string
	matches      map[string]*riot.MatchDTO
	byPlayer     map[string][]string
	matchErr     map[string]error
	accountErr   map[string]error
	accountCalls int
	matchCalls   map[string]int
}

func newFakeRiot() *fakeRiot {
	return &fakeRiot{
		accounts:   make(map[string]string),
		matches:    make(map[string]*riot.MatchDTO),
		byPlayer:   make(map[string][]string),
		matchErr:   make(map[string]error),
		accountErr: make(map[string]error),
		matchCalls: make(map[string]int),
	}
}

func (f *fakeRiot) addMatch(dto *riot.MatchDTO) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := dto.Metadata.MatchID
	f.matches[id] = dto
	for _, p := range dto.Info.Participants {
		f.byPlayer[p.PUUID] = append(f.byPlayer[p.PUUID], id)
	}
}

func (f *fakeRiot) AccountByRiotID(_ context.Context, _, riotID string) (*riot.AccountDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	if err := f.accountErr[riotID]; err != nil {
		return nil, err
	}
	puuid, ok := f.accounts[riotID]
	if !ok {
		return nil, &riot.UpstreamError{Kind: riot.KindClientError, Status: 404, Path: "/riot/account/v1/accounts/by-riot-id"}
	}
	return &riot.AccountDTO{PUUID: puuid}, nil
}

func (f *fakeRiot) MatchIDs(_ context.Context, _, puuid string, q riot.MatchIDsQuery) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, id := range f.byPlayer[puuid] {
		ts := *f.matches[id].Info.GameStartTimestamp / 1000
		if ts >= q.StartTime && ts <= q.EndTime {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return *f.matches[ids[i]].Info.GameStartTimestamp > *f.matches[ids[j]].Info.GameStartTimestamp
	})
	if q.Start >= len(ids) {
		return []string{}, nil
	}
	ids = ids[q.Start:]
	if len(ids) > q.Count {
		ids = ids[:q.Count]
	}
	return ids, nil
}

func (f *fakeRiot) Match(_ context.Context, _, matchID string) (*riot.MatchDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchCalls[matchID]++
	if err := f.matchErr[matchID]; err != nil {
		return nil, err
	}
	dto, ok := f.matches[matchID]
	if !ok {
		return nil, &riot.UpstreamError{Kind: riot.KindClientError, Status: 404, Path: "/lol/match/v5/matches/" + matchID}
	}
	return dto, nil
}

type fakeNotifier struct {
	reports []*models.WeeklyReport
	shame   [][]models.GameLine
	err     error
}

func (n *fakeNotifier) PublishWeeklyReport(_ context.Context, r *models.WeeklyReport) error {
	n.reports = append(n.reports, r)
	return n.err
}

func (n *fakeNotifier) PublishHallOfShame(_ context.Context, lines []models.GameLine, _ func(int) string) error {
	n.shame = append(n.shame, lines)
	return n.err
}

func ip(v int) *int { return &v }

func i64(v int64) *int64 { return &v }

// participant builds a fully populated participant line.
func participant(puuid string, k, d, a int) riot.ParticipantDTO {
	return riot.ParticipantDTO{
		PUUID:                       puuid,
		Win:                         true,
		TeamID:                      ip(100),
		TeamPosition:                "MIDDLE",
		ChampionID:                  ip(103),
		ChampionName:                "Ahri",
		Kills:                       ip(k),
		Deaths:                      ip(d),
		Assists:                     ip(a),
		TotalMinionsKilled:          ip(180),
		NeutralMinionsKilled:        ip(20),
		GoldEarned:                  ip(12000),
		GoldSpent:                   ip(11000),
		TotalDamageDealtToChampions: ip(25000),
		TotalDamageTaken:            ip(18000),
		VisionScore:                 ip(30),
		WardsPlaced:                 ip(10),
		WardsKilled:                 ip(3),
		TurretKills:                 ip(2),
		TotalTimeSpentDead:          ip(120),
	}
}

func matchDTO(id string, queueID int, start time.Time, parts ...riot.ParticipantDTO) *riot.MatchDTO {
	return &riot.MatchDTO{
		Metadata: riot.MetadataDTO{MatchID: id},
		Info: riot.MatchInfoDTO{
			QueueID:            ip(queueID),
			GameStartTimestamp: i64(start.UnixMilli()),
			GameDuration:       ip(1800),
			GameMode:           "CLASSIC",
			GameType:           "MATCHED_GAME",
			MapID:              ip(11),
			Participants:       parts,
		},
	}
}

const (
	queueSolo  = 420
	queueFlex  = 440
	queueARAM  = 450
	queueArena = 1700
)

func testTracking(players ...config.TrackedPlayer) *config.Tracking {
	return &config.Tracking{
		LookbackDays:        7,
		MaxMatchesPerPlayer: 70,
		Regions:             map[string]string{"euw1": "europe"},
		Queues: []config.Queue{
			{Key: "solo", ID: queueSolo, Label: "Ranked Solo", Tags: []string{config.TagRanked}},
			{Key: "flex", ID: queueFlex, Label: "Ranked Flex", Tags: []string{config.TagRanked}},
			{Key: "aram", ID: queueARAM, Label: "ARAM", Tags: []string{config.TagCasual}},
		},
		Categories: config.Categories{
			Ranked: config.NewQueueSet(queueSolo, queueFlex),
			Casual: config.NewQueueSet(queueARAM),
		},
		Players: players,
	}
}

func tracked(riotID string, queues ...int) config.TrackedPlayer {
	if len(queues) == 0 {
		queues = []int{queueSolo, queueFlex, queueARAM}
	}
	return config.TrackedPlayer{
		RiotID:        riotID,
		Platform:      "euw1",
		Routing:       "europe",
		EnabledQueues: config.NewQueueSet(queues...),
	}
}
