package application

import (
	"context"
	"encoding/json"
	"fmt"

	"riftstats/internal/models"
	"riftstats/internal/repository"
	"riftstats/pkg/config"

	"github.com/jonboulle/clockwork"
)

const (
	RecordMostKillsGame     = "most_kills_game"
	RecordMostDeathsGame    = "most_deaths_game"
	RecordHighestImpactGame = "highest_impact_game"
	RecordHighestCSPerMin   = "highest_cs_per_min_game"
	RecordLongestTimeDead   = "longest_time_dead_game"
	RecordBestWeeklyKDA     = "best_weekly_kda"
	RecordWorstWeeklyKDA    = "worst_weekly_kda"
	RecordMostGamesInAWeek  = "most_games_week"
)

var recordLabels = map[string]string{
	RecordMostKillsGame:     "Most kills in a game",
	RecordMostDeathsGame:    "Most deaths in a game",
	RecordHighestImpactGame: "Highest impact game",
	RecordHighestCSPerMin:   "Highest CS/min in a game",
	RecordLongestTimeDead:   "Longest time dead in a game",
	RecordBestWeeklyKDA:     "Best weekly KDA",
	RecordWorstWeeklyKDA:    "Worst weekly KDA",
	RecordMostGamesInAWeek:  "Most games in a week",
}

func RecordLabel(key string) string {
	if l, ok := recordLabels[key]; ok {
		return l
	}
	return key
}

type RecordServiceImpl struct {
	repo   repository.Record
	clock  clockwork.Clock
	logger Logger
}

func NewRecordServiceImpl(repo repository.Record, clock clockwork.Clock, logger Logger) *RecordServiceImpl {
	return &RecordServiceImpl{repo: repo, clock: clock, logger: logger}
}

// UpdateMax stores value under key when the key is new or value beats the
// stored one by more than epsilon.
func (s *RecordServiceImpl) UpdateMax(ctx context.Context, key string, value float64, meta models.RecordMeta) (*models.RecordUpdate, error) {
	return s.update(ctx, key, value, meta, func(cur *models.Record) bool {
		return cur == nil || value > cur.Value+recordEpsilon
	})
}

// UpdateMin is UpdateMax for records where lower is better.
func (s *RecordServiceImpl) UpdateMin(ctx context.Context, key string, value float64, meta models.RecordMeta) (*models.RecordUpdate, error) {
	return s.update(ctx, key, value, meta, func(cur *models.Record) bool {
		return cur == nil || value < cur.Value-recordEpsilon
	})
}

func (s *RecordServiceImpl) update(ctx context.Context, key string, value float64, meta models.RecordMeta, better repository.Better) (*models.RecordUpdate, error) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record meta: %w", err)
	}

	prev, updated, err := s.repo.CompareAndSet(ctx, models.Record{
		Key:       key,
		Value:     value,
		Meta:      raw,
		UpdatedAt: s.clock.Now().Unix(),
	}, better)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil
	}

	u := &models.RecordUpdate{Key: key, Label: RecordLabel(key), Value: value, Meta: meta}
	if prev != nil {
		v := prev.Value
		u.Previous = &v
	}
	s.logger.Info("record %s broken: %.2f by %s", key, value, meta.RiotID)
	return u, nil
}

func (s *RecordServiceImpl) GetAll(ctx context.Context) ([]models.Record, error) {
	return s.repo.GetAll(ctx)
}

// Apply feeds one aggregated window into the all-time records and returns
// the records that were broken.
func (s *RecordServiceImpl) Apply(ctx context.Context, report *models.WeeklyReport, rows []models.StatRow, cats config.Categories) ([]models.RecordUpdate, error) {
	window := fmt.Sprintf("%s..%s", report.Start.UTC().Format("2006-01-02"), report.End.UTC().Format("2006-01-02"))

	type candidate struct {
		key   string
		max   bool
		value float64
		meta  models.RecordMeta
	}
	best := make(map[string]*candidate)
	offer := func(c candidate) {
		cur, ok := best[c.key]
		if !ok || (c.max && c.value > cur.value) || (!c.max && c.value < cur.value) {
			best[c.key] = &c
		}
	}

	startTS, endTS := report.Start.Unix(), report.End.Unix()
	for i := range rows {
		row := &rows[i]
		if row.GameStartTS < startTS || row.GameStartTS >= endTS || !cats.Ranked.Has(row.QueueID) {
			continue
		}
		meta := models.RecordMeta{
			RiotID:   row.RiotID,
			PUUID:    row.PUUID,
			MatchID:  row.MatchID,
			Champion: row.ChampionName,
			Window:   window,
		}
		offer(candidate{RecordMostKillsGame, true, float64(row.Kills), meta})
		offer(candidate{RecordMostDeathsGame, true, float64(row.Deaths), meta})
		offer(candidate{RecordHighestImpactGame, true, calculateImpact(&row.PlayerMatchStat), meta})
		if !isSupportRow(row) {
			if v, ok := csPerMin(row); ok {
				offer(candidate{RecordHighestCSPerMin, true, v, meta})
			}
		}
		if row.TimeDeadS != nil {
			offer(candidate{RecordLongestTimeDead, true, float64(*row.TimeDeadS), meta})
		}
	}

	for _, p := range report.Players {
		meta := models.RecordMeta{RiotID: p.RiotID, PUUID: p.PUUID, Games: p.Games, Window: window}
		if p.Games > 0 {
			offer(candidate{RecordMostGamesInAWeek, true, float64(p.Games), meta})
		}
		if p.Games >= minGamesForAward {
			offer(candidate{RecordBestWeeklyKDA, true, p.KDA, meta})
			offer(candidate{RecordWorstWeeklyKDA, false, p.KDA, meta})
		}
	}

	var updates []models.RecordUpdate
	for _, key := range recordOrder {
		c, ok := best[key]
		if !ok {
			continue
		}
		var (
			u   *models.RecordUpdate
			err error
		)
		if c.max {
			u, err = s.UpdateMax(ctx, c.key, c.value, c.meta)
		} else {
			u, err = s.UpdateMin(ctx, c.key, c.value, c.meta)
		}
		if err != nil {
			return updates, fmt.Errorf("failed to update record %s: %w", c.key, err)
		}
		if u != nil {
			updates = append(updates, *u)
		}
	}
	return updates, nil
}

var recordOrder = []string{
	RecordMostKillsGame,
	RecordMostDeathsGame,
	RecordHighestImpactGame,
	RecordHighestCSPerMin,
	RecordLongestTimeDead,
	RecordBestWeeklyKDA,
	RecordWorstWeeklyKDA,
	RecordMostGamesInAWeek,
}
