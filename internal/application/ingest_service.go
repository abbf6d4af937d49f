package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"riftstats/internal/models"
	"riftstats/internal/repository"
	"riftstats/pkg/config"
	"riftstats/pkg/riot"

	"github.com/jonboulle/clockwork"
)

type IngestServiceImpl struct {
	players  repository.Player
	matches  repository.Match
	cursors  repository.Cursor
	riot     riot.Client
	tracking *config.Tracking
	cache    *repository.PlayerCache
	clock    clockwork.Clock
	metrics  IngestMetrics
	logger   Logger
}

func NewIngestServiceImpl(repos *repository.Repository, client riot.Client, tracking *config.Tracking, cache *repository.PlayerCache, clock clockwork.Clock, metrics IngestMetrics, logger Logger) *IngestServiceImpl {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &IngestServiceImpl{
		players:  repos.Player,
		matches:  repos.Match,
		cursors:  repos.Cursor,
		riot:     client,
		tracking: tracking,
		cache:    cache,
		clock:    clock,
		metrics:  metrics,
		logger:   logger,
	}
}

// Run ingests every tracked player once. A player whose upstream calls fail
// is counted and skipped; a storage failure stops the run.
func (s *IngestServiceImpl) Run(ctx context.Context) (models.IngestResult, error) {
	started := s.clock.Now()
	var total models.IngestResult

	err := s.run(ctx, &total)
	s.metrics.ObserveIngest(total, s.clock.Since(started), err)
	if err != nil {
		return total, err
	}

	s.logger.Info("ingest done: new_matches=%d new_player_rows=%d skipped_by_queue=%d skipped_not_participant=%d failed_players=%d",
		total.NewMatches, total.NewPlayerRows, total.SkippedByQueue, total.SkippedNotParticipant, total.FailedPlayers)
	return total, nil
}

func (s *IngestServiceImpl) run(ctx context.Context, total *models.IngestResult) error {
	for _, p := range s.tracking.Players {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := s.ingestPlayer(ctx, p)
		total.NewMatches += res.NewMatches
		total.NewPlayerRows += res.NewPlayerRows
		total.SkippedByQueue += res.SkippedByQueue
		total.SkippedNotParticipant += res.SkippedNotParticipant
		if err == nil {
			continue
		}

		if isRunFatal(ctx, err) {
			return err
		}
		total.FailedPlayers++
		s.logger.Error("ingest for %s failed: %v", p.RiotID, err)
	}
	return nil
}

func isRunFatal(ctx context.Context, err error) bool {
	var serr *repository.StorageError
	return errors.As(err, &serr) || ctx.Err() != nil
}

func (s *IngestServiceImpl) ingestPlayer(ctx context.Context, p config.TrackedPlayer) (models.IngestResult, error) {
	var res models.IngestResult

	puuid, err := s.resolve(ctx, p)
	if err != nil {
		return res, err
	}

	cur, err := s.cursors.Get(ctx, puuid)
	if err != nil {
		return res, err
	}
	now := s.clock.Now().Unix()
	start := now - int64(s.tracking.Lookback()/time.Second)
	if cur != nil {
		start = cur.LastEndTimeTS
	}
	end := now

	if start < end {
		err = s.ingestWindow(ctx, p, puuid, start, end, &res)
	}

	var serr *repository.StorageError
	if errors.As(err, &serr) {
		return res, err
	}

	// The cursor only advances past a window that was fully processed.
	next := end
	if err != nil {
		next = start
	}
	if cerr := s.cursors.Set(context.WithoutCancel(ctx), puuid, next, now); cerr != nil {
		return res, cerr
	}
	return res, err
}

// resolve maps the riot id to a puuid and refreshes the player row.
func (s *IngestServiceImpl) resolve(ctx context.Context, p config.TrackedPlayer) (string, error) {
	puuid, ok := s.cache.Get(p.RiotID)
	if !ok {
		acc, err := s.riot.AccountByRiotID(ctx, p.Routing, p.RiotID)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", p.RiotID, err)
		}
		puuid = acc.PUUID
		s.cache.Set(p.RiotID, puuid)
	}

	err := s.players.Upsert(ctx, models.Player{
		PUUID:    puuid,
		RiotID:   p.RiotID,
		Platform: p.Platform,
		Routing:  p.Routing,
		AddedAt:  s.clock.Now().Unix(),
	})
	if err != nil {
		return "", err
	}
	return puuid, nil
}

func (s *IngestServiceImpl) ingestWindow(ctx context.Context, p config.TrackedPlayer, puuid string, start, end int64, res *models.IngestResult) error {
	ids, err := s.listMatchIDs(ctx, p.Routing, puuid, start, end)
	if err != nil {
		return err
	}
	if len(ids) >= s.tracking.MaxMatchesPerPlayer {
		s.logger.Warn("%s has at least %d matches in window %d..%d, older ones are not fetched", p.RiotID, len(ids), start, end)
	}
	s.logger.Debug("%s: %d match ids in window %d..%d", p.RiotID, len(ids), start, end)

	// ids come back newest first
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.ingestMatch(ctx, p, puuid, id, res); err != nil {
			return err
		}
	}
	return nil
}

func (s *IngestServiceImpl) listMatchIDs(ctx context.Context, routing, puuid string, start, end int64) ([]string, error) {
	limit := s.tracking.MaxMatchesPerPlayer
	pageSize := min(limit, riot.MaxMatchIDsPerCall)

	seen := make(map[string]struct{})
	var ids []string
	offset := 0
	for len(ids) < limit {
		count := min(pageSize, limit-len(ids))
		page, err := s.riot.MatchIDs(ctx, routing, puuid, riot.MatchIDsQuery{
			StartTime: start,
			EndTime:   end,
			Start:     offset,
			Count:     count,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list matches: %w", err)
		}
		offset += len(page)
		for _, id := range page {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		if len(page) < count {
			break
		}
	}
	return ids, nil
}

func (s *IngestServiceImpl) ingestMatch(ctx context.Context, p config.TrackedPlayer, puuid, matchID string, res *models.IngestResult) error {
	matchExists, err := s.matches.Exists(ctx, matchID)
	if err != nil {
		return err
	}
	if matchExists {
		statExists, err := s.matches.StatExists(ctx, puuid, matchID)
		if err != nil {
			return err
		}
		if statExists {
			return nil
		}
	}

	dto, err := s.riot.Match(ctx, p.Routing, matchID)
	if err != nil {
		return fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}

	if dto.Info.QueueID == nil || !p.EnabledQueues.Has(*dto.Info.QueueID) {
		res.SkippedByQueue++
		return nil
	}

	stat, err := ProjectStat(dto, puuid)
	if errors.Is(err, ErrNotParticipant) {
		res.SkippedNotParticipant++
		s.logger.Warn("%s is not a participant of %s, skipping", p.RiotID, matchID)
		return nil
	}
	if err != nil {
		return err
	}
	stat.MatchID = matchID

	var m *models.Match
	if !matchExists {
		m = ProjectMatch(dto, matchID, p.Routing, s.clock.Now().Unix())
	}
	saved, err := s.matches.Save(ctx, m, stat)
	if err != nil {
		return err
	}
	if saved.MatchInserted {
		res.NewMatches++
	}
	if saved.StatInserted {
		res.NewPlayerRows++
	}
	return nil
}

// SyncPlayers resolves every configured riot id and refreshes the player
// rows without touching matches.
func (s *IngestServiceImpl) SyncPlayers(ctx context.Context) (int, error) {
	synced := 0
	for _, p := range s.tracking.Players {
		if _, err := s.resolve(ctx, p); err != nil {
			if isRunFatal(ctx, err) {
				return synced, err
			}
			s.logger.Error("sync for %s failed: %v", p.RiotID, err)
			continue
		}
		synced++
	}
	s.logger.Info("synced %d/%d players", synced, len(s.tracking.Players))
	return synced, nil
}
