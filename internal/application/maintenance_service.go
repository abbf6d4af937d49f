package application

import (
	"context"
	"fmt"
	"time"

	"riftstats/internal/models"
	"riftstats/internal/repository"
	"riftstats/pkg/config"
	"riftstats/pkg/riot"

	"github.com/jonboulle/clockwork"
)

type MaintenanceServiceImpl struct {
	repos    *repository.Repository
	riot     riot.Client
	tracking *config.Tracking
	clock    clockwork.Clock
	logger   Logger
}

func NewMaintenanceServiceImpl(repos *repository.Repository, client riot.Client, tracking *config.Tracking, clock clockwork.Clock, logger Logger) *MaintenanceServiceImpl {
	return &MaintenanceServiceImpl{
		repos:    repos,
		riot:     client,
		tracking: tracking,
		clock:    clock,
		logger:   logger,
	}
}

// BackfillDeadTime refetches window matches whose stat rows still lack
// time_dead_s and fills the value where the payload now has it.
func (s *MaintenanceServiceImpl) BackfillDeadTime(ctx context.Context) (models.BackfillResult, error) {
	var res models.BackfillResult

	since := s.clock.Now().Add(-s.tracking.Lookback()).Unix()
	refs, err := s.repos.Match.ListMissingTimeDead(ctx, since)
	if err != nil {
		return res, err
	}
	res.Candidates = len(refs)

	fetched := make(map[string]*riot.MatchDTO)
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		dto, ok := fetched[ref.MatchID]
		if !ok {
			dto, err = s.riot.Match(ctx, ref.Routing, ref.MatchID)
			if err != nil {
				if isRunFatal(ctx, err) {
					return res, err
				}
				res.Failed++
				s.logger.Warn("backfill: failed to fetch %s: %v", ref.MatchID, err)
				continue
			}
			fetched[ref.MatchID] = dto
		}

		part, ok := dto.Participant(ref.PUUID)
		if !ok || part.TotalTimeSpentDead == nil {
			continue
		}
		updated, err := s.repos.Match.SetTimeDead(ctx, ref.PUUID, ref.MatchID, *part.TotalTimeSpentDead)
		if err != nil {
			return res, err
		}
		if updated {
			res.Updated++
		}
	}

	s.logger.Info("backfill done: candidates=%d updated=%d failed=%d", res.Candidates, res.Updated, res.Failed)
	return res, nil
}

func (s *MaintenanceServiceImpl) ResetCursors(ctx context.Context) (int64, error) {
	n, err := s.repos.Cursor.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("deleted %d ingest cursors", n)
	return n, nil
}

func (s *MaintenanceServiceImpl) Status(ctx context.Context) (*models.IngestStatus, error) {
	end := s.clock.Now()
	start := end.Add(-s.tracking.Lookback())

	players, err := s.repos.Player.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.PUUID] = p.RiotID
	}

	cursors, err := s.repos.Cursor.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	coverage, err := s.repos.Stats.DeadTimeCoverage(ctx, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}

	st := &models.IngestStatus{
		WindowStart: start.Unix(),
		WindowEnd:   end.Unix(),
		Coverage:    coverage,
	}
	for _, c := range cursors {
		st.Cursors = append(st.Cursors, models.CursorStatus{
			PUUID:         c.PUUID,
			RiotID:        names[c.PUUID],
			LastEndTimeTS: c.LastEndTimeTS,
			UpdatedAt:     c.UpdatedAt,
		})
	}
	return st, nil
}

// FormatAge renders how long ago a unix timestamp was, for status output.
func FormatAge(now time.Time, ts int64) string {
	d := now.Sub(time.Unix(ts, 0)).Round(time.Minute)
	if d < 0 {
		return "in the future"
	}
	return fmt.Sprintf("%s ago", d)
}
