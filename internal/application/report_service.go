package application

import (
	"context"
	"fmt"
	"time"

	"riftstats/internal/models"
	"riftstats/internal/repository"
	"riftstats/pkg/config"

	"github.com/jonboulle/clockwork"
)

type ReportServiceImpl struct {
	players  repository.Player
	stats    repository.Stats
	records  RecordService
	tracking *config.Tracking
	notifier Notifier
	clock    clockwork.Clock
	logger   Logger
}

func NewReportServiceImpl(repos *repository.Repository, records RecordService, tracking *config.Tracking, notifier Notifier, clock clockwork.Clock, logger Logger) *ReportServiceImpl {
	return &ReportServiceImpl{
		players:  repos.Player,
		stats:    repos.Stats,
		records:  records,
		tracking: tracking,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

func (s *ReportServiceImpl) window() (time.Time, time.Time) {
	end := s.clock.Now()
	return end.Add(-s.tracking.Lookback()), end
}

// aggregate builds the report for the current window without touching records.
func (s *ReportServiceImpl) aggregate(ctx context.Context) (*models.WeeklyReport, []models.StatRow, error) {
	start, end := s.window()

	players, err := s.players.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	rows, err := s.stats.GetWindow(ctx, start.Unix(), end.Unix())
	if err != nil {
		return nil, nil, err
	}

	report := Aggregate(players, rows, s.tracking.Categories, start, end)
	report.LookbackDays = s.tracking.LookbackDays
	report.QueueLabels = make(map[int]string)
	for _, r := range rows {
		report.QueueLabels[r.QueueID] = s.tracking.QueueLabel(r.QueueID)
	}
	return report, rows, nil
}

// PreviewWeekly aggregates the window and leaves the records alone.
func (s *ReportServiceImpl) PreviewWeekly(ctx context.Context) (*models.WeeklyReport, error) {
	report, _, err := s.aggregate(ctx)
	return report, err
}

// BuildWeekly aggregates the lookback window and folds it into the all-time
// records.
func (s *ReportServiceImpl) BuildWeekly(ctx context.Context) (*models.WeeklyReport, error) {
	report, rows, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	updates, err := s.records.Apply(ctx, report, rows, s.tracking.Categories)
	if err != nil {
		return nil, err
	}
	report.Records = updates

	s.logger.Info("weekly report built: %d players, %d stat rows, %d records broken", len(report.Players), len(rows), len(updates))
	return report, nil
}

func (s *ReportServiceImpl) SendWeekly(ctx context.Context) (*models.WeeklyReport, error) {
	if s.notifier == nil {
		return nil, fmt.Errorf("no notifier configured")
	}
	report, err := s.BuildWeekly(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.PublishWeeklyReport(ctx, report); err != nil {
		return report, fmt.Errorf("failed to publish weekly report: %w", err)
	}
	return report, nil
}

func (s *ReportServiceImpl) HallOfShame(ctx context.Context) ([]models.GameLine, error) {
	rows, err := s.stats.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	ranked := rows[:0:0]
	for _, r := range rows {
		if s.tracking.Categories.Ranked.Has(r.QueueID) {
			ranked = append(ranked, r)
		}
	}
	return WorstGames(ranked), nil
}

func (s *ReportServiceImpl) SendHallOfShame(ctx context.Context) ([]models.GameLine, error) {
	if s.notifier == nil {
		return nil, fmt.Errorf("no notifier configured")
	}
	lines, err := s.HallOfShame(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.PublishHallOfShame(ctx, lines, s.tracking.QueueLabel); err != nil {
		return lines, fmt.Errorf("failed to publish hall of shame: %w", err)
	}
	return lines, nil
}
