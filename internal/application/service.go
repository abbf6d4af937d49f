package application

import (
	"context"
	"errors"
	"time"

	"riftstats/internal/models"
	"riftstats/internal/repository"
	"riftstats/pkg/config"
	"riftstats/pkg/riot"
	"riftstats/pkg/sheets"

	"github.com/jonboulle/clockwork"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Notifier delivers rendered reports to the chat sink.
type Notifier interface {
	PublishWeeklyReport(ctx context.Context, report *models.WeeklyReport) error
	PublishHallOfShame(ctx context.Context, lines []models.GameLine, queueLabel func(int) string) error
}

// Notifiers fans a report out to every sink. A failing sink does not stop
// the rest.
type Notifiers []Notifier

func (ns Notifiers) PublishWeeklyReport(ctx context.Context, report *models.WeeklyReport) error {
	var errs []error
	for _, n := range ns {
		if err := n.PublishWeeklyReport(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ns Notifiers) PublishHallOfShame(ctx context.Context, lines []models.GameLine, queueLabel func(int) string) error {
	var errs []error
	for _, n := range ns {
		if err := n.PublishHallOfShame(ctx, lines, queueLabel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type IngestMetrics interface {
	ObserveIngest(res models.IngestResult, elapsed time.Duration, err error)
}

type nopMetrics struct{}

func (nopMetrics) ObserveIngest(models.IngestResult, time.Duration, error) {}

type IngestService interface {
	Run(ctx context.Context) (models.IngestResult, error)
	SyncPlayers(ctx context.Context) (int, error)
}

type ReportService interface {
	PreviewWeekly(ctx context.Context) (*models.WeeklyReport, error)
	BuildWeekly(ctx context.Context) (*models.WeeklyReport, error)
	SendWeekly(ctx context.Context) (*models.WeeklyReport, error)
	HallOfShame(ctx context.Context) ([]models.GameLine, error)
	SendHallOfShame(ctx context.Context) ([]models.GameLine, error)
}

type RecordService interface {
	UpdateMax(ctx context.Context, key string, value float64, meta models.RecordMeta) (*models.RecordUpdate, error)
	UpdateMin(ctx context.Context, key string, value float64, meta models.RecordMeta) (*models.RecordUpdate, error)
	Apply(ctx context.Context, report *models.WeeklyReport, rows []models.StatRow, cats config.Categories) ([]models.RecordUpdate, error)
	GetAll(ctx context.Context) ([]models.Record, error)
}

type MaintenanceService interface {
	BackfillDeadTime(ctx context.Context) (models.BackfillResult, error)
	ResetCursors(ctx context.Context) (int64, error)
	Status(ctx context.Context) (*models.IngestStatus, error)
}

type ExportService interface {
	GetExcelReport(ctx context.Context) ([]byte, error)
	SyncToGoogleSheet(ctx context.Context) (string, error)
}

type Service struct {
	Ingest      IngestService
	Report      ReportService
	Records     RecordService
	Maintenance MaintenanceService
	Export      ExportService
}

type Deps struct {
	Repos         *repository.Repository
	Riot          riot.Client
	Tracking      *config.Tracking
	Notifier      Notifier
	Sheets        sheets.Client
	SpreadsheetID string
	OwnerEmail    string
	Clock         clockwork.Clock
	Metrics       IngestMetrics
	Logger        Logger
}

func NewService(d Deps) *Service {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	records := NewRecordServiceImpl(d.Repos.Record, d.Clock, d.Logger)
	report := NewReportServiceImpl(d.Repos, records, d.Tracking, d.Notifier, d.Clock, d.Logger)
	return &Service{
		Ingest:      NewIngestServiceImpl(d.Repos, d.Riot, d.Tracking, repository.NewPlayerCache(repository.DefaultPlayerCacheTTL), d.Clock, d.Metrics, d.Logger),
		Report:      report,
		Records:     records,
		Maintenance: NewMaintenanceServiceImpl(d.Repos, d.Riot, d.Tracking, d.Clock, d.Logger),
		Export:      NewExportServiceImpl(report, records, d.Sheets, d.SpreadsheetID, d.OwnerEmail, d.Logger),
	}
}
