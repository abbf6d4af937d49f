package application

import (
	"context"
	"fmt"
	"sort"

	"riftstats/internal/models"
	"riftstats/pkg/sheets"

	"github.com/xuri/excelize/v2"
)

var leaderboardHeaders = []string{"Rank", "Player", "Games", "Wins", "WinRate %", "K/D/A", "KDA", "CS/min", "Main role", "Casual games"}

type ExportServiceImpl struct {
	report        ReportService
	records       RecordService
	sheetsClient  sheets.Client
	spreadsheetID string
	ownerEmail    string
	logger        Logger
}

func NewExportServiceImpl(report ReportService, records RecordService, sheetsClient sheets.Client, spreadsheetID, ownerEmail string, logger Logger) *ExportServiceImpl {
	return &ExportServiceImpl{
		report:        report,
		records:       records,
		sheetsClient:  sheetsClient,
		spreadsheetID: spreadsheetID,
		ownerEmail:    ownerEmail,
		logger:        logger,
	}
}

func (s *ExportServiceImpl) rows(ctx context.Context) ([][]interface{}, error) {
	report, err := s.report.PreviewWeekly(ctx)
	if err != nil {
		return nil, err
	}

	players := make([]models.PlayerReport, len(report.Players))
	copy(players, report.Players)
	sort.SliceStable(players, func(i, j int) bool {
		return comparePlayersByPriority(&players[i], &players[j])
	})

	rows := [][]interface{}{toRow(leaderboardHeaders)}
	for i, p := range players {
		rows = append(rows, []interface{}{
			i + 1,
			p.RiotID,
			p.Games,
			p.Wins,
			fmt.Sprintf("%.1f%%", p.WinRate),
			fmt.Sprintf("%d/%d/%d", p.Kills, p.Deaths, p.Assists),
			fmt.Sprintf("%.2f", p.KDA),
			fmt.Sprintf("%.2f", p.CSPerMin),
			p.MainRole,
			p.CasualGames,
		})
	}
	return rows, nil
}

// comparePlayersByPriority orders by games, then win rate, then KDA.
func comparePlayersByPriority(p1, p2 *models.PlayerReport) bool {
	if p1.Games != p2.Games {
		return p1.Games > p2.Games
	}
	if p1.WinRate != p2.WinRate {
		return p1.WinRate > p2.WinRate
	}
	return p1.KDA > p2.KDA
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func (s *ExportServiceImpl) GetExcelReport(ctx context.Context) ([]byte, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(excelSheetName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		if err := f.SetSheetRow(excelSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}
	f.SetColWidth(excelSheetName, "A", "A", 8)
	f.SetColWidth(excelSheetName, "B", "B", 24)
	f.SetColWidth(excelSheetName, "C", "J", 12)

	if _, err := f.NewSheet(excelRecordName); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetSheetRow(excelRecordName, "A1", &[]interface{}{"Record", "Value", "Details", "Updated"})
	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(excelRecordName, cell, &[]interface{}{
			RecordLabel(rec.Key),
			rec.Value,
			string(rec.Meta),
			rec.UpdatedAt,
		})
	}
	f.SetColWidth(excelRecordName, "A", "A", 28)
	f.SetColWidth(excelRecordName, "C", "C", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SyncToGoogleSheet mirrors the leaderboard into the configured spreadsheet,
// creating one when no id is set.
func (s *ExportServiceImpl) SyncToGoogleSheet(ctx context.Context) (string, error) {
	if s.sheetsClient == nil {
		return "", fmt.Errorf("google sheets service is not configured")
	}

	rows, err := s.rows(ctx)
	if err != nil {
		return "", err
	}

	if s.spreadsheetID == "" {
		id, _, err := s.sheetsClient.CreateSpreadsheet(ctx, defaultSheetTitle)
		if err != nil {
			return "", fmt.Errorf("failed to create spreadsheet: %w", err)
		}
		s.spreadsheetID = id
		if s.ownerEmail != "" {
			if err := s.sheetsClient.AddPermission(ctx, id, s.ownerEmail, "writer"); err != nil {
				return "", fmt.Errorf("failed to add owner permission: %w", err)
			}
		}
		if err := s.sheetsClient.MakePublic(ctx, id); err != nil {
			return "", fmt.Errorf("failed to make spreadsheet public: %w", err)
		}
		s.logger.Info("created spreadsheet %s", id)
	}

	if err := s.sheetsClient.ClearRange(ctx, s.spreadsheetID, defaultClearRange); err != nil {
		s.logger.Error("failed to clear sheet: %v", err)
	}
	if err := s.sheetsClient.UpdateValues(ctx, s.spreadsheetID, defaultStartCell, rows); err != nil {
		return "", fmt.Errorf("failed to update stats: %w", err)
	}

	return sheets.SpreadsheetURL(s.spreadsheetID), nil
}
