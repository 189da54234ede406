package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Bitshala/admin/internal/dto"
	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/pkg/config"
	appErrors "github.com/Bitshala/admin/pkg/errors"
	"github.com/Bitshala/admin/pkg/export"
)

var exportHeaders = []string{
	"Name", "Email", "Group", "TA", "Attendance",
	"fa", "fb", "fc", "fd",
	"Bonus_Attempt", "Bonus_Good", "Bonus_FollowUp",
	"Submitted", "PrivateTest", "GoodStructure", "GoodDoc",
	"Total", "Week",
}

// WeekReader fetches a week roster for export.
type WeekReader interface {
	GetWeek(ctx context.Context, week int) ([]models.WeekRecord, error)
}

// ExportService renders week rosters as downloadable CSV or PDF files.
type ExportService struct {
	weeks  WeekReader
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	config config.ExportsConfig
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(weeks WeekReader, cfg config.ExportsConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		weeks:  weeks,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		config: cfg,
		logger: logger,
	}
}

// WeekCSV renders one week's roster as CSV.
func (s *ExportService) WeekCSV(ctx context.Context, week int) ([]byte, string, error) {
	data, err := s.dataset(ctx, week)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, fmt.Sprintf("week_%d_roster.csv", week), nil
}

// WeekPDF renders one week's roster as a landscape PDF table.
func (s *ExportService) WeekPDF(ctx context.Context, week int) ([]byte, string, error) {
	if !s.config.PDFEnabled {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "pdf export is disabled")
	}
	data, err := s.dataset(ctx, week)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(data, fmt.Sprintf("Week %d Roster", week))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, fmt.Sprintf("week_%d_roster.pdf", week), nil
}

func (s *ExportService) dataset(ctx context.Context, week int) (export.Dataset, error) {
	records, err := s.weeks.GetWeek(ctx, week)
	if err != nil {
		return export.Dataset{}, err
	}
	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]string{
			"Name":           r.Name,
			"Email":          r.Email,
			"Group":          r.Group,
			"TA":             r.TA,
			"Attendance":     flag(r.Attendance),
			"fa":             strconv.Itoa(r.GD.FA),
			"fb":             strconv.Itoa(r.GD.FB),
			"fc":             strconv.Itoa(r.GD.FC),
			"fd":             strconv.Itoa(r.GD.FD),
			"Bonus_Attempt":  strconv.Itoa(r.Bonus.Attempt),
			"Bonus_Good":     strconv.Itoa(r.Bonus.Good),
			"Bonus_FollowUp": strconv.Itoa(r.Bonus.FollowUp),
			"Submitted":      flag(r.Exercise.Submitted),
			"PrivateTest":    flag(r.Exercise.PrivateTestPass),
			"GoodStructure":  flag(r.Exercise.GoodStructure),
			"GoodDoc":        flag(r.Exercise.GoodDoc),
			"Total":          strconv.Itoa(r.Total),
			"Week":           strconv.Itoa(r.Week),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}, nil
}

func flag(b bool) string {
	if b {
		return dto.FlagYes
	}
	return dto.FlagNo
}
