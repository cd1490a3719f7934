package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gapfarm/portal/api/internal/logger"
	"github.com/gapfarm/portal/api/internal/reports"
	"github.com/gapfarm/portal/api/internal/repository"
)

// ReportService defines the interface for the committee reporting views.
type ReportService interface {
	// InspectionResults returns the joined inspection report rows.
	InspectionResults(ctx context.Context) ([]repository.InspectionResultRow, error)

	// ExportInspectionResults renders the report as an Excel workbook and
	// returns it with a timestamped download filename.
	ExportInspectionResults(ctx context.Context) (*excelize.File, string, error)
}

type reportService struct {
	inspections repository.InspectionRepository
	now         func() time.Time
	log         *logger.Logger
}

// NewReportService creates a new instance of ReportService.
func NewReportService(inspections repository.InspectionRepository, log *logger.Logger) ReportService {
	return &reportService{
		inspections: inspections,
		now:         time.Now,
		log:         log,
	}
}

func (s *reportService) InspectionResults(ctx context.Context) ([]repository.InspectionResultRow, error) {
	return s.inspections.ListResults(ctx)
}

func (s *reportService) ExportInspectionResults(ctx context.Context) (*excelize.File, string, error) {
	rows, err := s.inspections.ListResults(ctx)
	if err != nil {
		return nil, "", err
	}

	workbook, err := reports.InspectionWorkbook(rows)
	if err != nil {
		s.log.Error("Failed to render inspection report workbook", err, nil)
		return nil, "", err
	}

	filename := fmt.Sprintf("inspection-results-%s.xlsx", s.now().Format("20060102-150405"))
	s.log.Info("Inspection report exported", map[string]interface{}{
		"rows":     len(rows),
		"filename": filename,
	})
	return workbook, filename, nil
}
