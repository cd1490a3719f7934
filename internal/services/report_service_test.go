package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gapfarm/portal/api/internal/reports"
	"github.com/gapfarm/portal/api/internal/repository"
)

func TestExportInspectionResults(t *testing.T) {
	inspections := new(mockInspectionRepository)
	inspections.On("ListResults", mock.Anything).Return([]repository.InspectionResultRow{
		{
			InspectionNo:     "INS-20260315-AB12CD34",
			TypeName:         "ตรวจรับรองครั้งแรก",
			FarmerName:       "Somchai Jaidee",
			InspectionStatus: "evaluated",
			InspectionResult: "ผ่าน",
		},
	}, nil)

	svc := NewReportService(inspections, testLogger()).(*reportService)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 27, 14, 30, 5, 0, time.UTC)
	}

	workbook, filename, err := svc.ExportInspectionResults(context.Background())
	require.NoError(t, err)
	defer workbook.Close()

	assert.Equal(t, "inspection-results-20260827-143005.xlsx", filename)

	no, err := workbook.GetCellValue(reports.InspectionSheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "INS-20260315-AB12CD34", no)
}

func TestExportInspectionResults_RepositoryError(t *testing.T) {
	inspections := new(mockInspectionRepository)
	inspections.On("ListResults", mock.Anything).Return(nil, assert.AnError)

	svc := NewReportService(inspections, testLogger())

	_, _, err := svc.ExportInspectionResults(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
