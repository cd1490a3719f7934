// Package reports renders the committee reporting views as Excel workbooks.
package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gapfarm/portal/api/internal/repository"
)

// InspectionSheetName is the sheet holding the inspection results export.
const InspectionSheetName = "Inspection Results"

var inspectionHeaders = []string{
	"Inspection No",
	"Type",
	"Farmer",
	"Province",
	"District",
	"Appointment Date",
	"Status",
	"Result",
}

// InspectionWorkbook renders the joined inspection result rows into a
// workbook: one header row plus one row per inspection.
func InspectionWorkbook(rows []repository.InspectionResultRow) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(InspectionSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range inspectionHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(InspectionSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.InspectionNo,
			row.TypeName,
			row.FarmerName,
			row.Province,
			row.District,
			row.AppointmentDate,
			row.InspectionStatus,
			row.InspectionResult,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(InspectionSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	return f, nil
}
