package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/middleware"
	"github.com/gapfarm/portal/api/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the committee reporting views.
type ReportHandler struct {
	service services.ReportService
}

// NewReportHandler creates a new ReportHandler instance.
func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// InspectionResultRow is the report row as exposed to the client.
type InspectionResultRow struct {
	InspectionNo     string `json:"inspectionNo"`
	TypeName         string `json:"typeName"`
	FarmerName       string `json:"farmerName"`
	Province         string `json:"province"`
	District         string `json:"district"`
	AppointmentDate  string `json:"appointmentDate"`
	InspectionStatus string `json:"inspectionStatus"`
	InspectionResult string `json:"inspectionResult"`
	InspectionID     uint   `json:"inspectionId"`
	RubberFarmID     uint   `json:"rubberFarmId"`
}

// Inspections handles GET /api/v1/reports/inspections.
func (h *ReportHandler) Inspections(c *gin.Context) {
	rows, err := h.service.InspectionResults(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to load inspection results", err)
		return
	}

	out := make([]InspectionResultRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, InspectionResultRow{
			InspectionNo:     row.InspectionNo,
			TypeName:         row.TypeName,
			FarmerName:       row.FarmerName,
			Province:         row.Province,
			District:         row.District,
			AppointmentDate:  row.AppointmentDate,
			InspectionStatus: row.InspectionStatus,
			InspectionResult: row.InspectionResult,
			InspectionID:     row.InspectionID,
			RubberFarmID:     row.RubberFarmID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"inspections": out,
		"count":       len(out),
	})
}

// Export handles GET /api/v1/reports/inspections/export, streaming the report
// as an xlsx attachment.
func (h *ReportHandler) Export(c *gin.Context) {
	workbook, filename, err := h.service.ExportInspectionResults(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to export inspection results", err)
		return
	}
	defer workbook.Close()

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already out; all that is left is to log.
		if log := middleware.GetLogger(c); log != nil {
			log.Error("Failed to stream workbook", err, map[string]interface{}{
				"filename": filename,
			})
		}
	}
}
