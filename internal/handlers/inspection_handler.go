package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/middleware"
	"github.com/gapfarm/portal/api/internal/services"
)

// InspectionHandler handles the inspection workflow HTTP requests.
type InspectionHandler struct {
	service services.InspectionService
}

// NewInspectionHandler creates a new InspectionHandler instance.
func NewInspectionHandler(service services.InspectionService) *InspectionHandler {
	return &InspectionHandler{service: service}
}

// SubmitSummaryRequest is the lead auditor's summary submission. Only the
// comments are accepted from the client; the result is recomputed from the
// stored requirement answers.
type SubmitSummaryRequest struct {
	SummaryComments string `json:"summaryComments"`
	Version         int    `json:"version" binding:"required,min=1"`
}

// EvaluationRequest records an auditor's answer for one requirement.
type EvaluationRequest struct {
	EvaluationResult  string  `json:"evaluationResult" binding:"required"`
	EvaluationComment *string `json:"evaluationComment,omitempty"`
}

// ListTypes handles GET /api/v1/inspections/types.
func (h *InspectionHandler) ListTypes(c *gin.Context) {
	types, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list inspection types", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inspectionTypes": types})
}

// Schedule handles POST /api/v1/inspections.
func (h *InspectionHandler) Schedule(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var input services.ScheduleInspectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	if input.RubberFarmID == 0 || input.InspectionTypeID == 0 || input.AppointmentDate.IsZero() {
		apierrors.BadRequest(c, "rubberFarmId, inspectionTypeId and appointmentDate are required", nil)
		return
	}

	inspection, err := h.service.Schedule(c.Request.Context(), principal.ID, input)
	if err != nil {
		if errors.Is(err, services.ErrFarmNotFound) {
			apierrors.NotFound(c, "Farm not found")
			return
		}
		if errors.Is(err, services.ErrInspectionTypeNotFound) {
			apierrors.NotFound(c, "Inspection type not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to schedule inspection", err)
		return
	}

	c.JSON(http.StatusCreated, inspection)
}

// Get handles GET /api/v1/inspections/:id.
func (h *InspectionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	inspection, err := h.service.GetInspection(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInspectionNotFound) {
			apierrors.NotFound(c, "Inspection not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to load inspection", err)
		return
	}

	c.JSON(http.StatusOK, inspection)
}

// ListItems handles GET /api/v1/inspection-items?inspectionId=.
func (h *InspectionHandler) ListItems(c *gin.Context) {
	raw := c.Query("inspectionId")
	inspectionID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || inspectionID == 0 {
		apierrors.BadRequest(c, "Invalid inspectionId parameter", nil)
		return
	}

	items, err := h.service.ListItems(c.Request.Context(), uint(inspectionID))
	if err != nil {
		if errors.Is(err, services.ErrInspectionNotFound) {
			apierrors.NotFound(c, "Inspection not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to list inspection items", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inspectionItems": items})
}

// Preview handles GET /api/v1/inspections/:id/evaluation. It scores the
// current answers without persisting anything, for the auditor's review
// screen.
func (h *InspectionHandler) Preview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.Preview(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrInspectionNotFound) {
			apierrors.NotFound(c, "Inspection not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to evaluate inspection", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// RecordEvaluation handles PUT /api/v1/requirements/:id.
func (h *InspectionHandler) RecordEvaluation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if err := h.service.RecordEvaluation(c.Request.Context(), id, req.EvaluationResult, req.EvaluationComment); err != nil {
		apierrors.InternalServerError(c, "Failed to record evaluation", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SubmitSummary handles PUT /api/v1/inspections/:id.
func (h *InspectionHandler) SubmitSummary(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubmitSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	inspection, err := h.service.SubmitSummary(c.Request.Context(), principal.ID, id, req.SummaryComments, req.Version)
	if err != nil {
		var conflict *services.ConflictError
		switch {
		case errors.As(err, &conflict):
			apierrors.Conflict(c, services.ConflictUserMessage, conflict.Current)
		case errors.Is(err, services.ErrInspectionNotFound):
			apierrors.NotFound(c, "Inspection not found")
		case errors.Is(err, services.ErrNotLeadAuditor):
			apierrors.Forbidden(c, "Only the lead auditor may submit the summary")
		case errors.Is(err, services.ErrAlreadyEvaluated):
			apierrors.BadRequest(c, err.Error(), nil)
		default:
			apierrors.InternalServerError(c, "Failed to submit summary", err)
		}
		return
	}

	c.JSON(http.StatusOK, inspection)
}
