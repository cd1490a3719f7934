package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/middleware"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/services"
)

// PlantingDetailHandler handles planting detail HTTP requests. Details are
// edited one row at a time from the farm edit screen.
type PlantingDetailHandler struct {
	service services.FarmService
	farms   *FarmHandler
}

// NewPlantingDetailHandler creates a new PlantingDetailHandler instance.
func NewPlantingDetailHandler(service services.FarmService) *PlantingDetailHandler {
	return &PlantingDetailHandler{
		service: service,
		farms:   &FarmHandler{service: service},
	}
}

// Create handles POST /api/v1/planting-details.
func (h *PlantingDetailHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var detail models.PlantingDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	if detail.RubberFarmID == 0 {
		apierrors.BadRequest(c, "rubberFarmId is required", nil)
		return
	}

	created, err := h.service.AddDetail(c.Request.Context(), principal.ID, &detail)
	if err != nil {
		h.farms.writeFarmError(c, err, "Failed to add planting detail")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/v1/planting-details/:id with the loaded version.
func (h *PlantingDetailHandler) Update(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var detail models.PlantingDetail
	if err := c.ShouldBindJSON(&detail); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	detail.ID = id

	updated, err := h.service.UpdateDetail(c.Request.Context(), principal.ID, &detail)
	if err != nil {
		h.farms.writeFarmError(c, err, "Failed to update planting detail")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/planting-details/:id.
func (h *PlantingDetailHandler) Delete(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDetail(c.Request.Context(), principal.ID, id); err != nil {
		h.farms.writeFarmError(c, err, "Failed to delete planting detail")
		return
	}

	c.Status(http.StatusNoContent)
}
