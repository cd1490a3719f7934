package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/middleware"
	"github.com/gapfarm/portal/api/internal/models"
	"github.com/gapfarm/portal/api/internal/services"
)

// FarmHandler handles rubber farm HTTP requests.
type FarmHandler struct {
	service services.FarmService
}

// NewFarmHandler creates a new FarmHandler instance.
func NewFarmHandler(service services.FarmService) *FarmHandler {
	return &FarmHandler{service: service}
}

// Create handles POST /api/v1/rubber-farms.
func (h *FarmHandler) Create(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	var farm models.RubberFarm
	if err := c.ShouldBindJSON(&farm); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	created, err := h.service.CreateFarm(c.Request.Context(), principal.ID, &farm)
	if err != nil {
		h.writeFarmError(c, err, "Failed to create farm")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles GET /api/v1/rubber-farms, scoped to the caller's farms.
func (h *FarmHandler) List(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	farms, err := h.service.ListFarms(c.Request.Context(), principal.ID)
	if err != nil {
		h.writeFarmError(c, err, "Failed to list farms")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rubberFarms": farms,
		"count":       len(farms),
	})
}

// Get handles GET /api/v1/rubber-farms/:id.
func (h *FarmHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	farm, err := h.service.GetFarm(c.Request.Context(), id)
	if err != nil {
		h.writeFarmError(c, err, "Failed to load farm")
		return
	}

	c.JSON(http.StatusOK, farm)
}

// Update handles PUT /api/v1/rubber-farms/:id. The payload carries the
// version the client loaded; a stale version yields 409 with the current
// record.
func (h *FarmHandler) Update(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var farm models.RubberFarm
	if err := c.ShouldBindJSON(&farm); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}
	farm.ID = id

	updated, err := h.service.UpdateFarm(c.Request.Context(), principal.ID, &farm)
	if err != nil {
		h.writeFarmError(c, err, "Failed to update farm")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// writeFarmError maps farm service errors onto the response envelope.
func (h *FarmHandler) writeFarmError(c *gin.Context, err error, fallback string) {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		apierrors.Conflict(c, services.ConflictUserMessage, conflict.Current)
	case errors.Is(err, services.ErrFarmNotFound):
		apierrors.NotFound(c, "Farm not found")
	case errors.Is(err, services.ErrDetailNotFound):
		apierrors.NotFound(c, "Planting detail not found")
	case errors.Is(err, services.ErrFarmerNotFound):
		apierrors.NotFound(c, "Farmer profile not found")
	case errors.Is(err, services.ErrNotFarmOwner):
		apierrors.Forbidden(c, "This farm belongs to another farmer")
	case errors.Is(err, services.ErrNoCompleteDetail):
		apierrors.BadRequest(c, err.Error(), map[string]interface{}{
			"plantingDetails": "at least one detail needs specie, areaOfPlot and numberOfRubber",
		})
	case errors.Is(err, services.ErrMooOutOfRange):
		apierrors.BadRequest(c, err.Error(), map[string]interface{}{"moo": "must be between 0 and 1000"})
	case errors.Is(err, services.ErrLastDetail):
		apierrors.BadRequest(c, err.Error(), nil)
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}
