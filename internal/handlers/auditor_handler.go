package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/middleware"
	"github.com/gapfarm/portal/api/internal/services"
)

// AuditorHandler serves the auditor scheduling screen lookups.
type AuditorHandler struct {
	service services.InspectionService
}

// NewAuditorHandler creates a new AuditorHandler instance.
func NewAuditorHandler(service services.InspectionService) *AuditorHandler {
	return &AuditorHandler{service: service}
}

// AvailableFarms handles GET /api/v1/auditors/available-farms: farms with no
// pending inspection.
func (h *AuditorHandler) AvailableFarms(c *gin.Context) {
	farms, err := h.service.AvailableFarms(c.Request.Context())
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list available farms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rubberFarms": farms,
		"count":       len(farms),
	})
}

// OtherAuditors handles GET /api/v1/auditors/other-auditors: the co-auditor
// picker, excluding the caller.
func (h *AuditorHandler) OtherAuditors(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	auditors, err := h.service.OtherAuditors(c.Request.Context(), principal.ID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to list auditors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"auditors": auditors})
}

// Current handles GET /api/v1/auditors/current.
func (h *AuditorHandler) Current(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Authentication required")
		return
	}

	auditor, err := h.service.CurrentAuditor(c.Request.Context(), principal.ID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to load auditor", err)
		return
	}
	c.JSON(http.StatusOK, auditor)
}
