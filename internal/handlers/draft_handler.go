package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/services"
	"github.com/gapfarm/portal/api/internal/wizard"
)

// DraftHandler handles the multi-step registration draft endpoints.
type DraftHandler struct {
	service services.RegistrationService
}

// NewDraftHandler creates a new DraftHandler instance.
func NewDraftHandler(service services.RegistrationService) *DraftHandler {
	return &DraftHandler{service: service}
}

// DraftResponse is the wire representation of an in-progress draft.
type DraftResponse struct {
	Fields       map[string]interface{} `json:"fields"`
	ID           string                 `json:"id"`
	SummaryError string                 `json:"summaryError,omitempty"`
	Step         int                    `json:"step"`
	Completed    int                    `json:"completed"`
	OnFinalStep  bool                   `json:"onFinalStep"`
}

// StepRequest carries the fields submitted with a step transition.
type StepRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// JumpRequest carries the target step of a direct jump.
type JumpRequest struct {
	Step int `json:"step" binding:"required,min=1"`
}

func draftResponse(d *wizard.Draft) DraftResponse {
	return DraftResponse{
		ID:           d.ID,
		Fields:       d.Fields,
		SummaryError: d.SummaryError,
		Step:         d.Step,
		Completed:    d.Completed,
		OnFinalStep:  d.OnFinalStep(),
	}
}

// Start handles POST /api/v1/registration-drafts.
func (h *DraftHandler) Start(c *gin.Context) {
	draft := h.service.StartDraft()
	c.JSON(http.StatusCreated, draftResponse(draft))
}

// Get handles GET /api/v1/registration-drafts/:id.
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.service.Draft(c.Param("id"))
	if err != nil {
		apierrors.NotFound(c, "Draft not found or expired")
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// Next handles PUT /api/v1/registration-drafts/:id/next. The step gate blocks
// the transition with a 400 field map when validation fails; the submitted
// fields are kept either way.
func (h *DraftHandler) Next(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	draft, fieldErrs, err := h.service.Next(c.Param("id"), req.Fields)
	if err != nil {
		apierrors.NotFound(c, "Draft not found or expired")
		return
	}
	if len(fieldErrs) > 0 {
		apierrors.FieldErrors(c, wizard.SummaryMessage, fieldErrs)
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// Previous handles PUT /api/v1/registration-drafts/:id/previous.
func (h *DraftHandler) Previous(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	draft, err := h.service.Previous(c.Param("id"), req.Fields)
	if err != nil {
		apierrors.NotFound(c, "Draft not found or expired")
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// Jump handles PUT /api/v1/registration-drafts/:id/jump.
func (h *DraftHandler) Jump(c *gin.Context) {
	var req JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	draft, err := h.service.Jump(c.Param("id"), req.Step)
	if err != nil {
		if errors.Is(err, wizard.ErrStepOutOfRange) {
			apierrors.BadRequest(c, "Step is not reachable", nil)
			return
		}
		apierrors.NotFound(c, "Draft not found or expired")
		return
	}
	c.JSON(http.StatusOK, draftResponse(draft))
}

// Submit handles POST /api/v1/registration-drafts/:id/submit. All steps are
// re-validated; a failed submit keeps the draft alive with the entered data.
func (h *DraftHandler) Submit(c *gin.Context) {
	farmer, fieldErrs, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrDraftNotFound) {
			apierrors.NotFound(c, "Draft not found or expired")
			return
		}
		if errors.Is(err, services.ErrEmailTaken) {
			apierrors.BadRequest(c, err.Error(), map[string]interface{}{"email": "already registered"})
			return
		}
		if errors.Is(err, services.ErrCitizenIDTaken) {
			apierrors.BadRequest(c, err.Error(), map[string]interface{}{"identificationNumber": "already registered"})
			return
		}
		apierrors.InternalServerError(c, "Failed to submit registration", err)
		return
	}
	if len(fieldErrs) > 0 {
		apierrors.FieldErrors(c, wizard.SummaryMessage, fieldErrs)
		return
	}

	c.JSON(http.StatusCreated, farmer)
}
