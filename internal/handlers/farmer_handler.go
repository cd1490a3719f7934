package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/services"
	"github.com/gapfarm/portal/api/internal/validation"
)

// FarmerHandler handles farmer registration and profile requests.
type FarmerHandler struct {
	service services.RegistrationService
}

// NewFarmerHandler creates a new FarmerHandler instance.
func NewFarmerHandler(service services.RegistrationService) *FarmerHandler {
	return &FarmerHandler{service: service}
}

// RegisterFarmerRequest represents the one-shot registration payload. The
// domain format rules run through the shared validator so the field messages
// match the wizard gates.
type RegisterFarmerRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	NamePrefix  string  `json:"namePrefix"`
	FirstName   string  `json:"firstName" validate:"required"`
	LastName    string  `json:"lastName" validate:"required"`
	CitizenID   string  `json:"identificationNumber" validate:"required,citizen_id"`
	HouseNo     string  `json:"houseNo" validate:"required"`
	Road        *string `json:"road,omitempty"`
	Alley       *string `json:"alley,omitempty"`
	Province    string  `json:"province" validate:"required"`
	District    string  `json:"district" validate:"required"`
	Subdistrict string  `json:"subDistrict" validate:"required"`
	ZipCode     string  `json:"zipCode"`
	Mobile      string  `json:"mobilePhoneNumber" validate:"required,mobile_th"`
	Phone       *string `json:"phoneNumber,omitempty"`
	Moo         int     `json:"moo" validate:"moo"`
}

// Register handles POST /api/v1/farmers/register.
func (h *FarmerHandler) Register(c *gin.Context) {
	var req RegisterFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	farmer, err := h.service.Register(c.Request.Context(), services.RegisterFarmerInput{
		Email:       req.Email,
		Password:    req.Password,
		NamePrefix:  req.NamePrefix,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CitizenID:   req.CitizenID,
		HouseNo:     req.HouseNo,
		Road:        req.Road,
		Alley:       req.Alley,
		Province:    req.Province,
		District:    req.District,
		Subdistrict: req.Subdistrict,
		ZipCode:     req.ZipCode,
		Mobile:      req.Mobile,
		Phone:       req.Phone,
		Moo:         req.Moo,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			apierrors.BadRequest(c, err.Error(), map[string]interface{}{"email": "already registered"})
			return
		}
		if errors.Is(err, services.ErrCitizenIDTaken) {
			apierrors.BadRequest(c, err.Error(), map[string]interface{}{"identificationNumber": "already registered"})
			return
		}
		apierrors.InternalServerError(c, "Failed to register farmer", err)
		return
	}

	c.JSON(http.StatusCreated, farmer)
}

// Get handles GET /api/v1/farmers/:id.
func (h *FarmerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	farmer, err := h.service.GetFarmer(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrFarmerNotFound) {
			apierrors.NotFound(c, "Farmer not found")
			return
		}
		apierrors.InternalServerError(c, "Failed to load farmer", err)
		return
	}

	c.JSON(http.StatusOK, farmer)
}

// parseIDParam parses a positive integer path parameter, writing the 400
// response itself on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name+" parameter", nil)
		return 0, false
	}
	return uint(id), true
}
