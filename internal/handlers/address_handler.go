package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gapfarm/portal/api/internal/address"
	apierrors "github.com/gapfarm/portal/api/internal/errors"
	"github.com/gapfarm/portal/api/internal/middleware"
)

// AddressHandler serves the static Thai address reference tree backing the
// cascading province/district/sub-district selects.
type AddressHandler struct {
	dataset *address.Dataset
}

// NewAddressHandler creates a new AddressHandler instance.
func NewAddressHandler(dataset *address.Dataset) *AddressHandler {
	return &AddressHandler{dataset: dataset}
}

// Provinces handles GET /api/v1/addresses/provinces.
func (h *AddressHandler) Provinces(c *gin.Context) {
	provinces := h.dataset.Provinces()

	// Option lists carry ids and names only; the nested children stay out of
	// the payload.
	options := make([]gin.H, 0, len(provinces))
	for _, p := range provinces {
		options = append(options, gin.H{"id": p.ID, "nameTh": p.NameTH, "nameEn": p.NameEN})
	}
	c.JSON(http.StatusOK, gin.H{"provinces": options})
}

// Districts handles GET /api/v1/addresses/provinces/:id/districts.
func (h *AddressHandler) Districts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	districts := h.dataset.DistrictsOf(id)
	if districts == nil {
		apierrors.NotFound(c, "Province not found")
		return
	}

	options := make([]gin.H, 0, len(districts))
	for _, d := range districts {
		options = append(options, gin.H{"id": d.ID, "nameTh": d.NameTH, "nameEn": d.NameEN})
	}
	c.JSON(http.StatusOK, gin.H{"districts": options})
}

// Subdistricts handles GET /api/v1/addresses/districts/:id/subdistricts.
func (h *AddressHandler) Subdistricts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	subdistricts := h.dataset.SubdistrictsOf(id)
	if subdistricts == nil {
		apierrors.NotFound(c, "District not found")
		return
	}

	options := make([]gin.H, 0, len(subdistricts))
	for _, s := range subdistricts {
		options = append(options, gin.H{
			"id":      s.ID,
			"nameTh":  s.NameTH,
			"nameEn":  s.NameEN,
			"zipCode": s.ZipCode,
		})
	}
	c.JSON(http.StatusOK, gin.H{"subDistricts": options})
}

// Match handles GET /api/v1/addresses/match?province=&district=&subDistrict=.
// Edit screens prefill the cascade from a record's saved names; levels that
// fail to match come back empty.
func (h *AddressHandler) Match(c *gin.Context) {
	selection := h.dataset.MatchSelection(
		c.Query("province"),
		c.Query("district"),
		c.Query("subDistrict"),
		middleware.GetLogger(c),
	)
	c.JSON(http.StatusOK, selection)
}
