package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizdocs/internal/service"
)

// TaxTypeHandler handles tax type master-data endpoints.
type TaxTypeHandler struct {
	taxTypeService service.TaxTypeService
}

// NewTaxTypeHandler creates a new TaxTypeHandler.
func NewTaxTypeHandler(taxTypeService service.TaxTypeService) *TaxTypeHandler {
	return &TaxTypeHandler{taxTypeService: taxTypeService}
}

// Create handles POST /api/v1/tax-types
// @Summary Create a tax type
// @Description Intra-state types split the percentage into CGST and SGST; inter-state types charge IGST
// @Tags tax-types
// @Accept json
// @Produce json
// @Param request body CreateTaxTypeRequest true "Tax type"
// @Success 201 {object} Response{data=domain.TaxType} "Tax type created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Name already exists"
// @Security BearerAuth
// @Router /tax-types [post]
func (h *TaxTypeHandler) Create(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateTaxTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	taxType, err := h.taxTypeService.Create(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, taxType)
}

// List handles GET /api/v1/tax-types
// @Summary List tax types
// @Tags tax-types
// @Produce json
// @Param active query bool false "Only active tax types"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.TaxType,meta=PagMeta} "Tax types"
// @Security BearerAuth
// @Router /tax-types [get]
func (h *TaxTypeHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	activeOnly := c.Query("active") == "true"

	taxTypes, total, err := h.taxTypeService.List(c.Request.Context(), tenantID, activeOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, taxTypes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/tax-types/:id
// @Summary Get tax type by ID
// @Tags tax-types
// @Produce json
// @Param id path string true "Tax type ID (UUID)"
// @Success 200 {object} Response{data=domain.TaxType} "Tax type"
// @Failure 404 {object} ErrorResponseBody "Tax type not found"
// @Security BearerAuth
// @Router /tax-types/{id} [get]
func (h *TaxTypeHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	taxType, err := h.taxTypeService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, taxType)
}

// Update handles PUT /api/v1/tax-types/:id
// @Summary Update a tax type
// @Tags tax-types
// @Accept json
// @Produce json
// @Param id path string true "Tax type ID (UUID)"
// @Param request body UpdateTaxTypeRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.TaxType} "Tax type updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Tax type not found"
// @Security BearerAuth
// @Router /tax-types/{id} [put]
func (h *TaxTypeHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateTaxTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	taxType, err := h.taxTypeService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, taxType)
}

// Delete handles DELETE /api/v1/tax-types/:id
// @Summary Delete a tax type
// @Description Tax types referenced by documents cannot be deleted; deactivate them instead
// @Tags tax-types
// @Produce json
// @Param id path string true "Tax type ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Tax type deleted"
// @Failure 404 {object} ErrorResponseBody "Tax type not found"
// @Failure 409 {object} ErrorResponseBody "Tax type in use"
// @Security BearerAuth
// @Router /tax-types/{id} [delete]
func (h *TaxTypeHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taxTypeService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "tax type deleted"})
}
