package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bizdocs/internal/domain"
	"bizdocs/internal/middleware"
	"bizdocs/internal/service"
	"bizdocs/internal/totals"
)

// DocumentHandler serves one document kind. The router mounts one instance
// under /purchase-orders and another under /quotations.
type DocumentHandler struct {
	documentService service.DocumentService
	exportService   service.ExportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, exportService service.ExportService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, exportService: exportService}
}

// parseFilters reads party_ref, from and to (YYYY-MM-DD) query params.
func (h *DocumentHandler) parseFilters(c *gin.Context) (domain.DocumentFilters, bool) {
	filters := domain.DocumentFilters{
		Kind:     h.documentService.Kind(),
		PartyRef: c.Query("party_ref"),
	}
	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &filters.From}, {"to", &filters.To}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", p.name+" must be YYYY-MM-DD")
			return filters, false
		}
		*p.dst = &d
	}
	return filters, true
}

// Create handles POST /api/v1/{purchase-orders|quotations}
// @Summary Create a document
// @Description Totals are recomputed server-side. When expected is supplied the save is refused with TOTALS_MISMATCH if the figures drifted.
// @Tags documents
// @Accept json
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param request body DocumentRequest true "Document"
// @Success 201 {object} Response{data=domain.Document} "Document created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Duplicate document number"
// @Failure 422 {object} ErrorResponseBody "Totals mismatch or inactive tax type"
// @Security BearerAuth
// @Router /{kind} [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.DocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.documentService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// List handles GET /api/v1/{purchase-orders|quotations}
// @Summary List documents
// @Tags documents
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param party_ref query string false "Supplier or customer reference"
// @Param from query string false "Earliest document date (YYYY-MM-DD)"
// @Param to query string false "Latest document date (YYYY-MM-DD)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "Documents"
// @Security BearerAuth
// @Router /{kind} [get]
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.List(c.Request.Context(), tenantID, filters, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/{purchase-orders|quotations}/:id
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document} "Document"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{kind}/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Update handles PUT /api/v1/{purchase-orders|quotations}/:id
// @Summary Replace a document
// @Description Replaces header fields and all line items, then recomputes totals
// @Tags documents
// @Accept json
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param id path string true "Document ID (UUID)"
// @Param request body DocumentRequest true "Document"
// @Success 200 {object} Response{data=domain.Document} "Document updated"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 422 {object} ErrorResponseBody "Totals mismatch or inactive tax type"
// @Security BearerAuth
// @Router /{kind}/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.DocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), tenantID, id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/{purchase-orders|quotations}/:id
// @Summary Delete a document
// @Tags documents
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{kind}/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// Payload handles GET /api/v1/{purchase-orders|quotations}/:id/payload
// @Summary Get the persistence payload of a document
// @Tags documents
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=PayloadDoc} "Payload"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /{kind}/{id}/payload [get]
func (h *DocumentHandler) Payload(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payload, err := h.documentService.Payload(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payload)
}

// Preview handles POST /api/v1/{purchase-orders|quotations}/preview
// @Summary Preview totals
// @Description Recomputes totals for unsaved editor state without persisting anything
// @Tags documents
// @Accept json
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param request body TotalsRequest true "Editor state"
// @Success 200 {object} Response "Totals and payload"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Tax type not found"
// @Security BearerAuth
// @Router /{kind}/preview [post]
func (h *DocumentHandler) Preview(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.TotalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.documentService.Preview(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Verify handles POST /api/v1/{purchase-orders|quotations}/verify
// @Summary Verify a payload
// @Description Recomputes a persistence payload and lists every figure off by more than 0.01
// @Tags documents
// @Accept json
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param request body PayloadDoc true "Payload"
// @Success 200 {object} Response{data=VerifyResponse} "Verification result"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /{kind}/verify [post]
func (h *DocumentHandler) Verify(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var payload totals.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.documentService.Verify(c.Request.Context(), tenantID, payload)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ExportCSV handles GET /api/v1/{purchase-orders|quotations}/export/csv
// @Summary Export documents as CSV
// @Tags documents
// @Produce text/csv
// @Param kind path string true "purchase-orders or quotations"
// @Param party_ref query string false "Supplier or customer reference"
// @Param from query string false "Earliest document date (YYYY-MM-DD)"
// @Param to query string false "Latest document date (YYYY-MM-DD)"
// @Success 200 {file} file "CSV file"
// @Security BearerAuth
// @Router /{kind}/export/csv [get]
func (h *DocumentHandler) ExportCSV(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	filename := h.exportService.Filename(filters.Kind, "csv")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.exportService.WriteCSV(c.Request.Context(), tenantID, filters, c.Writer); err != nil {
		if c.Writer.Written() {
			errorLog.WithError(err).WithField("request_id", c.GetString(middleware.ContextKeyRequestID)).Error("csv export aborted")
			c.Abort()
			return
		}
		c.Writer.Header().Del("Content-Type")
		c.Writer.Header().Del("Content-Disposition")
		HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ExportXLSX handles POST /api/v1/{purchase-orders|quotations}/export/xlsx
// @Summary Export documents as an Excel workbook
// @Description Builds a workbook with Documents and Items sheets, uploads it and returns a presigned download URL
// @Tags documents
// @Produce json
// @Param kind path string true "purchase-orders or quotations"
// @Param party_ref query string false "Supplier or customer reference"
// @Param from query string false "Earliest document date (YYYY-MM-DD)"
// @Param to query string false "Latest document date (YYYY-MM-DD)"
// @Success 200 {object} Response{data=ExportResponse} "Export"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /{kind}/export/xlsx [post]
func (h *DocumentHandler) ExportXLSX(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	result, err := h.exportService.ExportXLSX(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Send handles POST /api/v1/quotations/:id/send
// @Summary E-mail a quotation
// @Description Sends the quotation totals to to_email, or to the document's party e-mail
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body SendQuotationRequest false "Recipient override"
// @Success 200 {object} Response{data=MessageResponse} "Quotation sent"
// @Failure 400 {object} ErrorResponseBody "No recipient"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /quotations/{id}/send [post]
func (h *DocumentHandler) Send(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.SendQuotationInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	if err := h.documentService.SendQuotation(c.Request.Context(), tenantID, id, input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quotation sent"})
}
