package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bizdocs/internal/domain"
	"bizdocs/internal/middleware"
	"bizdocs/internal/service"
	"bizdocs/internal/totals"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Mismatches is only set for
// TOTALS_MISMATCH errors.
type APIError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Mismatches []totals.Mismatch `json:"mismatches,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

var errorLog logrus.FieldLogger = logrus.StandardLogger()

// SetErrorLogger sets the logger HandleError reports internal errors to.
func SetErrorLogger(log logrus.FieldLogger) {
	if log != nil {
		errorLog = log
	}
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrTenantInactive):
		return http.StatusForbidden, "TENANT_INACTIVE", "tenant is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden, "INSUFFICIENT_ROLE", "insufficient role for this action"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists for this tenant"
	case errors.Is(err, domain.ErrDuplicateTenantSlug):
		return http.StatusConflict, "DUPLICATE_SLUG", "tenant slug already exists"
	case errors.Is(err, domain.ErrDuplicateTaxTypeName):
		return http.StatusConflict, "DUPLICATE_TAX_TYPE", "a tax type with this name already exists"
	case errors.Is(err, domain.ErrInvalidTaxPercentage):
		return http.StatusBadRequest, "INVALID_TAX_PERCENTAGE", "tax percentage must be between 0 and 100"
	case errors.Is(err, domain.ErrTaxTypeInactive):
		return http.StatusUnprocessableEntity, "TAX_TYPE_INACTIVE", "tax type is inactive"
	case errors.Is(err, domain.ErrTaxJurisdictionMismatch):
		return http.StatusUnprocessableEntity, "TAX_JURISDICTION_MISMATCH", "tax type is inter-state but the party is in the tenant's state, or the reverse"
	case errors.Is(err, domain.ErrTaxTypeInUse):
		return http.StatusConflict, "TAX_TYPE_IN_USE", "tax type is referenced by documents; deactivate it instead"
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER", "document number already exists"
	case errors.Is(err, domain.ErrTotalsMismatch):
		return http.StatusUnprocessableEntity, "TOTALS_MISMATCH", "submitted totals do not match the recomputed totals"
	case errors.Is(err, domain.ErrNoLineItems):
		return http.StatusBadRequest, "NO_LINE_ITEMS", "at least one line item is required"
	case errors.Is(err, domain.ErrInvalidDocumentDate):
		return http.StatusBadRequest, "INVALID_DOCUMENT_DATE", "document_date must be YYYY-MM-DD"
	case errors.Is(err, domain.ErrUnsupportedOperation):
		return http.StatusBadRequest, "UNSUPPORTED_OPERATION", "operation is not supported for this document kind"
	case errors.Is(err, domain.ErrNoPartyEmail):
		return http.StatusBadRequest, "NO_RECIPIENT", "no recipient e-mail address on the document"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractAuthContext extracts tenant ID, user ID, and role from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (tenantID, userID uuid.UUID, role domain.UserRole, ok bool) {
	var err error
	tenantID, err = middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, uuid.Nil, "", false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, "", false
	}
	role = domain.UserRole(middleware.GetRole(c))
	return tenantID, userID, role, true
}

// parseIDParam reads a UUID path parameter, writing a 400 when it is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads offset and limit query params with defaults 0 and 20.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		errorLog.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.ContextKeyRequestID),
			"path":       c.FullPath(),
		}).WithError(err).Error("internal error")
	}

	apiErr := &APIError{Code: code, Message: msg}
	var mismatch *service.TotalsMismatchError
	if errors.As(err, &mismatch) {
		apiErr.Mismatches = mismatch.Mismatches
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
