package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrTenantInactive          = errors.New("tenant is inactive")
	ErrUserInactive            = errors.New("user is inactive")
	ErrInsufficientRole        = errors.New("invalid or insufficient role")
	ErrDuplicateEmail          = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug     = errors.New("tenant slug already exists")
	ErrDuplicateTaxTypeName    = errors.New("tax type name already exists")
	ErrInvalidTaxPercentage    = errors.New("tax percentage must be between 0 and 100")
	ErrTaxTypeInactive         = errors.New("tax type is inactive")
	ErrTaxTypeInUse            = errors.New("tax type is referenced by documents")
	ErrTaxJurisdictionMismatch = errors.New("tax type jurisdiction does not match the party state")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrDuplicateDocumentNumber = errors.New("document number already exists")
	ErrTotalsMismatch          = errors.New("submitted totals do not match recomputed totals")
	ErrNoLineItems             = errors.New("document must have at least one line item")
	ErrInvalidDocumentDate     = errors.New("document_date must be formatted YYYY-MM-DD")
	ErrUnsupportedOperation    = errors.New("operation not supported for this document kind")
	ErrNoPartyEmail            = errors.New("document has no party email address")
	ErrUploadFailed            = errors.New("export upload to storage failed")
)
