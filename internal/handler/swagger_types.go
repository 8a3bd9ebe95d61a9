package handler

import (
	"time"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"acme"`
	Email      string `json:"email" binding:"required" example:"admin@acme.com"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required" example:"jane.doe@acme.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" example:"Jane Doe"`
	Role     string `json:"role" binding:"required" example:"member" enums:"admin,member,viewer"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty" example:"jane.smith@acme.com"`
	Password *string `json:"password,omitempty" example:"newpassword123"`
	FullName *string `json:"full_name,omitempty" example:"Jane Smith"`
	Role     *string `json:"role,omitempty" example:"admin"`
	IsActive *bool   `json:"is_active,omitempty" example:"true"`
}

// CreateTenantRequest represents the create tenant request body.
type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required" example:"Acme Traders"`
	Slug      string `json:"slug" binding:"required" example:"acme"`
	StateCode string `json:"state_code" example:"27"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name      *string `json:"name,omitempty" example:"Acme Traders Pvt Ltd"`
	Slug      *string `json:"slug,omitempty" example:"acme-traders"`
	StateCode *string `json:"state_code,omitempty" example:"29"`
	IsActive  *bool   `json:"is_active,omitempty" example:"true"`
}

// CreateTaxTypeRequest represents the create tax type request body.
type CreateTaxTypeRequest struct {
	Name         string  `json:"name" binding:"required" example:"GST 18%"`
	Percentage   float64 `json:"percentage" example:"18"`
	IsInterState bool    `json:"is_inter_state" example:"false"`
}

// UpdateTaxTypeRequest represents the update tax type request body.
type UpdateTaxTypeRequest struct {
	Name         *string  `json:"name,omitempty" example:"GST 12%"`
	Percentage   *float64 `json:"percentage,omitempty" example:"12"`
	IsInterState *bool    `json:"is_inter_state,omitempty" example:"true"`
	IsActive     *bool    `json:"is_active,omitempty" example:"false"`
}

// DocumentLineRequest represents one line item. Numeric fields also accept
// numeric strings such as "1,250.50".
type DocumentLineRequest struct {
	ProductID       string  `json:"product_id" binding:"required" example:"SKU-1001"`
	Description     string  `json:"description" example:"A4 paper ream"`
	Unit            string  `json:"unit" example:"box"`
	Quantity        float64 `json:"quantity" minimum:"0" maximum:"1000000000" example:"2"`
	UnitPrice       float64 `json:"unit_price" minimum:"0" maximum:"1000000000000" example:"100"`
	DiscountPercent float64 `json:"discount_percent" minimum:"0" maximum:"100" example:"10"`
}

// TotalsRequest represents the inputs of a totals preview.
type TotalsRequest struct {
	TaxTypeID      *string               `json:"tax_type_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	NoTax          bool                  `json:"no_tax" example:"false"`
	GlobalDiscount float64               `json:"global_discount" example:"30"`
	ShippingCost   float64               `json:"shipping_cost" example:"14"`
	PaidAmount     *float64              `json:"paid_amount" example:"100"`
	Items          []DocumentLineRequest `json:"items"`
}

// DocumentRequest represents the create or update document request body.
type DocumentRequest struct {
	DocumentNumber string                `json:"document_number" binding:"required" example:"PO-2026-0001"`
	PartyRef       string                `json:"party_ref" example:"SUP-7"`
	PartyName      string                `json:"party_name" example:"Shree Suppliers"`
	PartyEmail     string                `json:"party_email" example:"sales@shree.example"`
	PartyStateCode string                `json:"party_state_code" example:"29"`
	DocumentDate   string                `json:"document_date" binding:"required" example:"2026-03-31"`
	Notes          string                `json:"notes" example:"Deliver by Friday"`
	TaxTypeID      *string               `json:"tax_type_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	NoTax          bool                  `json:"no_tax" example:"false"`
	GlobalDiscount float64               `json:"global_discount" example:"30"`
	ShippingCost   float64               `json:"shipping_cost" example:"14"`
	PaidAmount     *float64              `json:"paid_amount" example:"100"`
	Items          []DocumentLineRequest `json:"items"`
	Expected       *PayloadDoc           `json:"expected,omitempty"`
}

// SendQuotationRequest represents the send quotation request body.
type SendQuotationRequest struct {
	ToEmail string `json:"to_email" example:"buyer@customer.example"`
	ToName  string `json:"to_name" example:"Priya"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// PayloadItemDoc documents a payload line.
type PayloadItemDoc struct {
	ProductID string  `json:"productId" example:"SKU-1001"`
	Quantity  float64 `json:"quantity" example:"2"`
	UnitPrice float64 `json:"unitPrice" example:"100"`
	Discount  float64 `json:"discount" example:"10"`
	Total     float64 `json:"total" example:"180"`
}

// PayloadDoc documents the persistence payload. paidAmount, due and change
// are present for purchase orders only.
type PayloadDoc struct {
	Discount      float64          `json:"discount" example:"30"`
	TotalDiscount float64          `json:"totalDiscount" example:"50"`
	ShippingCost  float64          `json:"shippingCost" example:"14"`
	GrandTotal    float64          `json:"grandTotal" example:"230"`
	NetTotal      float64          `json:"netTotal" example:"250"`
	PaidAmount    *float64         `json:"paidAmount,omitempty" example:"100"`
	Due           *float64         `json:"due,omitempty" example:"150"`
	Change        *float64         `json:"change,omitempty" example:"0"`
	NoTax         int              `json:"noTax" example:"0"`
	TaxTypeID     *string          `json:"taxTypeId" example:"550e8400-e29b-41d4-a716-446655440000"`
	IGSTRate      float64          `json:"igstRate" example:"0"`
	CGSTRate      float64          `json:"cgstRate" example:"9"`
	SGSTRate      float64          `json:"sgstRate" example:"9"`
	Items         []PayloadItemDoc `json:"items"`
}

// MismatchDoc documents one verification mismatch.
type MismatchDoc struct {
	Field    string  `json:"field" example:"netTotal"`
	Expected float64 `json:"expected" example:"250"`
	Actual   float64 `json:"actual" example:"251"`
	Message  string  `json:"message" example:"netTotal mismatch (expected 250.00, got 251.00)"`
}

// VerifyResponse documents the verify endpoint result.
type VerifyResponse struct {
	Valid      bool          `json:"valid" example:"false"`
	Mismatches []MismatchDoc `json:"mismatches"`
	Expected   PayloadDoc    `json:"expected"`
}

// ExportResponse documents an uploaded workbook.
type ExportResponse struct {
	URL           string `json:"url" example:"https://bucket.s3.amazonaws.com/exports/..."`
	Key           string `json:"key" example:"exports/tenant/uuid/purchase_order_2026-04-02.xlsx"`
	Filename      string `json:"filename" example:"purchase_order_2026-04-02.xlsx"`
	ExpiresIn     int64  `json:"expires_in" example:"3600"`
	DocumentCount int    `json:"document_count" example:"42"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
