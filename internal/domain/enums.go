package domain

import "bizdocs/internal/totals"

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
	RoleViewer UserRole = "viewer"
)

// ValidUserRoles lists the roles that may be assigned to a user.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
	RoleViewer: true,
}

// DocumentKind distinguishes purchase orders from quotations.
type DocumentKind string

const (
	DocumentKindPurchaseOrder DocumentKind = "purchase_order"
	DocumentKindQuotation     DocumentKind = "quotation"
)

// Profile returns the totals profile for the kind. Unknown kinds get the
// quotation profile, which never exposes settlement figures.
func (k DocumentKind) Profile() totals.Profile {
	if k == DocumentKindPurchaseOrder {
		return totals.PurchaseOrderProfile
	}
	return totals.QuotationProfile
}

// Label is the human-readable name of the kind.
func (k DocumentKind) Label() string {
	switch k {
	case DocumentKindPurchaseOrder:
		return "Purchase Order"
	case DocumentKindQuotation:
		return "Quotation"
	default:
		return string(k)
	}
}
