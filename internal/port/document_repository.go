package port

import (
	"context"

	"github.com/google/uuid"

	"bizdocs/internal/domain"
)

// DocumentRepository persists purchase orders and quotations together with
// their line items. Header and items are always written atomically.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters, offset, limit int) ([]domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, tenantID uuid.UUID, kind domain.DocumentKind, id uuid.UUID) error

	// ListAllForExport returns every matching document with items loaded.
	ListAllForExport(ctx context.Context, tenantID uuid.UUID, filters domain.DocumentFilters) ([]domain.Document, error)

	// ListBatch pages through documents of all tenants in id order for
	// maintenance jobs. Items are loaded.
	ListBatch(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Document, error)
	// UpdateTotals rewrites only the derived totals of a document and its items.
	UpdateTotals(ctx context.Context, doc *domain.Document) error
}
