package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

type taxTypeRepo struct {
	db *sqlx.DB
}

// NewTaxTypeRepo creates a new PostgreSQL-backed TaxTypeRepository.
func NewTaxTypeRepo(db *sqlx.DB) port.TaxTypeRepository {
	return &taxTypeRepo{db: db}
}

func (r *taxTypeRepo) Create(ctx context.Context, taxType *domain.TaxType) error {
	taxType.ID = uuid.New()
	now := time.Now().UTC()
	taxType.CreatedAt = now
	taxType.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO tax_types (id, tenant_id, name, percentage, is_inter_state, is_active, created_at, updated_at)
		 VALUES (:id, :tenant_id, :name, :percentage, :is_inter_state, :is_active, :created_at, :updated_at)`,
		taxType)
	if err != nil {
		if isUniqueViolation(err, "name") {
			return domain.ErrDuplicateTaxTypeName
		}
		return fmt.Errorf("taxTypeRepo.Create: %w", err)
	}
	return nil
}

func (r *taxTypeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.TaxType, error) {
	var taxType domain.TaxType
	err := r.db.GetContext(ctx, &taxType,
		"SELECT * FROM tax_types WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxTypeRepo.GetByID: %w", err)
	}
	return &taxType, nil
}

func (r *taxTypeRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.TaxType, int, error) {
	where := "WHERE tenant_id = $1"
	if activeOnly {
		where += " AND is_active = true"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tax_types "+where, tenantID); err != nil {
		return nil, 0, fmt.Errorf("taxTypeRepo.ListByTenant count: %w", err)
	}

	var taxTypes []domain.TaxType
	err := r.db.SelectContext(ctx, &taxTypes,
		"SELECT * FROM tax_types "+where+" ORDER BY name ASC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("taxTypeRepo.ListByTenant: %w", err)
	}
	return taxTypes, total, nil
}

func (r *taxTypeRepo) Update(ctx context.Context, taxType *domain.TaxType) error {
	taxType.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE tax_types SET name = :name, percentage = :percentage, is_inter_state = :is_inter_state,
			is_active = :is_active, updated_at = :updated_at
		 WHERE id = :id AND tenant_id = :tenant_id`, taxType)
	if err != nil {
		if isUniqueViolation(err, "name") {
			return domain.ErrDuplicateTaxTypeName
		}
		return fmt.Errorf("taxTypeRepo.Update: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *taxTypeRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tax_types WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return domain.ErrTaxTypeInUse
		}
		return fmt.Errorf("taxTypeRepo.Delete: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
