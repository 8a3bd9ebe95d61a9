package service

import (
	"context"

	"github.com/google/uuid"

	"bizdocs/internal/domain"
	"bizdocs/internal/port"
)

// CreateTaxTypeInput is the DTO for creating a tax type.
type CreateTaxTypeInput struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Percentage   float64 `json:"percentage" binding:"gte=0,lte=100"`
	IsInterState bool    `json:"is_inter_state"`
}

// UpdateTaxTypeInput is the DTO for updating a tax type.
type UpdateTaxTypeInput struct {
	Name         *string  `json:"name" binding:"omitempty,max=100"`
	Percentage   *float64 `json:"percentage"`
	IsInterState *bool    `json:"is_inter_state"`
	IsActive     *bool    `json:"is_active"`
}

// TaxTypeService manages the tenant's GST configurations.
type TaxTypeService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateTaxTypeInput) (*domain.TaxType, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.TaxType, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.TaxType, int, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateTaxTypeInput) (*domain.TaxType, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type taxTypeService struct {
	repo port.TaxTypeRepository
}

// NewTaxTypeService creates a new TaxTypeService implementation.
func NewTaxTypeService(repo port.TaxTypeRepository) TaxTypeService {
	return &taxTypeService{repo: repo}
}

func validPercentage(p float64) bool {
	return p >= 0 && p <= 100
}

func (s *taxTypeService) Create(ctx context.Context, tenantID uuid.UUID, input CreateTaxTypeInput) (*domain.TaxType, error) {
	if !validPercentage(input.Percentage) {
		return nil, domain.ErrInvalidTaxPercentage
	}
	taxType := &domain.TaxType{
		TenantID:     tenantID,
		Name:         input.Name,
		Percentage:   input.Percentage,
		IsInterState: input.IsInterState,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, taxType); err != nil {
		return nil, err
	}
	return taxType, nil
}

func (s *taxTypeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.TaxType, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *taxTypeService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.TaxType, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, activeOnly, offset, limit)
}

func (s *taxTypeService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateTaxTypeInput) (*domain.TaxType, error) {
	taxType, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		taxType.Name = *input.Name
	}
	if input.Percentage != nil {
		if !validPercentage(*input.Percentage) {
			return nil, domain.ErrInvalidTaxPercentage
		}
		taxType.Percentage = *input.Percentage
	}
	if input.IsInterState != nil {
		taxType.IsInterState = *input.IsInterState
	}
	if input.IsActive != nil {
		taxType.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, taxType); err != nil {
		return nil, err
	}
	return taxType, nil
}

func (s *taxTypeService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}
